// Package metrics exposes a solving Context's Stats as Prometheus gauges
// and counters. It is wired only from cmd/yass, never from internal/sat
// itself: the core has no business owning an HTTP listener or any other OS
// handle (spec §5).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/kbsolver/cdclsat/internal/sat"
)

// Collector is a prometheus.Collector snapshotting a *sat.Context's Stats
// on every scrape.
type Collector struct {
	ctx *sat.Context

	conflicts *prometheus.Desc
	restarts  *prometheus.Desc
	decisions *prometheus.Desc
	learnts   *prometheus.Desc
	deleted   *prometheus.Desc
	unitsL0   *prometheus.Desc
	lbdAvg    *prometheus.Desc
	numAtoms  *prometheus.Desc
	numAssign *prometheus.Desc
}

// NewCollector returns a Collector reading from ctx. Register it with a
// prometheus.Registry to expose it over /metrics.
func NewCollector(ctx *sat.Context) *Collector {
	return &Collector{
		ctx:       ctx,
		conflicts: prometheus.NewDesc("yass_conflicts_total", "Total number of conflicts encountered.", nil, nil),
		restarts:  prometheus.NewDesc("yass_restarts_total", "Total number of Luby restarts performed.", nil, nil),
		decisions: prometheus.NewDesc("yass_decisions_total", "Total number of decisions made.", nil, nil),
		learnts:   prometheus.NewDesc("yass_learnt_clauses_total", "Total number of learnt clauses recorded.", nil, nil),
		deleted:   prometheus.NewDesc("yass_deleted_learnts_total", "Total number of learnt clauses deleted by reduction.", nil, nil),
		unitsL0:   prometheus.NewDesc("yass_units_at_level0_total", "Total number of literals fixed at decision level 0.", nil, nil),
		lbdAvg:    prometheus.NewDesc("yass_lbd_average", "Exponential moving average of learnt clause LBD.", nil, nil),
		numAtoms:  prometheus.NewDesc("yass_atoms", "Number of atoms currently registered.", nil, nil),
		numAssign: prometheus.NewDesc("yass_assigned_atoms", "Number of atoms currently assigned.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.conflicts
	ch <- c.restarts
	ch <- c.decisions
	ch <- c.learnts
	ch <- c.deleted
	ch <- c.unitsL0
	ch <- c.lbdAvg
	ch <- c.numAtoms
	ch <- c.numAssign
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.ctx.Stats
	ch <- prometheus.MustNewConstMetric(c.conflicts, prometheus.CounterValue, float64(stats.TotalConflicts))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(stats.TotalRestarts))
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(stats.TotalDecisions))
	ch <- prometheus.MustNewConstMetric(c.learnts, prometheus.CounterValue, float64(stats.LearnedClauses))
	ch <- prometheus.MustNewConstMetric(c.deleted, prometheus.CounterValue, float64(stats.DeletedLearnts))
	ch <- prometheus.MustNewConstMetric(c.unitsL0, prometheus.CounterValue, float64(stats.UnitsAtLevel0))
	ch <- prometheus.MustNewConstMetric(c.lbdAvg, prometheus.GaugeValue, stats.LBDAverage())
	ch <- prometheus.MustNewConstMetric(c.numAtoms, prometheus.GaugeValue, float64(c.ctx.NumAtoms()))
	ch <- prometheus.MustNewConstMetric(c.numAssign, prometheus.GaugeValue, float64(c.ctx.NumAssigned()))
}
