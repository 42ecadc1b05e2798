package sat

// watcher represents a clause attached to the watch list of a literal
// (spec §4.D), grounded on the teacher's watcher struct
// (internal/sat/solver.go).
type watcher struct {
	// clause is awoken when the watched literal is assigned true.
	clause ClauseID

	// guard is one of the clause's other literals, used as a cheap
	// satisfaction shortcut: if guard is already true, the clause need not
	// be inspected at all.
	guard Literal
}

// watchLists is the per-literal inverted index of spec invariant 2: for
// every literal l, watchLists.lists[l] contains exactly the clauses whose
// watched positions evaluate to !l for some watched position.
type watchLists struct {
	lists [][]watcher
}

func newWatchLists() *watchLists {
	return &watchLists{}
}

func (w *watchLists) growBy(n int) {
	for i := 0; i < n; i++ {
		w.lists = append(w.lists, nil, nil)
	}
}

// watch registers clause c to be awoken when literal l is assigned true.
func (w *watchLists) watch(l Literal, c ClauseID, guard Literal) {
	w.lists[l] = append(w.lists[l], watcher{clause: c, guard: guard})
}

// unwatch removes every watcher of clause c from l's watch list in one
// linear pass that keeps the remaining watchers in their original order.
func (w *watchLists) unwatch(l Literal, c ClauseID) {
	lst := w.lists[l]
	j := 0
	for i := 0; i < len(lst); i++ {
		if lst[i].clause != c {
			lst[j] = lst[i]
			j++
		}
	}
	w.lists[l] = lst[:j]
}
