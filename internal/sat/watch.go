package sat

// watchLists holds, for each literal l, the arena indices of clauses that
// have l.Opposite() at one of their two watched positions: the clauses to
// inspect once l becomes true. Clauses of length < 2 are never registered.
type watchLists struct {
	lists [][]int // indexed by Literal
}

func newWatchLists() *watchLists {
	return &watchLists{}
}

// grow adds the two watch-list slots (positive and negative literal) for a
// freshly-declared variable.
func (w *watchLists) grow() {
	w.lists = append(w.lists, nil, nil)
}

func (w *watchLists) of(l Literal) []int {
	return w.lists[l]
}

// watch registers clause c in literal l's watch list.
func (w *watchLists) watch(l Literal, c int) {
	w.lists[l] = append(w.lists[l], c)
}

// unwatch removes clause c from literal l's watch list.
func (w *watchLists) unwatch(l Literal, c int) {
	ws := w.lists[l]
	for i, cc := range ws {
		if cc == c {
			ws[i] = ws[len(ws)-1]
			w.lists[l] = ws[:len(ws)-1]
			return
		}
	}
}

// rename rewrites every watch-list entry referencing clause index old to
// new. Required whenever the clause arena performs a swap-remove.
func (w *watchLists) rename(old, new int) {
	for _, ws := range w.lists {
		for i, c := range ws {
			if c == old {
				ws[i] = new
			}
		}
	}
}
