package core

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// cellSet is a set of coordinates with a deterministic, row-major listing.
type cellSet struct {
	s mapset.Set[Coord]
}

func newCellSet(cells ...Coord) cellSet {
	cs := cellSet{s: mapset.New[Coord]()}
	for _, c := range cells {
		cs.s.Put(c)
	}
	return cs
}

// add inserts c and reports whether it was new.
func (cs cellSet) add(c Coord) bool {
	if cs.s.Has(c) {
		return false
	}
	cs.s.Put(c)
	return true
}

func (cs cellSet) has(c Coord) bool {
	return cs.s.Has(c)
}

func (cs cellSet) len() int {
	return cs.s.Size()
}

// sorted lists the set in row-major order.
func (cs cellSet) sorted() []Coord {
	out := make([]Coord, 0, cs.s.Size())
	cs.s.Each(func(c Coord) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
