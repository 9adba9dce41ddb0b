package model

import "slices"

// SeenSet holds every entry oid that has already been reported. It only
// ever grows; a reset happens by wiping the persisted form externally.
type SeenSet map[OID]struct{}

func NewSeenSet(oids ...OID) SeenSet {
	s := make(SeenSet, len(oids))
	for _, oid := range oids {
		s[oid] = struct{}{}
	}
	return s
}

func (s SeenSet) Has(oid OID) bool {
	_, ok := s[oid]
	return ok
}

func (s SeenSet) Add(oid OID) {
	s[oid] = struct{}{}
}

// Values returns the oids sorted, so the persisted form is stable
// between saves.
func (s SeenSet) Values() []OID {
	oids := make([]OID, 0, len(s))
	for oid := range s {
		oids = append(oids, oid)
	}
	slices.Sort(oids)
	return oids
}
