// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// OverrideRecord is a sparse patch applied over an inventory-derived product.
// A nil field means "inherit from the base product", never "clear".
type OverrideRecord struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// IsEmpty reports whether no field of the record is set.
func (r OverrideRecord) IsEmpty() bool {
	return r.Name == nil && r.Price == nil && r.Description == nil
}

// Apply returns r with every non-nil field of patch replacing its counterpart.
func (r OverrideRecord) Apply(patch OverrideRecord) OverrideRecord {
	if patch.Name != nil {
		v := *patch.Name
		r.Name = &v
	}
	if patch.Price != nil {
		v := *patch.Price
		r.Price = &v
	}
	if patch.Description != nil {
		v := *patch.Description
		r.Description = &v
	}
	return r
}

// OverrideSet holds at most one OverrideRecord per product id and remembers
// the order in which ids were first seen, so a parsed file serializes back
// in the same order.
type OverrideSet struct {
	order   []string
	records map[string]OverrideRecord
}

// NewOverrideSet returns an empty set.
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{records: make(map[string]OverrideRecord)}
}

// Get returns the record stored under id.
func (s *OverrideSet) Get(id string) (OverrideRecord, bool) {
	if s == nil {
		return OverrideRecord{}, false
	}
	r, ok := s.records[id]
	return r, ok
}

// Set stores rec under id. An existing id keeps its position.
func (s *OverrideSet) Set(id string, rec OverrideRecord) {
	if _, ok := s.records[id]; !ok {
		s.order = append(s.order, id)
	}
	s.records[id] = rec
}

// IDs returns the ids in insertion order.
func (s *OverrideSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of records.
func (s *OverrideSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Map returns a copy of the records keyed by id.
func (s *OverrideSet) Map() map[string]OverrideRecord {
	out := make(map[string]OverrideRecord, s.Len())
	for _, id := range s.IDs() {
		out[id] = s.records[id]
	}
	return out
}
