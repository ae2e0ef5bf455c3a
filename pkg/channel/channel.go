// Package channel holds per-record values bound to named visual channels.
//
// A [Set] keeps channels in binding order so tips list them the way the
// user declared them. Derived channels point at the channel they were
// computed from through Source; a channel with NoSource set is synthetic
// and never displayed.
package channel

import (
	"github.com/matzehuels/tipmark/pkg/errors"
)

// Channel is one column of values, optionally associated with a scale.
type Channel struct {
	Values   []any
	Scale    string   // scale name, "" for none
	Source   *Channel // channel this one was derived from
	NoSource bool     // synthetic channel without a displayable source
}

// Set is an ordered collection of named channels.
type Set struct {
	keys []string
	m    map[string]*Channel
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{m: make(map[string]*Channel)}
}

// Add binds ch to key. Re-adding a key replaces the channel but keeps its
// position.
func (s *Set) Add(key string, ch *Channel) {
	if _, ok := s.m[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.m[key] = ch
}

// Keys returns the channel keys in binding order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

// Get returns the channel bound to key, or nil.
func (s *Set) Get(key string) *Channel {
	if s == nil {
		return nil
	}
	return s.m[key]
}

// Source follows the Source chain of the channel bound to key and returns
// the channel at its end. It returns nil if key is unbound or if the chain
// ends in a synthetic channel.
func (s *Set) Source(key string) *Channel {
	ch := s.Get(key)
	if ch == nil {
		return nil
	}
	for ch.Source != nil {
		ch = ch.Source
	}
	if ch.NoSource {
		return nil
	}
	return ch
}

// Len returns the number of records, taken from the first channel.
func (s *Set) Len() int {
	for _, k := range s.Keys() {
		return len(s.m[k].Values)
	}
	return 0
}

// Binding maps a record field to a channel.
type Binding struct {
	Key   string `toml:"key" json:"key"`
	Field string `toml:"field" json:"field"`
	Scale string `toml:"scale,omitempty" json:"scale,omitempty"`
}

// Bind builds a channel set from records. Missing fields yield nil values.
func Bind(records []map[string]any, bindings []Binding) (*Set, error) {
	s := NewSet()
	for _, b := range bindings {
		if b.Key == "" || b.Field == "" {
			return nil, errors.New(errors.ErrCodeInvalidChannel, "channel binding needs key and field: %+v", b)
		}
		if s.Get(b.Key) != nil {
			return nil, errors.New(errors.ErrCodeInvalidChannel, "channel %q bound twice", b.Key)
		}
		values := make([]any, len(records))
		for i, r := range records {
			values[i] = r[b.Field]
		}
		s.Add(b.Key, &Channel{Values: values, Scale: b.Scale})
	}
	return s, nil
}
