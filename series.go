package timemanager

import (
	"sort"
	"time"

	"github.com/cockroachdb/errors"
)

// Series is an ordered mapping from time.Time to V.  Keys are unique and
// kept in ascending order regardless of insertion order, so every lookup is
// a single binary search.  Internally it is a sorted key slice parallel to a
// value slice, the same shape the TimeValueStore keyframe array uses.
//
// A Series is owned by one caller at a time; it does no internal locking.
type Series[V any] struct {
	keys   []time.Time
	values []V
}

// NewSeries creates an empty series.
func NewSeries[V any]() *Series[V] {
	return &Series[V]{}
}

// NewSeriesFromMap creates a series holding the entries of m.
func NewSeriesFromMap[V any](m map[time.Time]V) *Series[V] {
	s := NewSeries[V]()
	for k, v := range m {
		s.Set(k, v)
	}
	return s
}

// searchCeil returns the index of the first stored key >= key.
func (s *Series[V]) searchCeil(key time.Time) int {
	return sort.Search(len(s.keys), func(i int) bool { return !s.keys[i].Before(key) })
}

// searchAbove returns the index of the first stored key > key.
func (s *Series[V]) searchAbove(key time.Time) int {
	return sort.Search(len(s.keys), func(i int) bool { return s.keys[i].After(key) })
}

// Len returns the number of stored entries.
func (s *Series[V]) Len() int {
	return len(s.keys)
}

// Get returns the value stored at exactly key, or ErrKeyNotFound.
func (s *Series[V]) Get(key time.Time) (V, error) {
	idx := s.searchCeil(key)
	if idx < len(s.keys) && s.keys[idx].Equal(key) {
		return s.values[idx], nil
	}
	var zero V
	return zero, errors.Wrapf(ErrKeyNotFound, "no entry at %s", key.Format(time.RFC3339Nano))
}

// Set inserts or overwrites the value at key, keeping the keys sorted.
func (s *Series[V]) Set(key time.Time, value V) {
	idx := s.searchCeil(key)
	if idx < len(s.keys) && s.keys[idx].Equal(key) {
		s.values[idx] = value
		return
	}

	// Insert at idx to keep chronological order.
	s.keys = append(s.keys[:idx], append([]time.Time{key}, s.keys[idx:]...)...)
	s.values = append(s.values[:idx], append([]V{value}, s.values[idx:]...)...)
}

// Delete removes the entry stored at exactly key, or returns ErrKeyNotFound.
func (s *Series[V]) Delete(key time.Time) error {
	idx := s.searchCeil(key)
	if idx >= len(s.keys) || !s.keys[idx].Equal(key) {
		return errors.Wrapf(ErrKeyNotFound, "no entry at %s", key.Format(time.RFC3339Nano))
	}
	s.keys = append(s.keys[:idx], s.keys[idx+1:]...)
	s.values = append(s.values[:idx], s.values[idx+1:]...)
	return nil
}

// Slice returns a new independent series holding every entry with
// start <= key < end, consistent with the half-open TimeRange convention.
// An empty result is not an error.
func (s *Series[V]) Slice(start, end time.Time) *Series[V] {
	lo := s.searchCeil(start)
	hi := s.searchCeil(end)
	if hi < lo {
		hi = lo
	}

	out := &Series[V]{
		keys:   make([]time.Time, hi-lo),
		values: make([]V, hi-lo),
	}
	copy(out.keys, s.keys[lo:hi])
	copy(out.values, s.values[lo:hi])
	return out
}

// At returns the entry at position i in key order.  It panics when i is out
// of range, like a slice index.
func (s *Series[V]) At(i int) (time.Time, V) {
	return s.keys[i], s.values[i]
}

// Keys returns a copy of the stored keys in ascending order.
func (s *Series[V]) Keys() []time.Time {
	out := make([]time.Time, len(s.keys))
	copy(out, s.keys)
	return out
}

// Values returns a copy of the stored values in key order.
func (s *Series[V]) Values() []V {
	out := make([]V, len(s.values))
	copy(out, s.values)
	return out
}

// The four directional queries return the matched entry as a (key, value)
// pair so the caller can see which stored instant answered the query.

// LastIncludeNow returns the entry with the greatest key <= key, or
// ErrNotFound when every stored key is after key.
func (s *Series[V]) LastIncludeNow(key time.Time) (time.Time, V, error) {
	return s.at(s.searchAbove(key) - 1)
}

// LastExcludeNow returns the entry with the greatest key < key, or
// ErrNotFound when every stored key is at or after key.
func (s *Series[V]) LastExcludeNow(key time.Time) (time.Time, V, error) {
	return s.at(s.searchCeil(key) - 1)
}

// NextIncludeNow returns the entry with the smallest key >= key, or
// ErrNotFound when every stored key is before key.
func (s *Series[V]) NextIncludeNow(key time.Time) (time.Time, V, error) {
	return s.at(s.searchCeil(key))
}

// NextExcludeNow returns the entry with the smallest key > key, or
// ErrNotFound when every stored key is at or before key.
func (s *Series[V]) NextExcludeNow(key time.Time) (time.Time, V, error) {
	return s.at(s.searchAbove(key))
}

func (s *Series[V]) at(i int) (time.Time, V, error) {
	if i < 0 || i >= len(s.keys) {
		var zero V
		return time.Time{}, zero, errors.Wrap(ErrNotFound, "no entry on the queried side")
	}
	return s.keys[i], s.values[i], nil
}
