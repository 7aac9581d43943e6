// Package timemanager provides time-domain data structures: a half-open
// TimeRange, a normalized RangeSet of disjoint ranges, and an ordered
// time-indexed Series with nearest-neighbor queries.
package timemanager

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidOperation is returned when an operation is not defined for
	// its operands, such as the union of two disjoint, non-adjacent ranges.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrKeyNotFound is returned by Series.Get and Series.Delete when the
	// exact key is not stored.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotFound is returned by the directional series queries when no
	// stored key qualifies on the required side of the query point.
	ErrNotFound = errors.New("not found")
)
