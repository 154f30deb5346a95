// Package lookuptable implements a fixed-size one-dimensional lookup table
// with linear interpolation between samples.
//
// The interval containing a query is located by a binary search whose bound
// updates are masked selects rather than conditional jumps: every iteration
// executes the same instructions regardless of the comparison outcome, and
// the number of iterations depends only on the table size.
package lookuptable

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Table maps an independent value to a dependent value. It is immutable
// after construction, so it may be queried from multiple goroutines
// without synchronization.
type Table[T Number] struct {
	x []T
	f []T
}

// New returns a table over private copies of x (independent samples) and
// f (dependent samples).
//
// x is expected to be sorted in non-decreasing order; this is not checked
// here (see Validate and NewStrict). An empty table or a table with
// len(x) != len(f) is accepted, and Get returns zero for it.
func New[T Number](x, f []T) *Table[T] {
	return &Table[T]{
		x: slices.Clone(x),
		f: slices.Clone(f),
	}
}

// NewStrict is the same as New, but returns an error if the table
// does not pass Validate.
func NewStrict[T Number](x, f []T) (*Table[T], error) {
	tbl := New(x, f)
	if err := tbl.Validate(); err != nil {
		return nil, fmt.Errorf("unable to validate the table: %w", err)
	}
	return tbl, nil
}

// Len returns the amount of independent samples.
func (tbl *Table[T]) Len() int {
	return len(tbl.x)
}

func (tbl *Table[T]) X() []T {
	return slices.Clone(tbl.x)
}

func (tbl *Table[T]) F() []T {
	return slices.Clone(tbl.f)
}

func (tbl *Table[T]) isDegenerate() bool {
	return len(tbl.x) == 0 || len(tbl.f) != len(tbl.x)
}

// Validate reports every problem that makes Get fall back to zero or
// return meaningless values. All problems are aggregated into one error;
// use errors.Is with ErrEmpty, ErrLengthMismatch, ErrNaN and ErrNotSorted
// to inspect it.
func (tbl *Table[T]) Validate() error {
	var mErr *multierror.Error
	if len(tbl.x) == 0 {
		mErr = multierror.Append(mErr, ErrEmpty)
	}
	if len(tbl.f) != len(tbl.x) {
		mErr = multierror.Append(mErr, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(tbl.x), len(tbl.f)))
	}
	for i := range tbl.x {
		if isNaN(tbl.x[i]) {
			mErr = multierror.Append(mErr, fmt.Errorf("%w: x[%d]", ErrNaN, i))
		}
	}
	for i := range tbl.f {
		if isNaN(tbl.f[i]) {
			mErr = multierror.Append(mErr, fmt.Errorf("%w: f[%d]", ErrNaN, i))
		}
	}
	for i := 1; i < len(tbl.x); i++ {
		if tbl.x[i] < tbl.x[i-1] {
			mErr = multierror.Append(mErr, fmt.Errorf("%w: x[%d] == %v < x[%d] == %v", ErrNotSorted, i, tbl.x[i], i-1, tbl.x[i-1]))
		}
	}
	return mErr.ErrorOrNil()
}

// isNaN is always false for integer T.
func isNaN[T Number](v T) bool {
	return v != v
}

// Get returns the value linearly interpolated at t.
//
// Queries outside of [x[0], x[N-1]] are clamped to f[0] and f[N-1].
// Zero is returned for an empty table, for a table with mismatching
// lengths, and for a zero-width interval. The search guarantees
// x[low] < t <= x[high] even for unsorted x, so a zero-width interval
// only happens for a NaN query or for samples that are equal once
// converted to float64. Get never panics.
func (tbl *Table[T]) Get(t T) T {
	if tbl.isDegenerate() {
		return 0
	}

	x, f := tbl.x, tbl.f
	if t <= x[0] {
		return f[0]
	}
	last := len(x) - 1
	if t >= x[last] {
		return f[last]
	}

	low, high := tbl.search(t)

	// interpolated in float64 and narrowed back to T
	xl, xh := float64(x[low]), float64(x[high])
	fl, fh := float64(f[low]), float64(f[high])
	denom := xh - xl
	if denom == 0 {
		return 0
	}
	return T((fh-fl)/denom*float64(t) + (xh*fl-xl*fh)/denom)
}

// Bracket returns the interval [x[low], x[high]] (high == low+1) that Get
// interpolates over for t. ok is false if the table is degenerate or
// t is clamped to a boundary.
func (tbl *Table[T]) Bracket(t T) (low, high int, ok bool) {
	if tbl.isDegenerate() {
		return 0, 0, false
	}
	if t <= tbl.x[0] || t >= tbl.x[len(tbl.x)-1] {
		return 0, 0, false
	}
	l, h := tbl.search(t)
	return int(l), int(h), true
}

// search requires x[0] < t < x[N-1], so N >= 2.
//
// Loop invariant: x[low] < t <= x[high]; for sorted x this makes [low, high]
// the only bracketing interval. Each iteration
// halves high-low, so the loop runs ceil(log2(N-1)) times.
func (tbl *Table[T]) search(t T) (low, high uint) {
	x := tbl.x
	low, high = 0, uint(len(x)-1)
	for high-low > 1 {
		mid := low + (high-low)>>1
		mask := maskFromBool(t > x[mid])
		low = selectUint(mask, mid, low)
		high = selectUint(mask, high, mid)
	}
	return low, high
}
