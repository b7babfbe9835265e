package region

import (
	"errors"
	"iter"
	"sync"
)

// Done is returned by QueryIter.Next when there are no more regions. Like
// iterator.Done in google.golang.org/api/iterator, it marks the normal end
// of iteration and carries no Err prefix.
//
//lint:ignore ST1012 Done is an iteration sentinel, not an error condition.
var Done = errors.New("no more regions")

// regionSource enumerates the mapped regions of the process in ascending
// address order using one OS interface. A source may start with a region
// below the requested origin and may continue past the upper bound;
// QueryIter discards both.
type regionSource interface {
	// next returns ok == false once the address space is exhausted.
	next() (r Region, ok bool, err error)
}

var (
	addressSpaceOnce       sync.Once
	minAddress, maxAddress uintptr
)

// addressSpace returns the half-open range of addresses a process can map.
func addressSpace() (uintptr, uintptr) {
	addressSpaceOnce.Do(func() {
		minAddress, maxAddress = osAddressSpace()
	})
	return minAddress, maxAddress
}

// QueryIter yields the mapped regions overlapping a range, in ascending
// order. After it returns an error, or Done, it returns Done forever.
type QueryIter struct {
	source       regionSource
	lower, upper uintptr
}

// newQueryIter creates an iterator over [origin, origin+size), clamped to
// the process' address space.
func newQueryIter(origin, size uintptr) (*QueryIter, error) {
	minAddr, maxAddr := addressSpace()
	lower := max(origin, minAddr)
	upper := min(saturatingAdd(origin, size), maxAddr)

	q := &QueryIter{lower: lower, upper: upper}
	if lower >= upper {
		return q, nil
	}

	source, err := newRegionSource(lower, upper)
	if err != nil {
		return nil, err
	}
	q.source = source
	return q, nil
}

// Next returns the next region. It returns Done once the range has been
// covered. Any other error ends the iteration: the remaining state of the
// memory map is unknown, so there is nothing to retry.
func (q *QueryIter) Next() (Region, error) {
	if q.source == nil {
		return Region{}, Done
	}

	for {
		r, ok, err := q.source.next()
		if err != nil {
			q.source = nil
			return Region{}, err
		}
		if !ok {
			q.source = nil
			return Region{}, Done
		}

		// Some OSs return the region enclosing the origin, or even an
		// earlier one.
		if r.End() <= q.lower {
			continue
		}

		if r.base >= q.upper {
			q.source = nil
			return Region{}, Done
		}

		return r, nil
	}
}

// All returns an iterator for use with range. An error is yielded at most
// once, as the final pair.
func (q *QueryIter) All() iter.Seq2[Region, error] {
	return func(yield func(Region, error) bool) {
		for {
			r, err := q.Next()
			if err == Done {
				return
			}
			if !yield(r, err) || err != nil {
				return
			}
		}
	}
}

// Collect drains the iterator.
func (q *QueryIter) Collect() ([]Region, error) {
	var regions []Region
	for r, err := range q.All() {
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// Query returns the region enclosing addr. The address is rounded down to
// its page boundary.
//
// If addr is not within a mapped region ErrUnmappedRegion is returned. On
// Windows, MEM_FREE memory is unmapped, while MEM_RESERVE memory is
// reported as a region with no access rights for which IsCommitted is
// false.
//
// The region returned by VirtualQuery on Windows starts at the queried
// page rather than the allocation's first page with the same properties.
func Query(addr uintptr) (Region, error) {
	base, size, err := roundToPageBoundaries(addr, 1)
	if err != nil {
		return Region{}, err
	}

	q, err := newQueryIter(base, size)
	if err != nil {
		return Region{}, err
	}

	r, err := q.Next()
	if err == Done {
		return Region{}, ErrUnmappedRegion
	}
	return r, err
}

// QueryRange returns an iterator over the mapped regions that overlap
// [addr, addr+size). The address is rounded down and the end rounded up to
// page boundaries; size may not be zero.
//
// Only mapped regions are returned. Holes between two regions must be
// inferred by comparing their ranges. Adjacent regions with identical
// properties may or may not be merged, depending on the OS.
func QueryRange(addr, size uintptr) (*QueryIter, error) {
	base, size, err := roundToPageBoundaries(addr, size)
	if err != nil {
		return nil, err
	}
	return newQueryIter(base, size)
}
