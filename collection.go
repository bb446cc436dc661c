package ledger

import (
	"context"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/osdevgrp/ledger/date"
)

// InfoCollection is the temporal container of one ledger owner's figures,
// at most one record per month bucket.
//
// It distinguishes stock queries (the state of a balance at a point in time)
// from flow aggregations (figures accumulated over a range of months); the
// owner kind decides which of the two is meaningful.
type InfoCollection[T Values[T]] struct {
	records map[date.YearMonth]T
}

// NewInfoCollection creates an empty collection.
func NewInfoCollection[T Values[T]]() *InfoCollection[T] {
	return &InfoCollection[T]{records: make(map[date.YearMonth]T)}
}

// Add merges a record into the collection. A record for an existing bucket
// is combined field-wise with the stored one, never duplicated.
func (c *InfoCollection[T]) Add(rec InfoRecord[T]) {
	c.records[rec.Period] = c.records[rec.Period].Add(rec.Values)
}

// Set replaces the record for the given bucket wholesale.
func (c *InfoCollection[T]) Set(rec InfoRecord[T]) {
	c.records[rec.Period] = rec.Values
}

// Get returns the stored values for a bucket, and whether the bucket exists.
func (c *InfoCollection[T]) Get(period date.YearMonth) (T, bool) {
	v, ok := c.records[period]
	return v, ok
}

// Len returns the number of month buckets in the collection.
func (c *InfoCollection[T]) Len() int { return len(c.records) }

// Records iterates over all records in chronological order.
func (c *InfoCollection[T]) Records() iter.Seq[InfoRecord[T]] {
	periods := slices.SortedFunc(maps.Keys(c.records), date.YearMonth.Compare)
	return func(yield func(InfoRecord[T]) bool) {
		for _, p := range periods {
			if !yield(InfoRecord[T]{Period: p, Values: c.records[p]}) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the collection.
func (c *InfoCollection[T]) Clone() *InfoCollection[T] {
	return &InfoCollection[T]{records: maps.Clone(c.records)}
}

// Snapshot holds the three point-in-time views of a collection relative to
// a status date. Absent data shows as a zero-valued record, never an error.
type Snapshot[T Values[T]] struct {
	StatusDate date.Date

	// AtStatusDate is the record of the status date's own month.
	AtStatusDate InfoRecord[T]
	// AtEndOfLastMonthFromStatusDate is the record of the calendar month
	// immediately preceding the status date's month.
	AtEndOfLastMonthFromStatusDate InfoRecord[T]
	// AtEndOfLastYearFromStatusDate is the chronologically latest record of
	// the year preceding the status date's year. Records for that year may be
	// sparse; this is a most-recent lookup, not a fixed December lookup.
	AtEndOfLastYearFromStatusDate InfoRecord[T]
}

// Calculate computes the three point-in-time snapshots for a status date.
//
// The computation is pure and synchronous; the context is accepted for
// symmetry with the I/O-bound repository calls that usually surround it,
// and only cancellation is honored.
func (c *InfoCollection[T]) Calculate(ctx context.Context, statusDate date.Date) (Snapshot[T], error) {
	if err := ctx.Err(); err != nil {
		return Snapshot[T]{}, err
	}
	s := Snapshot[T]{StatusDate: statusDate}
	s.AtStatusDate = c.at(statusDate.YearMonth())
	s.AtEndOfLastMonthFromStatusDate = c.at(statusDate.YearMonth().Prev())
	s.AtEndOfLastYearFromStatusDate = c.latestOfYear(statusDate.Year() - 1)
	return s, nil
}

// at returns the record for a bucket, zero-valued if absent.
func (c *InfoCollection[T]) at(period date.YearMonth) InfoRecord[T] {
	return InfoRecord[T]{Period: period, Values: c.records[period]}
}

// latestOfYear returns the record with the greatest bucket among those of the
// given year, or a zero-valued record for that year's December.
func (c *InfoCollection[T]) latestOfYear(year int) InfoRecord[T] {
	best := InfoRecord[T]{Period: date.YM(year, time.December)}
	found := false
	for p, v := range c.records {
		if p.Year() != year {
			continue
		}
		if !found || p.After(best.Period) {
			best = InfoRecord[T]{Period: p, Values: v}
			found = true
		}
	}
	return best
}

// SumRange accumulates the values of every bucket from 'from' through 'to',
// boundaries included.
func (c *InfoCollection[T]) SumRange(from, to date.YearMonth) T {
	var sum T
	for p := range from.Months(to) {
		sum = sum.Add(c.records[p])
	}
	return sum
}

// YearToDate accumulates the values from January of the status date's year
// through the status month, inclusive.
func (c *InfoCollection[T]) YearToDate(statusDate date.Date) T {
	return c.SumRange(date.YM(statusDate.Year(), time.January), statusDate.YearMonth())
}

// LastYear accumulates the values of every month of the year preceding the
// status date's year.
func (c *InfoCollection[T]) LastYear(statusDate date.Date) T {
	y := statusDate.Year() - 1
	return c.SumRange(date.YM(y, time.January), date.YM(y, time.December))
}
