package analysis

import (
	"time"

	"github.com/golang/geo/s2"
)

// The view types in this file are derived, read-only snapshots of one
// aggregation run. None is mutated after construction.

// CategoryCount is one (category, count) pair of a ranking.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCountView is an ordered top-N ranking: counts descending, ties
// broken by first-occurrence order in the input table.
type CategoryCountView []CategoryCount

// Categories returns the ranked category names in view order.
func (v CategoryCountView) Categories() []string {
	out := make([]string, len(v))
	for i, c := range v {
		out[i] = c.Category
	}
	return out
}

// CategoryRate is a per-category boolean mean in [0,1].
type CategoryRate struct {
	Category string
	Rate     float64
}

// RateByCategoryView is ordered by the CategoryCountView that restricted it;
// its domain is always a subset of that ranking's categories.
type RateByCategoryView []CategoryRate

// PeriodCount is one calendar-month bucket of a time series.
type PeriodCount struct {
	Period time.Time // first instant of the month, UTC
	Count  int
}

// TimeSeriesView is sorted ascending by period. Months with no rows are
// absent, not zero-filled.
type TimeSeriesView []PeriodCount

// Cumulative returns the running sum over the series. The result has the
// same domain, is non-decreasing, and its last value equals the series total.
func (ts TimeSeriesView) Cumulative() TimeSeriesView {
	out := make(TimeSeriesView, len(ts))
	total := 0
	for i, p := range ts {
		total += p.Count
		out[i] = PeriodCount{Period: p.Period, Count: total}
	}
	return out
}

// Total returns the sum of all bucket counts.
func (ts TimeSeriesView) Total() int {
	total := 0
	for _, p := range ts {
		total += p.Count
	}
	return total
}

// HourlyDistribution is a canonical 24-bin count vector, index = hour of day.
// Every bin is present even when zero.
type HourlyDistribution [24]int

// WeekdayCount is one bin of the weekday distribution.
type WeekdayCount struct {
	Weekday string
	Count   int
}

// WeekdayOrder is the fixed domain of the weekday distribution.
var WeekdayOrder = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayDistribution always has exactly 7 entries, in WeekdayOrder, with
// zero counts for unobserved weekdays.
type WeekdayDistribution [7]WeekdayCount

// Point is one geotagged sample location.
type Point struct {
	Lat float64
	Lng float64
}

// SpatialSampleView is a reproducible without-replacement subsample of the
// geocoded rows. Nil when the table has no coordinate columns.
type SpatialSampleView []Point

// GridCell indexes a density grid bin: X along longitude, Y along latitude.
type GridCell struct {
	X int
	Y int
}

// DensityGridView is a 2-D spatial histogram over the sample's bounding box.
// Only non-zero cells are materialized.
type DensityGridView struct {
	Bounds s2.Rect
	Size   int
	Cells  map[GridCell]int
}

// MonthlyDistribution maps each calendar month (index = month-1) to the
// ordered per-day incident counts observed in that month across all years.
// Months with no data hold an empty slice.
type MonthlyDistribution [12][]int

// Month returns the per-day counts for m.
func (d MonthlyDistribution) Month(m time.Month) []int {
	return d[int(m)-1]
}
