package analysis

import (
	"sort"
	"time"
)

// MonthlySeries buckets rows with a valid timestamp into calendar months and
// returns the series sorted ascending by period, plus the number of rows
// excluded for having no timestamp.
func MonthlySeries(t *Table) (TimeSeriesView, int) {
	counts := make(map[time.Time]int)
	excluded := 0
	for i := range t.Records {
		ts := t.Records[i].OccurredAt
		if !ts.Valid {
			excluded++
			continue
		}
		period := time.Date(ts.Time.Year(), ts.Time.Month(), 1, 0, 0, 0, 0, time.UTC)
		counts[period]++
	}

	view := make(TimeSeriesView, 0, len(counts))
	for period, n := range counts {
		view = append(view, PeriodCount{Period: period, Count: n})
	}
	sort.Slice(view, func(i, j int) bool { return view[i].Period.Before(view[j].Period) })
	return view, excluded
}

// DailyCountsByMonth groups rows by (year, month, day) to get one count per
// distinct calendar date, then regroups those counts by month across all
// years. Rows without a timestamp are excluded.
func DailyCountsByMonth(t *Table) MonthlyDistribution {
	type date struct {
		y int
		m int
		d int
	}
	daily := make(map[date]int)
	for i := range t.Temporal {
		tf := &t.Temporal[i]
		if !tf.Valid {
			continue
		}
		daily[date{tf.Year, tf.Month, tf.Day}]++
	}

	dates := make([]date, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		if dates[i].y != dates[j].y {
			return dates[i].y < dates[j].y
		}
		if dates[i].m != dates[j].m {
			return dates[i].m < dates[j].m
		}
		return dates[i].d < dates[j].d
	})

	var dist MonthlyDistribution
	for _, d := range dates {
		dist[d.m-1] = append(dist[d.m-1], daily[d])
	}
	return dist
}
