package analysis

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lox/crimereport/internal/metrics"
	"github.com/lox/crimereport/internal/models"
)

// Config carries the knobs of the aggregation run. Passing it explicitly
// keeps every view builder free of module-level state and deterministic in
// isolation.
type Config struct {
	TopN       int   // ranking length for category views
	SampleCap  int   // maximum spatial sample size
	SampleSeed int64 // seed for the reproducible spatial sample
	GridSize   int   // density grid resolution (GridSize x GridSize)
}

// DefaultConfig matches the original report parameters.
func DefaultConfig() Config {
	return Config{
		TopN:       10,
		SampleCap:  20000,
		SampleSeed: 1,
		GridSize:   80,
	}
}

// Result is the complete set of derived views for one run, plus the row
// accounting that makes exclusions observable.
type Result struct {
	Config Config

	TotalRows     int
	WithTimestamp int
	Geocoded      int
	HasGeo        bool

	TopPrimary   CategoryCountView
	ArrestRate   RateByCategoryView
	Monthly      TimeSeriesView
	Cumulative   TimeSeriesView
	Hourly       HourlyDistribution
	Weekday      WeekdayDistribution
	TopLocations CategoryCountView
	Sample       SpatialSampleView
	Density      *DensityGridView
	DailyByMonth MonthlyDistribution
}

func primaryType(r models.IncidentRecord) string  { return r.PrimaryType }
func locationDesc(r models.IncidentRecord) string { return r.LocationDesc }
func arrested(r models.IncidentRecord) bool       { return r.Arrest }

// Run builds all derived views from the normalized table. The views are
// mutually independent pure functions of the table, so they are computed
// concurrently; each goroutine writes a distinct Result field.
func Run(t *Table, cfg Config) *Result {
	res := &Result{
		Config:        cfg,
		TotalRows:     len(t.Records),
		WithTimestamp: t.WithTimestamp(),
		Geocoded:      t.Geocoded(),
		HasGeo:        t.HasGeo,
	}

	// The arrest-rate view is restricted to and ordered by this ranking, so
	// it is computed up front rather than in the fan-out.
	res.TopPrimary = TopCategories(t, primaryType, cfg.TopN)

	var wg sync.WaitGroup
	build := func(view string, f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer := prometheus.NewTimer(metrics.ViewBuildSeconds.WithLabelValues(view))
			defer timer.ObserveDuration()
			f()
		}()
	}

	build("arrest_rate", func() {
		res.ArrestRate = RateByCategory(t, res.TopPrimary, primaryType, arrested)
	})
	build("monthly_series", func() {
		series, _ := MonthlySeries(t)
		res.Monthly = series
		res.Cumulative = series.Cumulative()
	})
	build("hourly", func() {
		res.Hourly = HourlyCounts(t)
	})
	build("weekday", func() {
		res.Weekday = WeekdayCounts(t)
	})
	build("top_locations", func() {
		res.TopLocations = TopCategories(t, locationDesc, cfg.TopN)
	})
	build("spatial", func() {
		res.Sample = SampleLocations(t, cfg.SampleCap, cfg.SampleSeed)
		res.Density = BinDensity(res.Sample, cfg.GridSize)
	})
	build("daily_by_month", func() {
		res.DailyByMonth = DailyCountsByMonth(t)
	})
	wg.Wait()

	return res
}
