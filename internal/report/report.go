// Package report turns an aggregation result into an ordered sequence of
// figure artifacts plus captions, ready for document assembly.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/crimereport/internal/analysis"
	"github.com/lox/crimereport/internal/render"
)

// Figure is one rendered artifact reference.
type Figure struct {
	Filename string
	Kind     render.Kind
	Title    string
	Caption  string
}

// Build renders every available view into outDir and returns the figures in
// report order. Spatial figures are skipped, without error, when the dataset
// has no coordinate columns.
func Build(res *analysis.Result, outDir string) ([]Figure, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var figs []Figure
	add := func(filename string, kind render.Kind, title, caption string, png []byte, err error) error {
		if err != nil {
			return fmt.Errorf("render %s: %w", filename, err)
		}
		if err := os.WriteFile(filepath.Join(outDir, filename), png, 0644); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
		figs = append(figs, Figure{Filename: filename, Kind: kind, Title: title, Caption: caption})
		return nil
	}

	png, err := render.Bar(barValues(res.TopPrimary), render.Labels{
		Title: fmt.Sprintf("Top %d Primary Incident Types", len(res.TopPrimary)),
		Y:     "Count",
	})
	if err := add("vis1_top_primary.png", render.KindBar,
		"Top primary incident types",
		"The most frequent primary incident categories, ordered by count.",
		png, err); err != nil {
		return nil, err
	}

	png, err = render.Bar(rateValues(res.ArrestRate), render.Labels{
		Title: "Arrest Rate by Primary Type",
		Y:     "Arrest rate (proportion)",
	})
	if err := add("vis2_arrest_rate.png", render.KindBar,
		"Arrest rate by primary type",
		"Proportion of incidents leading to an arrest, restricted to the top primary types in rank order.",
		png, err); err != nil {
		return nil, err
	}

	png, err = render.Line(seriesPoints(res.Monthly), render.Labels{
		Title: "Monthly Incident Counts",
		Y:     "Count",
	})
	if err := add("vis3_monthly_ts.png", render.KindLine,
		"Monthly incident counts",
		"Incidents per calendar month; months with no incidents are absent.",
		png, err); err != nil {
		return nil, err
	}

	png, err = render.Histogram(res.Hourly[:], render.Labels{
		Title: "Hourly Distribution of Incidents",
		X:     "Hour of day",
		Y:     "Count",
	})
	if err := add("vis4_hourly_hist.png", render.KindHistogram,
		"Hourly distribution",
		"Incident counts by hour of day, all 24 hours shown.",
		png, err); err != nil {
		return nil, err
	}

	png, err = render.Bar(weekdayValues(res.Weekday), render.Labels{
		Title: "Incidents by Weekday",
		Y:     "Count",
	})
	if err := add("vis5_weekday.png", render.KindBar,
		"Incidents by weekday",
		"Incident counts Monday through Sunday; unobserved weekdays show zero.",
		png, err); err != nil {
		return nil, err
	}

	png, err = render.Bar(barValues(res.TopLocations), render.Labels{
		Title: fmt.Sprintf("Top %d Location Descriptions", len(res.TopLocations)),
		Y:     "Count",
	})
	if err := add("vis6_top_locations.png", render.KindBar,
		"Top location descriptions",
		"The most frequent incident locations, ordered by count.",
		png, err); err != nil {
		return nil, err
	}

	if res.HasGeo {
		png, err = render.Scatter(res.Sample, render.Labels{
			Title: "Spatial Scatter of Incidents (sampled)",
			X:     "Longitude",
			Y:     "Latitude",
		})
		if err := add("vis7_scatter.png", render.KindScatter,
			"Spatial scatter",
			fmt.Sprintf("A reproducible random sample of %d geocoded incidents.", len(res.Sample)),
			png, err); err != nil {
			return nil, err
		}

		png, err = render.Heatmap(res.Density, render.Labels{
			Title: "Spatial Density of Incidents (sampled)",
			X:     "Longitude",
			Y:     "Latitude",
		})
		if err := add("vis8_density.png", render.KindDensity,
			"Spatial density",
			"Incident density over the sample's bounding box.",
			png, err); err != nil {
			return nil, err
		}
	}

	png, err = render.Line(seriesPoints(res.Cumulative), render.Labels{
		Title: "Cumulative Incident Count Over Time",
		Y:     "Cumulative count",
	})
	if err := add("vis9_cumulative.png", render.KindLine,
		"Cumulative incidents",
		"Running total of incidents over the monthly series.",
		png, err); err != nil {
		return nil, err
	}

	png, err = render.Box(monthlyGroups(res.DailyByMonth), monthLabels(), render.Labels{
		Title: "Distribution of Daily Incident Counts by Month",
		X:     "Month",
		Y:     "Daily incident count",
	})
	if err := add("vis10_daily_by_month.png", render.KindBox,
		"Daily counts by month",
		"Per-day incident counts grouped by calendar month across all years.",
		png, err); err != nil {
		return nil, err
	}

	return figs, nil
}

func barValues(v analysis.CategoryCountView) []render.Value {
	out := make([]render.Value, len(v))
	for i, c := range v {
		out[i] = render.Value{Label: c.Category, V: float64(c.Count)}
	}
	return out
}

func rateValues(v analysis.RateByCategoryView) []render.Value {
	out := make([]render.Value, len(v))
	for i, c := range v {
		out[i] = render.Value{Label: c.Category, V: c.Rate}
	}
	return out
}

func weekdayValues(v analysis.WeekdayDistribution) []render.Value {
	out := make([]render.Value, len(v))
	for i, w := range v {
		out[i] = render.Value{Label: w.Weekday, V: float64(w.Count)}
	}
	return out
}

func seriesPoints(ts analysis.TimeSeriesView) []render.TimePoint {
	out := make([]render.TimePoint, len(ts))
	for i, p := range ts {
		out[i] = render.TimePoint{T: p.Period, V: float64(p.Count)}
	}
	return out
}

func monthlyGroups(d analysis.MonthlyDistribution) [][]float64 {
	out := make([][]float64, len(d))
	for i, counts := range d {
		xs := make([]float64, len(counts))
		for j, n := range counts {
			xs[j] = float64(n)
		}
		out[i] = xs
	}
	return out
}

func monthLabels() []string {
	labels := make([]string, 12)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	return labels
}
