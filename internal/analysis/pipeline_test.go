package analysis

import (
	"database/sql"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/lox/crimereport/internal/models"
)

func pipelineTable(t *testing.T, n int, withGeo bool) *Table {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	categories := []string{"THEFT", "BATTERY", "NARCOTICS", "ASSAULT", "BURGLARY"}
	locations := []string{"STREET", "RESIDENCE", "APARTMENT", "SIDEWALK"}

	records := make([]models.IncidentRecord, n)
	for i := range records {
		ts := time.Date(2014+rng.Intn(3), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), rng.Intn(24), 0, 0, 0, time.UTC)
		records[i] = models.IncidentRecord{
			PrimaryType:  categories[rng.Intn(len(categories))],
			LocationDesc: locations[rng.Intn(len(locations))],
			Arrest:       rng.Intn(2) == 0,
			OccurredAt:   sql.NullTime{Time: ts, Valid: true},
		}
		if withGeo {
			records[i].Latitude = sql.NullFloat64{Float64: 41.6 + rng.Float64()*0.4, Valid: true}
			records[i].Longitude = sql.NullFloat64{Float64: -87.9 + rng.Float64()*0.4, Valid: true}
		}
	}
	return Normalize(records, withGeo)
}

func TestRunIdempotent(t *testing.T) {
	table := pipelineTable(t, 500, true)
	cfg := Config{TopN: 10, SampleCap: 100, SampleSeed: 1, GridSize: 20}

	a := Run(table, cfg)
	b := Run(table, cfg)

	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over the same table produced different results")
	}
}

func TestRunWithoutGeo(t *testing.T) {
	table := pipelineTable(t, 200, false)
	res := Run(table, DefaultConfig())

	if res.HasGeo {
		t.Error("HasGeo = true, want false")
	}
	if res.Sample != nil {
		t.Errorf("Sample = %v, want nil", res.Sample)
	}
	if res.Density != nil {
		t.Errorf("Density = %v, want nil", res.Density)
	}
	// The non-spatial views are unaffected.
	if len(res.TopPrimary) == 0 || len(res.Monthly) == 0 {
		t.Error("non-spatial views missing")
	}
}

func TestRunEmptyInput(t *testing.T) {
	table := Normalize(nil, false)
	res := Run(table, DefaultConfig())

	if res.TotalRows != 0 || res.WithTimestamp != 0 || res.Geocoded != 0 {
		t.Errorf("row accounting = %d/%d/%d, want 0/0/0", res.TotalRows, res.WithTimestamp, res.Geocoded)
	}
	if len(res.TopPrimary) != 0 || len(res.Monthly) != 0 {
		t.Error("ranking or series non-empty for empty input")
	}
	if len(res.Weekday) != 7 {
		t.Errorf("weekday bins = %d, want 7 even when empty", len(res.Weekday))
	}
	for _, w := range res.Weekday {
		if w.Count != 0 {
			t.Errorf("%s = %d, want 0", w.Weekday, w.Count)
		}
	}
	for m := time.January; m <= time.December; m++ {
		if got := res.DailyByMonth.Month(m); len(got) != 0 {
			t.Errorf("month %v = %v, want empty", m, got)
		}
	}
}

func TestRunAccounting(t *testing.T) {
	table := pipelineTable(t, 300, true)
	res := Run(table, Config{TopN: 10, SampleCap: 50, SampleSeed: 1, GridSize: 10})

	if res.TotalRows != 300 {
		t.Errorf("TotalRows = %d, want 300", res.TotalRows)
	}
	if got, want := res.Cumulative[len(res.Cumulative)-1].Count, res.WithTimestamp; got != want {
		t.Errorf("final cumulative = %d, want %d", got, want)
	}
	if got := len(res.Sample); got != 50 {
		t.Errorf("sample size = %d, want cap 50", got)
	}
	if res.Density == nil {
		t.Fatal("Density = nil")
	}
}
