package analysis

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lox/crimereport/internal/models"
)

func TestNormalizeDerivesTemporalFields(t *testing.T) {
	// 2015-06-03 14:30 UTC is a Wednesday.
	records := []models.IncidentRecord{
		{OccurredAt: sql.NullTime{Time: time.Date(2015, 6, 3, 14, 30, 0, 0, time.UTC), Valid: true}},
	}
	table := Normalize(records, false)

	got := table.Temporal[0]
	want := Temporal{Year: 2015, Month: 6, Day: 3, Hour: 14, Weekday: "Wednesday", Valid: true}
	if got != want {
		t.Errorf("Temporal[0] = %+v, want %+v", got, want)
	}
}

func TestNormalizeNullTimestamp(t *testing.T) {
	records := []models.IncidentRecord{
		{PrimaryType: "THEFT"},
		{OccurredAt: sql.NullTime{Time: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true}},
	}
	table := Normalize(records, false)

	if table.Temporal[0].Valid {
		t.Error("null timestamp produced a valid temporal entry")
	}
	if got := table.WithTimestamp(); got != 1 {
		t.Errorf("WithTimestamp() = %d, want 1", got)
	}
}

func TestNormalizeKeepsAllRows(t *testing.T) {
	records := []models.IncidentRecord{
		{PrimaryType: "A"},
		{PrimaryType: "B"},
	}
	table := Normalize(records, false)

	if len(table.Records) != 2 || len(table.Temporal) != 2 {
		t.Errorf("rows dropped: %d records, %d temporal", len(table.Records), len(table.Temporal))
	}
}

func TestGeocodedWithoutGeoColumns(t *testing.T) {
	records := []models.IncidentRecord{
		{Latitude: sql.NullFloat64{Float64: 41.8, Valid: true}, Longitude: sql.NullFloat64{Float64: -87.6, Valid: true}},
	}
	table := Normalize(records, false)

	// Capability off overrides per-row coordinates.
	if got := table.Geocoded(); got != 0 {
		t.Errorf("Geocoded() = %d, want 0", got)
	}
}
