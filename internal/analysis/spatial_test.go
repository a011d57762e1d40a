package analysis

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/lox/crimereport/internal/models"
)

func geoRecord(lat, lng float64) models.IncidentRecord {
	return models.IncidentRecord{
		PrimaryType: "THEFT",
		OccurredAt:  sql.NullTime{Time: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		Latitude:    sql.NullFloat64{Float64: lat, Valid: true},
		Longitude:   sql.NullFloat64{Float64: lng, Valid: true},
	}
}

func randomGeoTable(n int) *Table {
	rng := rand.New(rand.NewSource(42))
	records := make([]models.IncidentRecord, n)
	for i := range records {
		records[i] = geoRecord(41.6+rng.Float64()*0.4, -87.9+rng.Float64()*0.4)
	}
	return Normalize(records, true)
}

func TestSampleLocationsSize(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cap  int
		want int
	}{
		{"fewer rows than cap", 10, 100, 10},
		{"more rows than cap", 100, 10, 10},
		{"exactly cap", 50, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := randomGeoTable(tt.rows)
			sample := SampleLocations(table, tt.cap, 1)
			if len(sample) != tt.want {
				t.Errorf("len = %d, want %d", len(sample), tt.want)
			}
		})
	}
}

func TestSampleLocationsDropsNullCoordinates(t *testing.T) {
	records := []models.IncidentRecord{
		geoRecord(41.8, -87.6),
		{PrimaryType: "THEFT", Latitude: sql.NullFloat64{Float64: 41.8, Valid: true}}, // missing lng
		{PrimaryType: "THEFT"},
	}
	table := Normalize(records, true)

	sample := SampleLocations(table, 100, 1)
	if len(sample) != 1 {
		t.Errorf("len = %d, want 1", len(sample))
	}
	if got := table.Geocoded(); got != 1 {
		t.Errorf("Geocoded() = %d, want 1", got)
	}
}

func TestSampleLocationsDeterministic(t *testing.T) {
	table := randomGeoTable(500)

	a := SampleLocations(table, 100, 1)
	b := SampleLocations(table, 100, 1)

	if len(a) != len(b) {
		t.Fatalf("sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample diverges at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSampleLocationsNoGeoColumns(t *testing.T) {
	records := []models.IncidentRecord{{PrimaryType: "THEFT"}}
	table := Normalize(records, false)

	if sample := SampleLocations(table, 100, 1); sample != nil {
		t.Errorf("sample = %v, want nil", sample)
	}
}

func TestBinDensity(t *testing.T) {
	table := randomGeoTable(200)
	sample := SampleLocations(table, 200, 1)

	grid := BinDensity(sample, 80)
	if grid == nil {
		t.Fatal("grid = nil, want non-nil")
	}
	if grid.Size != 80 {
		t.Errorf("Size = %d, want 80", grid.Size)
	}

	total := 0
	for cell, n := range grid.Cells {
		if n <= 0 {
			t.Errorf("cell %v has non-positive count %d", cell, n)
		}
		if cell.X < 0 || cell.X >= grid.Size || cell.Y < 0 || cell.Y >= grid.Size {
			t.Errorf("cell %v out of grid range", cell)
		}
		total += n
	}
	if total != len(sample) {
		t.Errorf("cell counts sum to %d, want %d", total, len(sample))
	}
}

func TestBinDensityEmptySample(t *testing.T) {
	if grid := BinDensity(nil, 80); grid != nil {
		t.Errorf("grid = %v, want nil", grid)
	}
	if grid := BinDensity(SpatialSampleView{}, 80); grid != nil {
		t.Errorf("grid = %v, want nil", grid)
	}
}

func TestBinDensitySinglePoint(t *testing.T) {
	sample := SpatialSampleView{{Lat: 41.8, Lng: -87.6}}
	grid := BinDensity(sample, 80)
	if grid == nil {
		t.Fatal("grid = nil")
	}
	if len(grid.Cells) != 1 {
		t.Fatalf("len(Cells) = %d, want 1", len(grid.Cells))
	}
	if n := grid.Cells[GridCell{0, 0}]; n != 1 {
		t.Errorf("cell {0,0} = %d, want 1", n)
	}
}
