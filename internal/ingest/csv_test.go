package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Date,Primary Type,Location Description,Arrest,Latitude,Longitude
01/05/2015 09:30:00 AM,THEFT,STREET,True,41.881,-87.632
01/06/2015 11:00:00 PM,BATTERY,RESIDENCE,False,41.902,-87.645
,NARCOTICS,SIDEWALK,True,,
bogus-date,THEFT,STREET,False,41.900,-87.640
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV), DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if len(ds.Records) != 4 {
		t.Fatalf("len(Records) = %d, want 4 (no rows dropped)", len(ds.Records))
	}
	if ds.Geo == nil {
		t.Fatal("Geo = nil, want detected columns")
	}
	if ds.Geo.Lat != "Latitude" || ds.Geo.Lng != "Longitude" {
		t.Errorf("Geo = %+v, want {Latitude Longitude}", ds.Geo)
	}

	first := ds.Records[0]
	if first.PrimaryType != "THEFT" || !first.Arrest {
		t.Errorf("first record = %+v", first)
	}
	if !first.OccurredAt.Valid {
		t.Fatal("first timestamp not parsed")
	}
	want := time.Date(2015, 1, 5, 9, 30, 0, 0, time.UTC)
	if !first.OccurredAt.Time.Equal(want) {
		t.Errorf("timestamp = %v, want %v", first.OccurredAt.Time, want)
	}
	if !first.HasCoordinates() {
		t.Error("first record missing coordinates")
	}

	// Empty and unparseable timestamps become null, the rows stay.
	if ds.Records[2].OccurredAt.Valid {
		t.Error("empty timestamp parsed as valid")
	}
	if ds.Records[3].OccurredAt.Valid {
		t.Error("bogus timestamp parsed as valid")
	}
	if ds.Records[2].HasCoordinates() {
		t.Error("empty coordinates parsed as valid")
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	csv := "Date,Location Description,Arrest\n01/05/2015 09:30:00 AM,STREET,True\n"

	_, err := ReadCSV(strings.NewReader(csv), DefaultOptions())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	if schemaErr.Field != "Primary Type" {
		t.Errorf("Field = %q, want %q", schemaErr.Field, "Primary Type")
	}
}

func TestReadCSVNoGeoColumns(t *testing.T) {
	csv := "Date,Primary Type,Location Description,Arrest\n01/05/2015 09:30:00 AM,THEFT,STREET,True\n"

	ds, err := ReadCSV(strings.NewReader(csv), DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Geo != nil {
		t.Errorf("Geo = %+v, want nil (capability absent, not an error)", ds.Geo)
	}
}

func TestDetectGeoColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   *GeoColumns
	}{
		{
			name:   "exact names",
			header: []string{"Date", "Latitude", "Longitude"},
			want:   &GeoColumns{Lat: "Latitude", Lng: "Longitude"},
		},
		{
			name:   "case insensitive prefixes",
			header: []string{"LAT", "lon_deg"},
			want:   &GeoColumns{Lat: "LAT", Lng: "lon_deg"},
		},
		{
			name:   "latitude only",
			header: []string{"Latitude"},
			want:   nil,
		},
		{
			name:   "no coordinates",
			header: []string{"Date", "Primary Type"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectGeoColumns(tt.header)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	trues := []string{"true", "True", "TRUE", "t", "yes", "1"}
	for _, s := range trues {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	falses := []string{"false", "False", "0", "", "no", "garbage"}
	for _, s := range falses {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), DefaultOptions())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError for empty input", err)
	}
}
