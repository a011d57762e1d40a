package ingest

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lox/crimereport/internal/metrics"
	"github.com/lox/crimereport/internal/models"
)

// SchemaError reports a required column missing from the input table. It is
// fatal: downstream views referencing the column have no meaningful fallback.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q not found in input", e.Field)
}

// Options names the columns the pipeline reads. Latitude/longitude columns
// are not named here; they are discovered by prefix (see DetectGeoColumns).
type Options struct {
	TimestampColumn string
	PrimaryColumn   string
	LocationColumn  string
	ArrestColumn    string
}

// DefaultOptions matches the Chicago incident export column names.
func DefaultOptions() Options {
	return Options{
		TimestampColumn: "Date",
		PrimaryColumn:   "Primary Type",
		LocationColumn:  "Location Description",
		ArrestColumn:    "Arrest",
	}
}

// GeoColumns is the optional pair of coordinate column names discovered in
// the header. A nil *GeoColumns disables the spatial views downstream; it is
// a capability-detection outcome, not an error.
type GeoColumns struct {
	Lat string
	Lng string
}

// DetectGeoColumns probes the header for coordinate columns by
// case-insensitive prefix match ("lat…", "lon…"). Returns nil unless both
// are found.
func DetectGeoColumns(header []string) *GeoColumns {
	var geo GeoColumns
	for _, name := range header {
		lower := strings.ToLower(strings.TrimSpace(name))
		if geo.Lat == "" && strings.HasPrefix(lower, "lat") {
			geo.Lat = name
		}
		if geo.Lng == "" && strings.HasPrefix(lower, "lon") {
			geo.Lng = name
		}
	}
	if geo.Lat == "" || geo.Lng == "" {
		return nil
	}
	return &geo
}

// Dataset is the parsed source table plus its detected capabilities.
type Dataset struct {
	Records []models.IncidentRecord
	Geo     *GeoColumns
}

// Timestamp layouts seen in incident exports, tried in order.
var timestampLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ReadCSV decodes an incident table. Rows with unparseable timestamps,
// coordinates or empty categorical values are kept with null fields; no row
// is dropped here. A missing required column is a *SchemaError.
func ReadCSV(r io.Reader, opts Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Field: opts.TimestampColumn}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	required := []string{opts.TimestampColumn, opts.PrimaryColumn, opts.LocationColumn, opts.ArrestColumn}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, &SchemaError{Field: name}
		}
	}

	geo := DetectGeoColumns(header)

	ds := &Dataset{Geo: geo}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec := models.IncidentRecord{
			PrimaryType:  strings.TrimSpace(row[index[opts.PrimaryColumn]]),
			LocationDesc: strings.TrimSpace(row[index[opts.LocationColumn]]),
			Arrest:       parseBool(row[index[opts.ArrestColumn]]),
			OccurredAt:   parseTimestamp(row[index[opts.TimestampColumn]]),
		}
		if !rec.OccurredAt.Valid {
			metrics.RowsExcluded.WithLabelValues("null_timestamp").Inc()
		}
		if geo != nil {
			rec.Latitude = parseCoordinate(row[index[geo.Lat]])
			rec.Longitude = parseCoordinate(row[index[geo.Lng]])
			if !rec.HasCoordinates() {
				metrics.RowsExcluded.WithLabelValues("null_coordinates").Inc()
			}
		}
		ds.Records = append(ds.Records, rec)
		metrics.RowsIngested.Inc()
	}
	return ds, nil
}

func parseTimestamp(s string) sql.NullTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return sql.NullTime{Time: t.UTC(), Valid: true}
		}
	}
	return sql.NullTime{}
}

func parseCoordinate(s string) sql.NullFloat64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true
	}
	return false
}
