package analysis

import (
	"github.com/lox/crimereport/internal/models"
)

// Temporal holds the derived calendar fields of one record. Recomputed from
// the timestamp on every run, never persisted.
type Temporal struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Weekday string
	Valid   bool
}

// Table is the normalized input: the raw records plus their derived temporal
// fields in a parallel slice. It is read-only after Normalize and safe for
// concurrent use by any number of view builders.
type Table struct {
	Records  []models.IncidentRecord
	Temporal []Temporal
	HasGeo   bool
}

// Normalize derives the temporal fields for every record. Rows with a null
// timestamp keep a zero-valued (invalid) Temporal entry; they are excluded
// per-view, not dropped here.
func Normalize(records []models.IncidentRecord, hasGeo bool) *Table {
	t := &Table{
		Records:  records,
		Temporal: make([]Temporal, len(records)),
		HasGeo:   hasGeo,
	}
	for i, r := range records {
		if !r.OccurredAt.Valid {
			continue
		}
		ts := r.OccurredAt.Time
		t.Temporal[i] = Temporal{
			Year:    ts.Year(),
			Month:   int(ts.Month()),
			Day:     ts.Day(),
			Hour:    ts.Hour(),
			Weekday: ts.Weekday().String(),
			Valid:   true,
		}
	}
	return t
}

// WithTimestamp counts rows that carry a parseable timestamp.
func (t *Table) WithTimestamp() int {
	n := 0
	for i := range t.Temporal {
		if t.Temporal[i].Valid {
			n++
		}
	}
	return n
}

// Geocoded counts rows with both coordinates present. Zero when the source
// had no coordinate columns.
func (t *Table) Geocoded() int {
	if !t.HasGeo {
		return 0
	}
	n := 0
	for i := range t.Records {
		if t.Records[i].HasCoordinates() {
			n++
		}
	}
	return n
}
