package models

import (
	"database/sql"
)

// IncidentRecord is one row of the source table. Fields that can be absent
// in the source data use sql.Null* so that "missing" survives the round trip
// through the cache database.
type IncidentRecord struct {
	ID           int64
	PrimaryType  string
	LocationDesc string
	Arrest       bool
	OccurredAt   sql.NullTime
	Latitude     sql.NullFloat64
	Longitude    sql.NullFloat64
}

// HasCoordinates reports whether both coordinates are present.
func (r IncidentRecord) HasCoordinates() bool {
	return r.Latitude.Valid && r.Longitude.Valid
}
