package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lox/crimereport/internal/models"
)

// Store is the local incident cache. A fetched dataset replaces the previous
// one wholesale; the cache holds exactly one dataset at a time.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ReplaceIncidents swaps the cached dataset for the given records and records
// whether the source carried coordinate columns.
func (s *Store) ReplaceIncidents(records []models.IncidentRecord, hasGeo bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM incidents`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear incidents: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO incidents (primary_type, location_desc, arrest, occurred_at, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.PrimaryType, r.LocationDesc, r.Arrest, r.OccurredAt, r.Latitude, r.Longitude); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert incident: %w", err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO dataset_meta (key, value) VALUES ('has_geo', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, strconv.FormatBool(hasGeo)); err != nil {
		tx.Rollback()
		return fmt.Errorf("set has_geo: %w", err)
	}

	return tx.Commit()
}

// LoadIncidents returns the full cached dataset in insertion order.
func (s *Store) LoadIncidents() ([]models.IncidentRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, primary_type, location_desc, arrest, occurred_at, latitude, longitude
		FROM incidents
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.IncidentRecord
	for rows.Next() {
		var r models.IncidentRecord
		if err := rows.Scan(&r.ID, &r.PrimaryType, &r.LocationDesc, &r.Arrest, &r.OccurredAt, &r.Latitude, &r.Longitude); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// HasGeo reports whether the cached dataset's source carried coordinate
// columns. False when nothing has been cached yet.
func (s *Store) HasGeo() (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM dataset_meta WHERE key = 'has_geo'`).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *Store) CountIncidents() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM incidents`).Scan(&n)
	return n, err
}
