package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joeblew999/plat-mine/internal/overlay"
)

// FeaturesTable is the table the classified features are mirrored into.
const FeaturesTable = "features"

const createFeatures = `CREATE TABLE IF NOT EXISTS features (
	feature_index INTEGER PRIMARY KEY,
	name          VARCHAR,
	description   VARCHAR,
	group_name    VARCHAR NOT NULL,
	feature_type  VARCHAR,
	geometry_kind VARCHAR,
	style_id      VARCHAR,
	lon           DOUBLE,
	lat           DOUBLE,
	min_lon       DOUBLE,
	min_lat       DOUBLE,
	max_lon       DOUBLE,
	max_lat       DOUBLE
)`

const insertFeature = `INSERT INTO features (
	feature_index, name, description, group_name, feature_type, geometry_kind,
	style_id, lon, lat, min_lon, min_lat, max_lon, max_lat
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// FeatureStore mirrors the current classification into DuckDB.
type FeatureStore struct {
	db *sql.DB
}

// NewFeatureStore creates the features table if needed.
func NewFeatureStore(ctx context.Context, db *sql.DB) (*FeatureStore, error) {
	if _, err := db.ExecContext(ctx, createFeatures); err != nil {
		return nil, fmt.Errorf("creating %s table: %w", FeaturesTable, err)
	}
	return &FeatureStore{db: db}, nil
}

// Sync replaces the table contents with features in one transaction.
func (s *FeatureStore) Sync(ctx context.Context, features []overlay.StyledFeature) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM features"); err != nil {
		return fmt.Errorf("clearing %s: %w", FeaturesTable, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertFeature)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sf := range features {
		f := sf.Feature
		anchor := overlay.Anchor(f)
		var minLon, minLat, maxLon, maxLat sql.NullFloat64
		if f.Geometry != nil {
			b := f.Geometry.Bound()
			minLon = sql.NullFloat64{Float64: b.Min.Lon(), Valid: true}
			minLat = sql.NullFloat64{Float64: b.Min.Lat(), Valid: true}
			maxLon = sql.NullFloat64{Float64: b.Max.Lon(), Valid: true}
			maxLat = sql.NullFloat64{Float64: b.Max.Lat(), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			sf.Index, f.Name, f.Description, string(sf.Group), string(sf.FeatureType), string(f.Kind),
			f.StyleID(), anchor.Lon(), anchor.Lat(), minLon, minLat, maxLon, maxLat,
		); err != nil {
			return fmt.Errorf("inserting feature %d: %w", sf.Index, err)
		}
	}

	return tx.Commit()
}

// CountByGroup returns the number of stored features per group.
func (s *FeatureStore) CountByGroup(ctx context.Context) (map[overlay.Group]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT group_name, count(*) FROM features GROUP BY group_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[overlay.Group]int)
	for rows.Next() {
		var group string
		var n int
		if err := rows.Scan(&group, &n); err != nil {
			return nil, err
		}
		counts[overlay.Group(group)] = n
	}
	return counts, rows.Err()
}
