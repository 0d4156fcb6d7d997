package geostore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/geosync/geosync/internal/geometry"
	"github.com/geosync/geosync/pkg/types"
)

// SQL schema for the geodatabase file. The layers table is the catalog of
// feature layers; the features table holds their rows with attributes and
// geometry serialized as JSON.

const createLayersTableSQL = `
CREATE TABLE IF NOT EXISTS layers (
    path TEXT PRIMARY KEY,
    geometry_type TEXT NOT NULL,
    wkid INTEGER NOT NULL,
    config_keyword TEXT NOT NULL DEFAULT '',
    fields_json TEXT NOT NULL,
    created_at INTEGER NOT NULL
)`

const createFeaturesTableSQL = `
CREATE TABLE IF NOT EXISTS features (
    fid INTEGER PRIMARY KEY AUTOINCREMENT,
    layer_path TEXT NOT NULL,
    attributes_json TEXT NOT NULL,
    geometry_json TEXT
)`

const createFeaturesIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_features_layer ON features(layer_path)`

// SQLiteStore implements Store on a single SQLite database file acting as
// the enterprise geodatabase working root.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the geodatabase at the given path and ensures
// the catalog tables exist.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("geostore: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("geostore: failed to reach database: %w", err)
	}

	for _, stmt := range []string{createLayersTableSQL, createFeaturesTableSQL, createFeaturesIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("geostore: failed to initialize schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Exists reports whether a layer exists at the path.
func (s *SQLiteStore) Exists(ctx context.Context, path string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM layers WHERE path = ?", path).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("geostore: failed to check layer %s: %w", path, err)
	}
	return true, nil
}

// Describe returns the structural snapshot of a layer.
func (s *SQLiteStore) Describe(ctx context.Context, path string) (*types.SchemaDescription, error) {
	var geometryType, fieldsJSON string
	var wkid int
	err := s.db.QueryRowContext(ctx,
		"SELECT geometry_type, wkid, fields_json FROM layers WHERE path = ?", path,
	).Scan(&geometryType, &wkid, &fieldsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("geostore: %w: %s", ErrLayerNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("geostore: failed to describe layer %s: %w", path, err)
	}

	var fields []types.FieldDescriptor
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("geostore: failed to unmarshal fields for %s: %w", path, err)
	}

	return &types.SchemaDescription{
		GeometryType: geometryType,
		WKID:         wkid,
		Fields:       fields,
	}, nil
}

// CreateLayer creates an empty layer with the given schema.
func (s *SQLiteStore) CreateLayer(ctx context.Context, path string, desc *types.SchemaDescription, configKeyword string) error {
	fieldsJSON, err := json.Marshal(desc.Fields)
	if err != nil {
		return fmt.Errorf("geostore: failed to marshal fields for %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO layers (path, geometry_type, wkid, config_keyword, fields_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		path, desc.GeometryType, desc.WKID, configKeyword, string(fieldsJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("geostore: failed to create layer %s: %w", path, err)
	}
	return nil
}

// DeleteIfExists removes a layer and its rows; no-op when absent.
func (s *SQLiteStore) DeleteIfExists(ctx context.Context, path string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("geostore: failed to begin delete of %s: %w", path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM features WHERE layer_path = ?", path); err != nil {
		return fmt.Errorf("geostore: failed to delete rows of %s: %w", path, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM layers WHERE path = ?", path); err != nil {
		return fmt.Errorf("geostore: failed to delete layer %s: %w", path, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("geostore: failed to commit delete of %s: %w", path, err)
	}
	return nil
}

// Truncate removes all rows of a layer in bulk.
func (s *SQLiteStore) Truncate(ctx context.Context, path string) error {
	if err := s.requireLayer(ctx, path); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM features WHERE layer_path = ?", path); err != nil {
		return fmt.Errorf("geostore: %w: %s: %v", ErrTruncateBlocked, path, err)
	}
	return nil
}

// Append inserts features into a layer without schema validation.
func (s *SQLiteStore) Append(ctx context.Context, path string, features []types.Feature) error {
	if err := s.requireLayer(ctx, path); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("geostore: failed to begin append to %s: %w", path, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO features (layer_path, attributes_json, geometry_json) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("geostore: failed to prepare append to %s: %w", path, err)
	}
	defer stmt.Close()

	for _, f := range features {
		attrsJSON, err := json.Marshal(f.Attributes)
		if err != nil {
			return fmt.Errorf("geostore: failed to marshal attributes: %w", err)
		}
		var geomJSON interface{}
		if f.Geometry != nil {
			b, err := json.Marshal(f.Geometry)
			if err != nil {
				return fmt.Errorf("geostore: failed to marshal geometry: %w", err)
			}
			geomJSON = string(b)
		}
		if _, err := stmt.ExecContext(ctx, path, string(attrsJSON), geomJSON); err != nil {
			return fmt.Errorf("geostore: failed to append row to %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("geostore: failed to commit append to %s: %w", path, err)
	}
	return nil
}

// Count returns the number of rows in a layer.
func (s *SQLiteStore) Count(ctx context.Context, path string) (int, error) {
	if err := s.requireLayer(ctx, path); err != nil {
		return 0, err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM features WHERE layer_path = ?", path).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("geostore: failed to count rows of %s: %w", path, err)
	}
	return n, nil
}

// ReadFeatures returns all rows of a layer with its schema.
func (s *SQLiteStore) ReadFeatures(ctx context.Context, path string) (*types.FeatureSet, error) {
	desc, err := s.Describe(ctx, path)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT attributes_json, geometry_json FROM features WHERE layer_path = ? ORDER BY fid", path)
	if err != nil {
		return nil, fmt.Errorf("geostore: failed to read rows of %s: %w", path, err)
	}
	defer rows.Close()

	fs := &types.FeatureSet{
		GeometryType: desc.GeometryType,
		WKID:         desc.WKID,
		Fields:       desc.Fields,
		Features:     []types.Feature{},
	}
	for rows.Next() {
		var attrsJSON string
		var geomJSON sql.NullString
		if err := rows.Scan(&attrsJSON, &geomJSON); err != nil {
			return nil, fmt.Errorf("geostore: failed to scan row of %s: %w", path, err)
		}

		var f types.Feature
		if err := json.Unmarshal([]byte(attrsJSON), &f.Attributes); err != nil {
			return nil, fmt.Errorf("geostore: failed to unmarshal attributes: %w", err)
		}
		if geomJSON.Valid {
			f.Geometry = &types.Geometry{}
			if err := json.Unmarshal([]byte(geomJSON.String), f.Geometry); err != nil {
				return nil, fmt.Errorf("geostore: failed to unmarshal geometry: %w", err)
			}
		}
		fs.Features = append(fs.Features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geostore: error iterating rows of %s: %w", path, err)
	}
	return fs, nil
}

// RowIDs returns the row identifiers of a layer in insertion order.
func (s *SQLiteStore) RowIDs(ctx context.Context, path string) ([]int64, error) {
	if err := s.requireLayer(ctx, path); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT fid FROM features WHERE layer_path = ? ORDER BY fid", path)
	if err != nil {
		return nil, fmt.Errorf("geostore: failed to list row ids of %s: %w", path, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("geostore: failed to scan row id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geostore: error iterating row ids of %s: %w", path, err)
	}
	return ids, nil
}

// DeleteRow removes a single row by identifier.
func (s *SQLiteStore) DeleteRow(ctx context.Context, path string, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM features WHERE layer_path = ? AND fid = ?", path, id); err != nil {
		return fmt.Errorf("geostore: failed to delete row %d of %s: %w", id, path, err)
	}
	return nil
}

// Project copies a layer into a new layer at dstPath with all geometries
// reprojected to the given spatial reference. Only WGS84 targets are
// supported.
func (s *SQLiteStore) Project(ctx context.Context, srcPath, dstPath string, wkid int) error {
	if wkid != types.WKIDWGS84 {
		return fmt.Errorf("geostore: %w: projection target WKID %d", geometry.ErrUnsupportedWKID, wkid)
	}

	fs, err := s.ReadFeatures(ctx, srcPath)
	if err != nil {
		return err
	}
	projected, err := geometry.ProjectFeatureSet(fs)
	if err != nil {
		return fmt.Errorf("geostore: failed to project %s: %w", srcPath, err)
	}

	if err := s.DeleteIfExists(ctx, dstPath); err != nil {
		return err
	}
	if err := s.CreateLayer(ctx, dstPath, projected.Schema(), ""); err != nil {
		return err
	}
	return s.Append(ctx, dstPath, projected.Features)
}

// requireLayer returns ErrLayerNotFound when the path does not resolve.
func (s *SQLiteStore) requireLayer(ctx context.Context, path string) error {
	exists, err := s.Exists(ctx, path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("geostore: %w: %s", ErrLayerNotFound, path)
	}
	return nil
}
