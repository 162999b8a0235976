// Package store owns the seeded sustainability dataset: schema, reference
// data, and generic query execution for resolver-generated SQL.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// InitSchema drops and recreates the three dataset tables.
func (s *Store) InitSchema(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS suppliers;`,
		`DROP TABLE IF EXISTS products;`,
		`DROP TABLE IF EXISTS supplier_history;`,
		`CREATE TABLE suppliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			location TEXT,
			latitude REAL,
			longitude REAL,
			carbon_footprint REAL,
			water_usage REAL,
			compliance_score REAL CHECK(compliance_score BETWEEN 0 AND 1)
		)`,
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			supplier_id INTEGER,
			production_date TEXT,
			carbon_per_unit REAL,
			water_per_unit REAL,
			material TEXT,
			FOREIGN KEY (supplier_id) REFERENCES suppliers(id)
		)`,
		`CREATE TABLE supplier_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			supplier_id INTEGER,
			year TEXT,
			carbon_footprint REAL,
			water_usage REAL,
			compliance_score REAL,
			FOREIGN KEY (supplier_id) REFERENCES suppliers(id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Query executes a resolver-generated statement and returns generic rows.
func (s *Store) Query(ctx context.Context, query string, args ...interface{}) ([]models.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// Validate dry-runs a statement against the store, discarding rows. A nil
// return means the SQL is executable as bound.
func (s *Store) Validate(ctx context.Context, query string, args ...interface{}) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
	}
	return rows.Err()
}

// SupplierNames returns the reference list of known supplier names.
func (s *Store) SupplierNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM suppliers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SupplierSites returns name and coordinates for every supplier.
func (s *Store) SupplierSites(ctx context.Context) ([]models.SupplierSite, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, latitude, longitude FROM suppliers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []models.SupplierSite
	for rows.Next() {
		var site models.SupplierSite
		if err := rows.Scan(&site.Name, &site.Latitude, &site.Longitude); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// SupplierTrends returns the yearly history for one supplier, ordered by year
// ascending. The year column is stored as text but is returned numeric so the
// trend analyzer can divide by the actual year span.
func (s *Store) SupplierTrends(ctx context.Context, supplierName string) ([]models.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sh.year, sh.carbon_footprint, sh.water_usage, sh.compliance_score
		FROM supplier_history sh
		JOIN suppliers s ON sh.supplier_id = s.id
		WHERE s.name = ?
		ORDER BY sh.year`, supplierName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var rec models.HistoryRecord
		if err := rows.Scan(&rec.Year, &rec.CarbonFootprint, &rec.WaterUsage, &rec.ComplianceScore); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRows(rows *sql.Rows) ([]models.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []models.Row
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(models.Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
