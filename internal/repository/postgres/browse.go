package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// browseTable is one whitelisted table: a fixed column list and a canned
// SELECT. Caller input never reaches the SQL text.
type browseTable struct {
	columns []string
	query   string
}

// browseRegistry is the full set of tables the browse surface may read.
var browseRegistry = map[string]browseTable{
	"trip_requests": {
		columns: []string{"id", "requester_id", "purpose", "destination", "passenger_count", "start_time", "end_time", "status", "approver_id", "assigned_vehicle_id", "assigned_driver_id", "created_at"},
		query: `SELECT id, requester_id, purpose, destination, passenger_count, start_time, end_time,
			status, approver_id, assigned_vehicle_id, assigned_driver_id, created_at
			FROM trip_requests ORDER BY created_at DESC LIMIT 200`,
	},
	"vehicles": {
		columns: []string{"id", "plate", "brand", "model", "color", "capacity", "status", "mileage", "fuel_level"},
		query:   `SELECT id, plate, brand, model, color, capacity, status, mileage, fuel_level FROM vehicles ORDER BY plate LIMIT 200`,
	},
	"employees": {
		columns: []string{"id", "first_name", "last_name", "email", "phone", "role", "department_id", "active", "joined_at"},
		query:   `SELECT id, first_name, last_name, email, phone, role, department_id, active, joined_at FROM employees ORDER BY joined_at DESC LIMIT 200`,
	},
	"departments": {
		columns: []string{"id", "name", "phone"},
		query:   `SELECT id, name, phone FROM departments ORDER BY name LIMIT 200`,
	},
}

// BrowseRepository provides read-only access to the whitelisted tables.
type BrowseRepository struct {
	db *sql.DB
}

// NewBrowseRepository creates a new BrowseRepository.
func NewBrowseRepository(db *sql.DB) *BrowseRepository {
	return &BrowseRepository{db: db}
}

// Tables returns the whitelisted table names, sorted.
func (r *BrowseRepository) Tables() []string {
	names := make([]string, 0, len(browseRegistry))
	for name := range browseRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Browse returns the rows of a whitelisted table as column-keyed maps.
// Unknown table names are rejected before any SQL runs.
func (r *BrowseRepository) Browse(ctx context.Context, table string) ([]string, []map[string]any, error) {
	entry, ok := browseRegistry[table]
	if !ok {
		return nil, nil, fmt.Errorf("table %q is not browsable", table)
	}

	rows, err := r.db.QueryContext(ctx, entry.query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		values := make([]any, len(entry.columns))
		ptrs := make([]any, len(entry.columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}

		record := make(map[string]any, len(entry.columns))
		for i, col := range entry.columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		records = append(records, record)
	}
	return entry.columns, records, rows.Err()
}
