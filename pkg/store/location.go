package store

import (
	"context"
	"database/sql"
	"errors"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultLocationLimit uint = 10
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListLocations returns a page of locations ordered by identifier
func (s *Store) ListLocations(ctx context.Context, req schema.ListLocationRequest) (*schema.ListLocationResponse, error) {
	limit := defaultLocationLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	// Total count of locations
	var count uint
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM location`).Scan(&count); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, geom FROM location
		ORDER BY id
		LIMIT ? OFFSET ?`, limit, req.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	body := []schema.Location{}
	for rows.Next() {
		var location schema.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.Geom); err != nil {
			return nil, err
		}
		body = append(body, location)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &schema.ListLocationResponse{
		Count:  count,
		Offset: req.Offset,
		Limit:  req.Limit,
		Body:   body,
	}, nil
}

// GetLocation returns a location by identifier
func (s *Store) GetLocation(ctx context.Context, id int64) (*schema.Location, error) {
	var location schema.Location
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, geom FROM location WHERE id = ?`, id).
		Scan(&location.ID, &location.Name, &location.Geom)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, meteo.ErrNotFound.Withf("location %d", id)
	} else if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetLocationByName returns a location by name
func (s *Store) GetLocationByName(ctx context.Context, name string) (*schema.Location, error) {
	var location schema.Location
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, geom FROM location WHERE name = ?`, name).
		Scan(&location.ID, &location.Name, &location.Geom)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, meteo.ErrNotFound.Withf("location %q", name)
	} else if err != nil {
		return nil, err
	}
	return &location, nil
}

// CreateLocation validates the WKT geometry, inserts a new location and
// returns it
func (s *Store) CreateLocation(ctx context.Context, req schema.CreateLocationRequest) (*schema.Location, error) {
	if req.Name == "" {
		return nil, meteo.ErrBadParameter.With("missing location name")
	}

	// Normalise the geometry through a parse round-trip
	point, err := schema.ParsePoint(req.Geom)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO location (name, geom) VALUES (?, ?)`, req.Name, point.WKT())
	if isConstraintErr(err) {
		return nil, meteo.ErrConflict.Withf("location %q", req.Name)
	} else if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetLocation(ctx, id)
}
