package store

import (
	"context"
	"database/sql"
	"errors"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultWeatherLimit uint = 100
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListWeather returns a page of weather records with their associated
// locations, ordered by date
func (s *Store) ListWeather(ctx context.Context, req schema.ListWeatherRequest) (*schema.ListWeatherResponse, error) {
	limit := defaultWeatherLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	// Total count of records
	var count uint
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weather`).Scan(&count); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.date, w.temp_max, w.temp_min, w.precipitation, w.location_id,
		       l.name, l.geom
		FROM weather w
		LEFT JOIN location l ON l.id = w.location_id
		ORDER BY w.date
		LIMIT ? OFFSET ?`, limit, req.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	body := []schema.Weather{}
	for rows.Next() {
		weather, err := scanWeather(rows)
		if err != nil {
			return nil, err
		}
		body = append(body, *weather)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &schema.ListWeatherResponse{
		Count:  count,
		Offset: req.Offset,
		Limit:  req.Limit,
		Body:   body,
	}, nil
}

// GetWeatherByDate returns the weather record for one date, with its
// associated location
func (s *Store) GetWeatherByDate(ctx context.Context, date schema.Date) (*schema.Weather, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT w.id, w.date, w.temp_max, w.temp_min, w.precipitation, w.location_id,
		       l.name, l.geom
		FROM weather w
		LEFT JOIN location l ON l.id = w.location_id
		WHERE w.date = ?`, date)
	weather, err := scanWeather(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, meteo.ErrNotFound.Withf("no weather for date %q", date)
	} else if err != nil {
		return nil, err
	}
	return weather, nil
}

// CreateWeather inserts a new weather record and returns it
func (s *Store) CreateWeather(ctx context.Context, req schema.CreateWeatherRequest) (*schema.Weather, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO weather (date, temp_max, temp_min, precipitation, location_id)
		VALUES (?, ?, ?, ?, ?)`,
		req.Date, req.TempMax, req.TempMin, req.Precipitation, req.LocationID)
	if isForeignKeyErr(err) {
		return nil, meteo.ErrBadParameter.Withf("no such location: %v", req.LocationID)
	} else if isConstraintErr(err) {
		return nil, meteo.ErrConflict.Withf("weather for date %q", req.Date)
	} else if err != nil {
		return nil, err
	}
	if _, err := result.LastInsertId(); err != nil {
		return nil, err
	}
	return s.GetWeatherByDate(ctx, req.Date)
}

// InsertWeather inserts a batch of weather records in one transaction,
// returning the number of records inserted
func (s *Store) InsertWeather(ctx context.Context, records []schema.CreateWeatherRequest) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO weather (date, temp_max, temp_min, precipitation, location_id)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, record := range records {
		if _, err := stmt.ExecContext(ctx,
			record.Date, record.TempMax, record.TempMin, record.Precipitation, record.LocationID); err != nil {
			if isConstraintErr(err) {
				return 0, meteo.ErrConflict.Withf("record %d: weather for date %q", i, record.Date)
			}
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanWeather reads one joined weather row
func scanWeather(row scanner) (*schema.Weather, error) {
	var weather schema.Weather
	var locationID sql.NullInt64
	var name, geom sql.NullString
	if err := row.Scan(
		&weather.ID, &weather.Date, &weather.TempMax, &weather.TempMin,
		&weather.Precipitation, &locationID, &name, &geom); err != nil {
		return nil, err
	}
	if locationID.Valid {
		weather.LocationID = types.Ptr(locationID.Int64)
		weather.Location = &schema.Location{
			ID:   locationID.Int64,
			Name: name.String,
			Geom: geom.String,
		}
	}
	return &weather, nil
}
