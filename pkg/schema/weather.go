package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Location represents a named place with a point geometry,
// exposed in well-known-text form
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Geom string `json:"geom_wkt"`
}

// Weather represents one day of weather observations, optionally
// associated with a location
type Weather struct {
	ID            int64     `json:"id"`
	Date          Date      `json:"date"`
	TempMax       float64   `json:"temp_max"`
	TempMin       float64   `json:"temp_min"`
	Precipitation float64   `json:"precipitation"`
	LocationID    *int64    `json:"location_id,omitempty"`
	Location      *Location `json:"location,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// REQUESTS AND RESPONSES

// ListWeatherRequest represents a request to list weather records
type ListWeatherRequest struct {
	Offset uint  `json:"offset,omitempty" help:"Offset for pagination"`
	Limit  *uint `json:"limit,omitempty" help:"Maximum number of records to return"`
}

// ListWeatherResponse represents a page of weather records
type ListWeatherResponse struct {
	Count  uint      `json:"count"`
	Offset uint      `json:"offset,omitzero"`
	Limit  *uint     `json:"limit,omitzero"`
	Body   []Weather `json:"body,omitzero"`
}

// GetWeatherRequest represents a request to get the weather for one date
type GetWeatherRequest struct {
	Date Date `json:"date" arg:"" help:"Date in YYYY-MM-DD form"`
}

// CreateWeatherRequest represents a request to create a weather record
type CreateWeatherRequest struct {
	Date          Date    `json:"date" help:"Date in YYYY-MM-DD form"`
	TempMax       float64 `json:"temp_max" help:"Maximum temperature"`
	TempMin       float64 `json:"temp_min" help:"Minimum temperature"`
	Precipitation float64 `json:"precipitation" help:"Precipitation sum"`
	LocationID    *int64  `json:"location_id,omitempty" help:"Associated location" optional:""`
}

// ListLocationRequest represents a request to list locations
type ListLocationRequest struct {
	Offset uint  `json:"offset,omitempty" help:"Offset for pagination"`
	Limit  *uint `json:"limit,omitempty" help:"Maximum number of locations to return"`
}

// ListLocationResponse represents a page of locations
type ListLocationResponse struct {
	Count  uint       `json:"count"`
	Offset uint       `json:"offset,omitzero"`
	Limit  *uint      `json:"limit,omitzero"`
	Body   []Location `json:"body,omitzero"`
}

// GetLocationRequest represents a request to get a location by ID
type GetLocationRequest struct {
	ID int64 `json:"id" arg:"" help:"Location ID"`
}

// CreateLocationRequest represents a request to create a location
type CreateLocationRequest struct {
	Name string `json:"name" help:"Location name"`
	Geom string `json:"geom" help:"Point geometry in well-known-text form"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (l Location) String() string {
	return types.Stringify(l)
}

func (w Weather) String() string {
	return types.Stringify(w)
}
