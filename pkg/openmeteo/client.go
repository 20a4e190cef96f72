/*
openmeteo implements an API client for the Open-Meteo historical
weather archive. https://open-meteo.com/en/docs/historical-weather-api
*/
package openmeteo

import (
	"context"
	"net/url"
	"strconv"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

// ArchiveRequest defines the input for a historical daily weather query
type ArchiveRequest struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	StartDate schema.Date `json:"start_date"`
	EndDate   schema.Date `json:"end_date"`
}

// Archive is the response to a historical daily weather query
type Archive struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     Daily   `json:"daily"`
}

// Daily holds parallel per-day series keyed by position
type Daily struct {
	Time          []string  `json:"time"`
	TempMax       []float64 `json:"temperature_2m_max"`
	TempMin       []float64 `json:"temperature_2m_min"`
	Precipitation []float64 `json:"precipitation_sum"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://archive-api.open-meteo.com/v1"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Open-Meteo archive client. No API key is required.
func New(opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{c}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Archive returns the daily weather series for one coordinate and
// date range
func (c *Client) Archive(ctx context.Context, req ArchiveRequest) (*Archive, error) {
	var response Archive
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("archive"), client.OptQuery(req.Values())); err != nil {
		return nil, err
	}

	// The per-day series must be the same length
	daily := response.Daily
	if len(daily.TempMax) != len(daily.Time) || len(daily.TempMin) != len(daily.Time) || len(daily.Precipitation) != len(daily.Time) {
		return nil, meteo.ErrProvider.With("mismatched daily series lengths")
	}
	return &response, nil
}

// Records converts the daily series into weather records for insertion,
// associated with the given location
func (a *Archive) Records(locationID *int64) ([]schema.CreateWeatherRequest, error) {
	records := make([]schema.CreateWeatherRequest, 0, len(a.Daily.Time))
	for i, value := range a.Daily.Time {
		date, err := schema.ParseDate(value)
		if err != nil {
			return nil, err
		}
		records = append(records, schema.CreateWeatherRequest{
			Date:          date,
			TempMax:       a.Daily.TempMax[i],
			TempMin:       a.Daily.TempMin[i],
			Precipitation: a.Daily.Precipitation[i],
			LocationID:    locationID,
		})
	}
	return records, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Values converts ArchiveRequest to URL query parameters
func (r ArchiveRequest) Values() url.Values {
	result := url.Values{}
	result.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	result.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	result.Set("start_date", r.StartDate.String())
	result.Set("end_date", r.EndDate.String())
	result.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	result.Set("timezone", "auto")
	return result
}
