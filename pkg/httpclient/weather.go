package httpclient

import (
	"context"
	"net/url"
	"strconv"

	// Packages
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListWeather returns a page of weather records
func (c *Client) ListWeather(ctx context.Context, req schema.ListWeatherRequest) (*schema.ListWeatherResponse, error) {
	reqOpts := []client.RequestOpt{client.OptPath("weather")}
	if query := listQuery(req.Offset, req.Limit); len(query) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(query))
	}

	var response schema.ListWeatherResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, reqOpts...); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetWeather returns the weather record for one date
func (c *Client) GetWeather(ctx context.Context, date schema.Date) (*schema.Weather, error) {
	var response schema.Weather
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("weather", date.String())); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateWeather creates a new weather record
func (c *Client) CreateWeather(ctx context.Context, req schema.CreateWeatherRequest) (*schema.Weather, error) {
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	var response schema.Weather
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("weather")); err != nil {
		return nil, err
	}
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// listQuery converts pagination parameters to URL query parameters
func listQuery(offset uint, limit *uint) url.Values {
	result := url.Values{}
	if offset > 0 {
		result.Set("offset", strconv.FormatUint(uint64(offset), 10))
	}
	if limit != nil {
		result.Set("limit", strconv.FormatUint(uint64(*limit), 10))
	}
	return result
}
