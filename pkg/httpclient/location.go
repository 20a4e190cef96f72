package httpclient

import (
	"context"
	"strconv"

	// Packages
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListLocations returns a page of locations
func (c *Client) ListLocations(ctx context.Context, req schema.ListLocationRequest) (*schema.ListLocationResponse, error) {
	reqOpts := []client.RequestOpt{client.OptPath("location")}
	if query := listQuery(req.Offset, req.Limit); len(query) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(query))
	}

	var response schema.ListLocationResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, reqOpts...); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetLocation returns a location by identifier
func (c *Client) GetLocation(ctx context.Context, id int64) (*schema.Location, error) {
	var response schema.Location
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("location", strconv.FormatInt(id, 10))); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateLocation creates a new location
func (c *Client) CreateLocation(ctx context.Context, req schema.CreateLocationRequest) (*schema.Location, error) {
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	var response schema.Location
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("location")); err != nil {
		return nil, err
	}
	return &response, nil
}
