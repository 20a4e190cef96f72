package httpclient

import (
	"context"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat sends a natural-language message and returns the reply
func (c *Client) Chat(ctx context.Context, message string) (*schema.ChatResponse, error) {
	if message == "" {
		return nil, meteo.ErrBadParameter.With("empty message")
	}

	payload, err := client.NewJSONRequest(schema.ChatRequest{Message: message})
	if err != nil {
		return nil, err
	}

	var response schema.ChatResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat")); err != nil {
		return nil, err
	}
	return &response, nil
}

// Health returns the service health and registered tool count
func (c *Client) Health(ctx context.Context) (*schema.HealthResponse, error) {
	var response schema.HealthResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("health")); err != nil {
		return nil, err
	}
	return &response, nil
}
