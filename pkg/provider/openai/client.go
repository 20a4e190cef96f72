/*
openai implements an API client for the OpenAI chat completions API.
https://platform.openai.com/docs/api-reference/chat
*/
package openai

import (
	// Packages
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	model string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint     = "https://api.openai.com/v1"
	defaultModel = "gpt-4o-mini"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new OpenAI API client with the given API key. Pass an
// empty model to use the default. A caller-supplied endpoint option
// overrides the default endpoint.
func New(apiKey, model string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptReqToken(client.Token{
			Scheme: client.Bearer,
			Value:  apiKey,
		}),
	}, opts...)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{c, model}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model returns the model used for completions
func (c *Client) Model() string {
	return c.model
}
