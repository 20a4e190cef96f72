package openai

import (
	"context"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// reqCompletion is the wire form of a chat completion request
type reqCompletion struct {
	Model       string                  `json:"model"`
	Messages    []schema.Message        `json:"messages"`
	Tools       []schema.ToolDefinition `json:"tools,omitempty"`
	ToolChoice  string                  `json:"tool_choice,omitempty"`
	Temperature float64                 `json:"temperature,omitempty"`
	MaxTokens   uint                    `json:"max_completion_tokens,omitempty"`
}

// Response is the wire form of a chat completion response
type Response struct {
	Id      string       `json:"id"`
	Type    string       `json:"object"`
	Created uint64       `json:"created"`
	Model   string       `json:"model"`
	Choices []Completion `json:"choices"`
	Metrics `json:"usage,omitempty"`
}

// Completion is one response variation
type Completion struct {
	Index   uint64          `json:"index"`
	Message *schema.Message `json:"message"`
	Reason  string          `json:"finish_reason,omitempty"`
}

// Metrics reports token usage for one completion
type Metrics struct {
	PromptTokens     uint64 `json:"prompt_tokens,omitempty"`
	CompletionTokens uint64 `json:"completion_tokens,omitempty"`
	TotalTokens      uint64 `json:"total_tokens,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete performs one chat completion call and returns the first
// choice message
func (c *Client) Complete(ctx context.Context, request schema.CompletionRequest) (*schema.Message, error) {
	req, err := client.NewJSONRequest(reqCompletion{
		Model:       c.model,
		Messages:    request.Messages,
		Tools:       request.Tools,
		ToolChoice:  request.ToolChoice,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var response Response
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, meteo.ErrProvider.Withf("%v", err)
	}

	// The response should contain at least one choice
	if len(response.Choices) == 0 || response.Choices[0].Message == nil {
		return nil, meteo.ErrProvider.With("empty completion response")
	}
	return response.Choices[0].Message, nil
}
