package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	chat "github.com/abeyrathna-np/meteo/pkg/chat"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// FAKES

// fakeCompleter returns scripted responses and records each request
type fakeCompleter struct {
	requests  []schema.CompletionRequest
	responses []*schema.Message
	err       error
}

func (f *fakeCompleter) Complete(_ context.Context, request schema.CompletionRequest) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, request)
	if len(f.requests) > len(f.responses) {
		return nil, errors.New("no scripted response")
	}
	return f.responses[len(f.requests)-1], nil
}

// weatherTool returns a fixed weather record
type weatherTool struct {
	result any
}

func (w *weatherTool) Name() string        { return "get_weather_data_by_date" }
func (w *weatherTool) Description() string { return "weather for one date" }
func (w *weatherTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[struct {
		Date string `json:"date"`
	}](nil)
}
func (w *weatherTool) Run(_ context.Context, _ json.RawMessage) (any, error) {
	return w.result, nil
}

func newToolkit(t *testing.T, tools ...tool.Tool) *tool.Toolkit {
	t.Helper()
	tk, err := tool.NewToolkit(tools...)
	if err != nil {
		t.Fatal(err)
	}
	return tk
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func TestGenerate_NoToolCalls(t *testing.T) {
	completer := &fakeCompleter{
		responses: []*schema.Message{
			{Role: schema.RoleAssistant, Content: "Hello! Ask me about the weather."},
		},
	}
	c, err := chat.New(completer, newToolkit(t, &weatherTool{}))
	if err != nil {
		t.Fatal(err)
	}

	reply := c.Generate(context.Background(), "Hi there")
	if reply != "Hello! Ask me about the weather." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(completer.requests) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(completer.requests))
	}

	// The first call offers the tools with automatic tool choice
	request := completer.requests[0]
	if len(request.Tools) != 1 || request.Tools[0].Function.Name != "get_weather_data_by_date" {
		t.Fatalf("unexpected tools %v", request.Tools)
	}
	if request.ToolChoice != schema.ToolChoiceAuto {
		t.Fatalf("unexpected tool choice %q", request.ToolChoice)
	}
	if len(request.Messages) != 2 || request.Messages[0].Role != schema.RoleSystem || request.Messages[1].Role != schema.RoleUser {
		t.Fatalf("unexpected message list %v", request.Messages)
	}
}

func TestGenerate_ToolCall(t *testing.T) {
	record := schema.Weather{
		ID:      1,
		Date:    schema.NewDate(2024, 1, 1),
		TempMax: 30.0,
		TempMin: 24.0,
	}
	completer := &fakeCompleter{
		responses: []*schema.Message{
			{
				Role: schema.RoleAssistant,
				ToolCalls: []schema.ToolCall{{
					ID:   "call_1",
					Type: schema.ToolTypeFunction,
					Function: schema.FunctionCall{
						Name:      "get_weather_data_by_date",
						Arguments: `{"date": "2024-01-01"}`,
					},
				}},
			},
			{Role: schema.RoleAssistant, Content: "It was 30 degrees with a low of 24."},
		},
	}
	c, err := chat.New(completer, newToolkit(t, &weatherTool{result: record}))
	if err != nil {
		t.Fatal(err)
	}

	reply := c.Generate(context.Background(), "What's the weather on 2024-01-01?")
	if reply != "It was 30 degrees with a low of 24." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(completer.requests) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(completer.requests))
	}

	// The second call offers no tools
	second := completer.requests[1]
	if len(second.Tools) != 0 || second.ToolChoice != "" {
		t.Fatalf("expected no tools on the second call, got %v", second.Tools)
	}

	// system, user, assistant echoed verbatim, one tool message
	if len(second.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(second.Messages))
	}
	assistant := second.Messages[2]
	if assistant.Role != schema.RoleAssistant || len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].ID != "call_1" {
		t.Fatalf("unexpected assistant message %v", assistant)
	}
	toolMessage := second.Messages[3]
	if toolMessage.Role != schema.RoleTool || toolMessage.ToolCallID != "call_1" {
		t.Fatalf("unexpected tool message %v", toolMessage)
	}

	// The tool content is the weather record serialized as JSON
	var content map[string]any
	if err := json.Unmarshal([]byte(toolMessage.Content), &content); err != nil {
		t.Fatal(err)
	}
	if content["date"] != "2024-01-01" {
		t.Fatalf("unexpected date %v", content["date"])
	}
	if content["temp_max"] != 30.0 || content["temp_min"] != 24.0 {
		t.Fatalf("unexpected temperatures %v", content)
	}
}

func TestGenerate_UnknownTool(t *testing.T) {
	completer := &fakeCompleter{
		responses: []*schema.Message{
			{
				Role: schema.RoleAssistant,
				ToolCalls: []schema.ToolCall{{
					ID:   "call_1",
					Type: schema.ToolTypeFunction,
					Function: schema.FunctionCall{
						Name:      "no_such_tool",
						Arguments: `{}`,
					},
				}},
			},
			{Role: schema.RoleAssistant, Content: "I could not look that up."},
		},
	}
	c, err := chat.New(completer, newToolkit(t, &weatherTool{}))
	if err != nil {
		t.Fatal(err)
	}

	// An unknown tool still completes the pass with an error result
	reply := c.Generate(context.Background(), "What's the weather?")
	if reply != "I could not look that up." {
		t.Fatalf("unexpected reply %q", reply)
	}
	toolMessage := completer.requests[1].Messages[3]
	if toolMessage.Content == "" {
		t.Fatal("expected an error string in the tool message content")
	}
	if !strings.Contains(toolMessage.Content, "no_such_tool") {
		t.Fatalf("expected the tool name in the error, got %q", toolMessage.Content)
	}
}

func TestGenerate_ToolCallOrder(t *testing.T) {
	completer := &fakeCompleter{
		responses: []*schema.Message{
			{
				Role: schema.RoleAssistant,
				ToolCalls: []schema.ToolCall{
					{ID: "call_1", Type: schema.ToolTypeFunction, Function: schema.FunctionCall{Name: "get_weather_data_by_date", Arguments: `{"date": "2024-01-01"}`}},
					{ID: "call_2", Type: schema.ToolTypeFunction, Function: schema.FunctionCall{Name: "get_weather_data_by_date", Arguments: `{"date": "2024-01-02"}`}},
				},
			},
			{Role: schema.RoleAssistant, Content: "done"},
		},
	}
	c, err := chat.New(completer, newToolkit(t, &weatherTool{result: "ok"}))
	if err != nil {
		t.Fatal(err)
	}

	if reply := c.Generate(context.Background(), "Compare the two days"); reply != "done" {
		t.Fatalf("unexpected reply %q", reply)
	}

	// One tool message per call, in request order
	messages := completer.requests[1].Messages
	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	if messages[3].ToolCallID != "call_1" || messages[4].ToolCallID != "call_2" {
		t.Fatalf("unexpected tool message order: %v %v", messages[3], messages[4])
	}
}

func TestGenerate_ProviderFault(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("connection refused")}
	c, err := chat.New(completer, newToolkit(t, &weatherTool{}))
	if err != nil {
		t.Fatal(err)
	}

	// The fault is converted into an apology rather than propagated
	reply := c.Generate(context.Background(), "What's the weather?")
	if !strings.Contains(reply, "I'm sorry") {
		t.Fatalf("expected an apology, got %q", reply)
	}
	if !strings.Contains(reply, "connection refused") {
		t.Fatalf("expected the fault message, got %q", reply)
	}
}

func TestNew_Options(t *testing.T) {
	completer := &fakeCompleter{
		responses: []*schema.Message{
			{Role: schema.RoleAssistant, Content: "ok"},
		},
	}
	c, err := chat.New(completer, newToolkit(t),
		chat.WithSystemPrompt("You answer in haiku."),
		chat.WithTemperature(0.7),
		chat.WithMaxTokens(256),
	)
	if err != nil {
		t.Fatal(err)
	}
	c.Generate(context.Background(), "Hi")

	request := completer.requests[0]
	if request.Messages[0].Content != "You answer in haiku." {
		t.Fatalf("unexpected system prompt %q", request.Messages[0].Content)
	}
	if request.Temperature != 0.7 || request.MaxTokens != 256 {
		t.Fatalf("unexpected generation parameters %v %v", request.Temperature, request.MaxTokens)
	}

	if _, err := chat.New(completer, newToolkit(t), chat.WithTemperature(3)); err == nil {
		t.Fatal("expected error for out-of-range temperature")
	}
}
