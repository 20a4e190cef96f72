package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	meteo "github.com/abeyrathna-np/meteo"
	openai "github.com/abeyrathna-np/meteo/pkg/provider/openai"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization %q", auth)
		}

		var request map[string]any
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Error(err)
		}
		if request["model"] != "gpt-4o-mini" {
			t.Errorf("unexpected model %v", request["model"])
		}
		if request["tool_choice"] != "auto" {
			t.Errorf("unexpected tool choice %v", request["tool_choice"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": "It was sunny.",
				},
				"finish_reason": "stop",
			}},
		})
	}))
	defer server.Close()

	c, err := openai.New("test-key", "", client.OptEndpoint(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	if c.Model() != "gpt-4o-mini" {
		t.Fatalf("unexpected default model %q", c.Model())
	}

	message, err := c.Complete(context.Background(), schema.CompletionRequest{
		Messages:   []schema.Message{schema.NewUserMessage("What was the weather?")},
		ToolChoice: schema.ToolChoiceAuto,
	})
	if err != nil {
		t.Fatal(err)
	}
	if message.Role != schema.RoleAssistant || message.Content != "It was sunny." {
		t.Fatalf("unexpected message %v", message)
	}
}

func TestComplete_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{
					"role": "assistant",
					"tool_calls": []map[string]any{{
						"id":   "call_1",
						"type": "function",
						"function": map[string]any{
							"name":      "get_weather_data_by_date",
							"arguments": `{"date": "2024-01-01"}`,
						},
					}},
				},
			}},
		})
	}))
	defer server.Close()

	c, err := openai.New("test-key", "gpt-4o", client.OptEndpoint(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	message, err := c.Complete(context.Background(), schema.CompletionRequest{
		Messages: []schema.Message{schema.NewUserMessage("Weather on 2024-01-01?")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(message.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(message.ToolCalls))
	}
	call := message.ToolCalls[0]
	if call.ID != "call_1" || call.Function.Name != "get_weather_data_by_date" {
		t.Fatalf("unexpected call %v", call)
	}
	var args map[string]any
	if err := json.Unmarshal(call.Arguments(), &args); err != nil {
		t.Fatal(err)
	}
	if args["date"] != "2024-01-01" {
		t.Fatalf("unexpected arguments %v", args)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c, err := openai.New("test-key", "", client.OptEndpoint(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Complete(context.Background(), schema.CompletionRequest{
		Messages: []schema.Message{schema.NewUserMessage("Hello")},
	})
	if !errors.Is(err, meteo.ErrProvider) {
		t.Fatal("expected provider error, got:", err)
	}
}
