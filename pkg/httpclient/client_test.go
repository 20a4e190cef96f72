package httpclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	httpclient "github.com/abeyrathna-np/meteo/pkg/httpclient"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
)

func TestListWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("unexpected query %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schema.ListWeatherResponse{
			Count: 1,
			Body: []schema.Weather{{
				ID:      1,
				Date:    schema.NewDate(2024, 1, 1),
				TempMax: 31.5,
				TempMin: 24.2,
			}},
		})
	}))
	defer server.Close()

	c, err := httpclient.New(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	limit := uint(5)
	response, err := c.ListWeather(context.Background(), schema.ListWeatherRequest{Limit: &limit})
	if err != nil {
		t.Fatal(err)
	}
	if response.Count != 1 || len(response.Body) != 1 {
		t.Fatalf("unexpected response %v", response)
	}
	if response.Body[0].Date.String() != "2024-01-01" {
		t.Fatalf("unexpected date %q", response.Body[0].Date)
	}
}

func TestGetWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather/2024-01-01" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schema.Weather{
			ID:      1,
			Date:    schema.NewDate(2024, 1, 1),
			TempMax: 31.5,
		})
	}))
	defer server.Close()

	c, err := httpclient.New(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	weather, err := c.GetWeather(context.Background(), schema.NewDate(2024, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if weather.TempMax != 31.5 {
		t.Fatalf("unexpected record %v", weather)
	}
}

func TestCreateLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/location" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req schema.CreateLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(schema.Location{ID: 1, Name: req.Name, Geom: req.Geom})
	}))
	defer server.Close()

	c, err := httpclient.New(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	location, err := c.CreateLocation(context.Background(), schema.CreateLocationRequest{
		Name: "Colombo",
		Geom: "POINT(79.8612 6.9271)",
	})
	if err != nil {
		t.Fatal(err)
	}
	if location.ID != 1 || location.Name != "Colombo" {
		t.Fatalf("unexpected location %v", location)
	}
}

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req schema.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
		}
		if req.Message != "What's the weather?" {
			t.Errorf("unexpected message %q", req.Message)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schema.ChatResponse{Response: "Sunny."})
	}))
	defer server.Close()

	c, err := httpclient.New(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	response, err := c.Chat(context.Background(), "What's the weather?")
	if err != nil {
		t.Fatal(err)
	}
	if response.Response != "Sunny." {
		t.Fatalf("unexpected reply %q", response.Response)
	}

	// Empty messages are rejected locally
	if _, err := c.Chat(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty message")
	}
}
