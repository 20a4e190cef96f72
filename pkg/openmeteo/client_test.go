package openmeteo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openmeteo "github.com/abeyrathna-np/meteo/pkg/openmeteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

func TestArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("latitude") != "6.9271" || query.Get("longitude") != "79.8612" {
			t.Errorf("unexpected coordinates: %v", query)
		}
		if query.Get("daily") != "temperature_2m_max,temperature_2m_min,precipitation_sum" {
			t.Errorf("unexpected daily series: %v", query.Get("daily"))
		}
		if query.Get("start_date") != "2024-01-01" || query.Get("end_date") != "2024-01-03" {
			t.Errorf("unexpected date range: %v", query)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"latitude":  6.9271,
			"longitude": 79.8612,
			"timezone":  "Asia/Colombo",
			"daily": map[string]any{
				"time":               []string{"2024-01-01", "2024-01-02", "2024-01-03"},
				"temperature_2m_max": []float64{31.5, 32.0, 30.8},
				"temperature_2m_min": []float64{24.2, 24.8, 23.9},
				"precipitation_sum":  []float64{0.4, 0.0, 12.3},
			},
		})
	}))
	defer server.Close()

	c, err := openmeteo.New(client.OptEndpoint(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	archive, err := c.Archive(context.Background(), openmeteo.ArchiveRequest{
		Latitude:  6.9271,
		Longitude: 79.8612,
		StartDate: schema.NewDate(2024, 1, 1),
		EndDate:   schema.NewDate(2024, 1, 3),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(archive.Daily.Time) != 3 {
		t.Fatalf("expected 3 days, got %d", len(archive.Daily.Time))
	}

	records, err := archive.Records(types.Ptr(int64(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Date.String() != "2024-01-01" || records[0].TempMax != 31.5 {
		t.Fatalf("unexpected first record: %v", records[0])
	}
	if records[2].Precipitation != 12.3 {
		t.Fatalf("unexpected precipitation: %v", records[2].Precipitation)
	}
	if records[1].LocationID == nil || *records[1].LocationID != 1 {
		t.Fatalf("unexpected location: %v", records[1].LocationID)
	}
}

func TestArchive_MismatchedSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"daily": map[string]any{
				"time":               []string{"2024-01-01", "2024-01-02"},
				"temperature_2m_max": []float64{31.5},
				"temperature_2m_min": []float64{24.2, 24.8},
				"precipitation_sum":  []float64{0.4, 0.0},
			},
		})
	}))
	defer server.Close()

	c, err := openmeteo.New(client.OptEndpoint(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Archive(context.Background(), openmeteo.ArchiveRequest{
		Latitude: 6.9271, Longitude: 79.8612,
		StartDate: schema.NewDate(2024, 1, 1),
		EndDate:   schema.NewDate(2024, 1, 2),
	}); err == nil {
		t.Fatal("expected error for mismatched series lengths")
	}
}
