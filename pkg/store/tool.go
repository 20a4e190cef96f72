package store

import (
	"context"
	"encoding/json"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type weatherData struct {
	store *Store
}

type weatherDataByDate struct {
	store *Store
}

// WeatherDataRequest defines the input for the paginated weather listing
type WeatherDataRequest struct {
	Offset uint  `json:"offset,omitempty" jsonschema:"Number of records to skip"`
	Limit  *uint `json:"limit,omitempty" jsonschema:"Maximum number of records to return"`
}

// WeatherDataByDateRequest defines the input for a single-date lookup
type WeatherDataByDateRequest struct {
	Date string `json:"date" jsonschema:"Date in YYYY-MM-DD form"`
}

var _ tool.Tool = (*weatherData)(nil)
var _ tool.Tool = (*weatherDataByDate)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the data-access tools for use with the chat
// orchestrator. All tools are read-only.
func NewTools(store *Store) []tool.Tool {
	return []tool.Tool{
		&weatherData{store: store},
		&weatherDataByDate{store: store},
	}
}

///////////////////////////////////////////////////////////////////////////////
// WEATHER DATA

func (*weatherData) Name() string {
	return "get_weather_data"
}

func (*weatherData) Description() string {
	return "Return daily weather records (date, maximum and minimum temperature, precipitation and location), paginated by offset and limit."
}

func (*weatherData) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[WeatherDataRequest](nil)
}

func (t *weatherData) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req WeatherDataRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, meteo.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	response, err := t.store.ListWeather(ctx, schema.ListWeatherRequest{
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, err
	}
	return response.Body, nil
}

///////////////////////////////////////////////////////////////////////////////
// WEATHER DATA BY DATE

func (*weatherDataByDate) Name() string {
	return "get_weather_data_by_date"
}

func (*weatherDataByDate) Description() string {
	return "Return the weather record for a single date, including maximum and minimum temperature, precipitation and location."
}

func (*weatherDataByDate) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[WeatherDataByDateRequest](nil)
	if err != nil {
		return nil, err
	}
	if dateField, ok := schema.Properties["date"]; ok && dateField != nil {
		dateField.Pattern = `^\d{4}-\d{2}-\d{2}$`
	}
	schema.Required = []string{"date"}
	return schema, nil
}

func (t *weatherDataByDate) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req WeatherDataByDateRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, meteo.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.Date == "" {
		return nil, meteo.ErrBadParameter.With("date is required")
	}
	date, err := schema.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	return t.store.GetWeatherByDate(ctx, date)
}
