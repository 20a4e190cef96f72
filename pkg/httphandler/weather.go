package httphandler

import (
	"net/http"

	// Packages
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	store "github.com/abeyrathna-np/meteo/pkg/store"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /weather
func WeatherListHandler(store *store.Store) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/weather", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				var req schema.ListWeatherRequest
				if err := httprequest.Query(r.URL.Query(), &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := store.ListWeather(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			case http.MethodPost:
				var req schema.CreateWeatherRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := store.CreateWeather(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusCreated, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List weather records",
			},
			Post: &openapi.Operation{
				Description: "Create a weather record",
			},
		})
}

// Path: /weather/{date}
func WeatherGetHandler(store *store.Store) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/weather/{date}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				date, err := schema.ParseDate(r.PathValue("date"))
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				resp, err := store.GetWeatherByDate(r.Context(), date)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get the weather record for one date",
			},
		})
}
