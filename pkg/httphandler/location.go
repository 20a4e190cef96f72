package httphandler

import (
	"net/http"
	"strconv"

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

// Path: /location
func LocationListHandler(store *store.Store) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/location", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				var req schema.ListLocationRequest
				if err := httprequest.Query(r.URL.Query(), &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := store.ListLocations(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			case http.MethodPost:
				var req schema.CreateLocationRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := store.CreateLocation(r.Context(), req)
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
				Description: "List locations",
			},
			Post: &openapi.Operation{
				Description: "Create a location",
			},
		})
}

// Path: /location/{id}
func LocationGetHandler(store *store.Store) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/location/{id}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
				if err != nil {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.Withf("invalid location id %q", r.PathValue("id")))
					return
				}
				resp, err := store.GetLocation(r.Context(), id)
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
				Description: "Get a location by ID",
			},
		})
}
