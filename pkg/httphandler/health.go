package httphandler

import (
	"net/http"

	// Packages
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /health
func HealthHandler(toolkit *tool.Toolkit) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/health", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.HealthResponse{
					Status: "ok",
					Tools:  toolkit.Count(),
				})
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Service health and registered tool count",
			},
		})
}
