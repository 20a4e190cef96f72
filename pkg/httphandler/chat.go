package httphandler

import (
	"net/http"

	// Packages
	chat "github.com/abeyrathna-np/meteo/pkg/chat"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /chat
func ChatHandler(chat *chat.Chat) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/chat", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ChatRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				// An empty message is rejected before the orchestrator runs
				if req.Message == "" {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("missing message"))
					return
				}
				response := chat.Generate(r.Context(), req.Message)
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.ChatResponse{
					Response: response,
				})
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Answer a natural-language weather question",
			},
		})
}
