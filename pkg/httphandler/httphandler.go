/*
httphandler implements the HTTP API over the weather store and the
chat orchestrator.
*/
package httphandler

import (
	"errors"
	"net/http"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	chat "github.com/abeyrathna-np/meteo/pkg/chat"
	store "github.com/abeyrathna-np/meteo/pkg/store"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func RegisterHandlers(router server.HTTPRouter, store *store.Store, chat *chat.Chat, toolkit *tool.Toolkit) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, handler, true, spec))
	}

	// Register handlers
	register(WeatherListHandler(store))
	register(WeatherGetHandler(store))
	register(LocationListHandler(store))
	register(LocationGetHandler(store))
	register(ChatHandler(chat))
	register(HealthHandler(toolkit))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a meteo.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var meteoErr meteo.Err
	if !errors.As(err, &meteoErr) {
		return err
	}
	switch meteoErr {
	case meteo.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case meteo.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case meteo.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case meteo.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
