package handler

import (
	"errors"
	"net/http"

	"github.com/routetrack/routetrack/internal/api/models"
	"github.com/routetrack/routetrack/internal/api/response"
	"github.com/routetrack/routetrack/internal/route"
	"github.com/routetrack/routetrack/internal/validation"
)

// problemFor translates a route engine error into its HTTP problem.
// AlreadyComputed and PathsNotComputed never surface from the service
// facade; seeing one here is a server fault.
func problemFor(traceID string, err error) *models.Problem {
	kind := route.KindOf(err)

	var p *models.Problem
	switch kind {
	case route.KindAlreadyExists:
		p = models.NewConflict(traceID, err.Error())
	case route.KindNotFound:
		p = models.NewNotFound(traceID, err.Error())
	case route.KindInvalidCoordinate:
		p = models.NewBadRequest(traceID, err.Error(), nil)
	case route.KindRouteClosed, route.KindRouteStillOpen:
		p = models.NewRouteState(traceID, err.Error())
	case route.KindInsufficientWayPoints:
		p = models.NewUnprocessable(traceID, err.Error())
	default:
		return models.NewInternalError(traceID, "an unexpected error occurred")
	}
	return p.WithCode(kind.String())
}

func writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	response.Error(w, r, problemFor(response.TraceID(r), err))
}

// fieldErrors converts validator output to problem field errors.
func fieldErrors(err error) []models.FieldError {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]models.FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = models.FieldError{Field: fe.Field, Message: fe.Message, Code: fe.Tag}
	}
	return out
}
