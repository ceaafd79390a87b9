package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routetrack/routetrack/internal/api/models"
	"github.com/routetrack/routetrack/internal/api/response"
	"github.com/routetrack/routetrack/internal/route"
	"github.com/routetrack/routetrack/internal/validation"
)

// maxBodyBytes bounds request bodies on write endpoints.
const maxBodyBytes = 1 << 16

// RouteService is the part of the route service the handlers use.
type RouteService interface {
	CreateRoute(ctx context.Context, id string) error
	AddWayPoint(ctx context.Context, id string, lat, lon decimal.Decimal) error
	GetComputedRouteData(ctx context.Context, id string) (*route.ComputedData, error)
	Status(ctx context.Context, id string) (*route.Status, error)
}

// RouteHandler handles route tracking endpoints.
type RouteHandler struct {
	routes RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routes RouteService) *RouteHandler {
	return &RouteHandler{routes: routes}
}

// CreateRoute handles POST /v1/route - registers a new route opened today.
func (h *RouteHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRouteRequest
	if !decode(w, r, &input) {
		return
	}

	id, err := uuid.Parse(input.RouteID)
	if err != nil {
		response.BadRequest(w, r, "route_id must be a valid UUID", []models.FieldError{
			{Field: "route_id", Message: "route_id must be a valid UUID", Code: "uuid"},
		})
		return
	}

	if err := h.routes.CreateRoute(r.Context(), id.String()); err != nil {
		writeRouteError(w, r, err)
		return
	}

	response.Created(w, r, "/v1/route/"+id.String(), models.MessageSuccess)
}

// AddWayPoint handles POST /v1/route/{routeId}/way_point - appends a
// way-point to an open route.
func (h *RouteHandler) AddWayPoint(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	var input models.WayPointRequest
	if !decode(w, r, &input) {
		return
	}

	if err := h.routes.AddWayPoint(r.Context(), id, *input.Lat, *input.Lon); err != nil {
		writeRouteError(w, r, err)
		return
	}

	response.Created(w, r, "", models.MessageSuccess)
}

// GetStatus handles GET /v1/route/{routeId} - lifecycle state of a route.
// Nothing is derived or aggregated.
func (h *RouteHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	status, err := h.routes.Status(r.Context(), id)
	if err != nil {
		writeRouteError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.RouteStatusResponse{
		RouteID:   status.RouteID,
		Created:   status.Created.Format(time.DateOnly),
		Open:      status.Open,
		WayPoints: status.WayPoints,
		Computed:  status.Computed,
	})
}

// GetLength handles GET /v1/route/{routeId}/length - total route length in km.
func (h *RouteHandler) GetLength(w http.ResponseWriter, r *http.Request) {
	data, ok := h.computed(w, r)
	if !ok {
		return
	}

	response.JSON(w, r, http.StatusOK, models.LengthResponse{KM: models.Number(data.TotalKM)})
}

// GetLongestPaths handles GET /v1/route/{routeId}/longest_paths - every path
// of maximum length, in route order.
func (h *RouteHandler) GetLongestPaths(w http.ResponseWriter, r *http.Request) {
	data, ok := h.computed(w, r)
	if !ok {
		return
	}

	resp := models.LongestPathsResponse{LongestPaths: make([]models.PathResponse, len(data.LongestPaths))}
	for i, p := range data.LongestPaths {
		resp.LongestPaths[i] = models.PathResponse{
			KM:    models.Number(p.LengthKM),
			Start: models.NewPoint(p.Start.Lat, p.Start.Lon),
			Stop:  models.NewPoint(p.Stop.Lat, p.Stop.Lon),
		}
	}

	response.JSON(w, r, http.StatusOK, resp)
}

func (h *RouteHandler) computed(w http.ResponseWriter, r *http.Request) (*route.ComputedData, bool) {
	id, ok := routeID(w, r)
	if !ok {
		return nil, false
	}

	data, err := h.routes.GetComputedRouteData(r.Context(), id)
	if err != nil {
		writeRouteError(w, r, err)
		return nil, false
	}
	return data, true
}

// routeID parses the routeId path parameter into its canonical form.
func routeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "routeId"))
	if err != nil {
		response.BadRequest(w, r, "routeId must be a valid UUID", []models.FieldError{
			{Field: "routeId", Message: "routeId must be a valid UUID", Code: "uuid"},
		})
		return "", false
	}
	return id.String(), true
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return false
	}
	if err := validation.Struct(dst); err != nil {
		response.BadRequest(w, r, err.Error(), fieldErrors(err))
		return false
	}
	return true
}
