package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateRouteRequest is the request body for POST /v1/route.
type CreateRouteRequest struct {
	RouteID string `json:"route_id" validate:"required,uuid"`
}

// WayPointRequest is the request body for POST /v1/route/{routeId}/way_point.
// Coordinates decode from either JSON numbers or numeric strings.
type WayPointRequest struct {
	Lat *decimal.Decimal `json:"lat" validate:"required"`
	Lon *decimal.Decimal `json:"lon" validate:"required"`
}

// MessageResponse acknowledges a successful write.
type MessageResponse struct {
	Message string `json:"message"`
}

// MessageSuccess is the acknowledgement body for accepted writes.
var MessageSuccess = MessageResponse{Message: "success"}

// LengthResponse is the response for GET /v1/route/{routeId}/length.
type LengthResponse struct {
	KM json.Number `json:"km"`
}

// PathResponse describes a single path between consecutive way-points.
type PathResponse struct {
	KM    json.Number `json:"km"`
	Start Point       `json:"start"`
	Stop  Point       `json:"stop"`
}

// LongestPathsResponse is the response for GET /v1/route/{routeId}/longest_paths.
type LongestPathsResponse struct {
	LongestPaths []PathResponse `json:"longest_paths"`
}

// RouteStatusResponse is the response for GET /v1/route/{routeId}.
type RouteStatusResponse struct {
	RouteID   string `json:"route_id"`
	Created   string `json:"created"`
	Open      bool   `json:"open"`
	WayPoints int    `json:"way_points"`
	Computed  bool   `json:"computed"`
}
