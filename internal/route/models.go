// Package route provides the route lifecycle, path derivation and aggregation engine.
package route

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/routetrack/routetrack/internal/geo"
)

// Coordinate bounds, inclusive.
const (
	MinLatitude  = -90
	MaxLatitude  = 90
	MinLongitude = -180
	MaxLongitude = 180
)

// MinWayPointsForPaths is the smallest way-point count paths can be derived from.
const MinWayPointsForPaths = 2

// Optional holds a value that is either unset or computed.
// The zero value is unset; a computed value may itself be empty.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a computed Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it has been computed.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value has been computed.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// WayPoint is a recorded coordinate. It is immutable once created.
type WayPoint struct {
	Lat       decimal.Decimal
	Lon       decimal.Decimal
	CreatedAt time.Time
}

// Coordinate returns the way-point position.
func (w *WayPoint) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: w.Lat, Lon: w.Lon}
}

// Path is a directed segment between two adjacent way-points of a route.
type Path struct {
	Start    *WayPoint
	Stop     *WayPoint
	LengthKM decimal.Decimal
}

// Summary holds the aggregates of a route's paths.
type Summary struct {
	TotalKM      decimal.Decimal
	LongestPaths []Path
}

// Route is a tracked sequence of way-points.
type Route struct {
	ID        string
	Created   time.Time // date only, midnight in the clock's location
	WayPoints []*WayPoint
	Paths     Optional[[]Path]
	Summary   Optional[Summary]
}

// clone returns a copy of r that shares no slices with it.
// Way-points are immutable, so their pointers are shared.
func (r *Route) clone() *Route {
	cpy := *r
	cpy.WayPoints = append([]*WayPoint(nil), r.WayPoints...)
	if paths, ok := r.Paths.Get(); ok {
		cpy.Paths = Some(append([]Path{}, paths...))
	}
	if summary, ok := r.Summary.Get(); ok {
		summary.LongestPaths = append([]Path{}, summary.LongestPaths...)
		cpy.Summary = Some(summary)
	}
	return &cpy
}

// ComputedData is the result of a route query.
type ComputedData struct {
	RouteID      string
	TotalKM      decimal.Decimal
	LongestPaths []Path
}

// Status is the lifecycle state of a route.
type Status struct {
	RouteID   string
	Created   time.Time
	Open      bool
	WayPoints int
	Computed  bool // paths derived and aggregated
}
