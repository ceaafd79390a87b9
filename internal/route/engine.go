package route

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/routetrack/routetrack/internal/geo"
)

var (
	minLat = decimal.NewFromInt(MinLatitude)
	maxLat = decimal.NewFromInt(MaxLatitude)
	minLon = decimal.NewFromInt(MinLongitude)
	maxLon = decimal.NewFromInt(MaxLongitude)
)

// ValidateCoordinate checks that lat and lon are within their inclusive bounds.
func ValidateCoordinate(lat, lon decimal.Decimal) error {
	if lat.LessThan(minLat) || lat.GreaterThan(maxLat) {
		return fmt.Errorf("latitude %s not in [%d, %d]: %w", lat, MinLatitude, MaxLatitude, ErrInvalidCoordinate)
	}
	if lon.LessThan(minLon) || lon.GreaterThan(maxLon) {
		return fmt.Errorf("longitude %s not in [%d, %d]: %w", lon, MinLongitude, MaxLongitude, ErrInvalidCoordinate)
	}
	return nil
}

// isOpen reports whether r still accepts way-points at now.
func isOpen(r *Route, now time.Time) bool {
	return sameDay(r.Created, now.In(r.Created.Location()))
}

// appendWayPoint adds a way-point to an open route.
func appendWayPoint(r *Route, wp *WayPoint, now time.Time) error {
	if !isOpen(r, now) {
		return ErrRouteClosed
	}
	r.WayPoints = append(r.WayPoints, wp)
	return nil
}

// derivePaths converts the way-point sequence of a closed route into paths.
func derivePaths(r *Route, now time.Time, distance geo.Provider) error {
	switch {
	case isOpen(r, now):
		return ErrRouteStillOpen
	case r.Paths.IsSet():
		return fmt.Errorf("paths: %w", ErrAlreadyComputed)
	case len(r.WayPoints) < MinWayPointsForPaths:
		return fmt.Errorf("have %d, need %d: %w", len(r.WayPoints), MinWayPointsForPaths, ErrInsufficientWayPoints)
	}

	paths := make([]Path, 0, len(r.WayPoints)-1)
	for i := 0; i < len(r.WayPoints)-1; i++ {
		start, stop := r.WayPoints[i], r.WayPoints[i+1]
		paths = append(paths, Path{
			Start:    start,
			Stop:     stop,
			LengthKM: distance.Distance(start.Coordinate(), stop.Coordinate()),
		})
	}

	r.Paths = Some(paths)
	return nil
}

// aggregate sums path lengths and collects every path of maximum length.
func aggregate(r *Route, now time.Time) error {
	paths, ok := r.Paths.Get()
	switch {
	case isOpen(r, now):
		return ErrRouteStillOpen
	case !ok:
		return ErrPathsNotComputed
	case r.Summary.IsSet():
		return fmt.Errorf("summary: %w", ErrAlreadyComputed)
	}

	r.Summary = Some(Summarize(paths))
	return nil
}

// Summarize computes the total length and the longest-path set of paths.
// Ties are kept in encounter order; equality is exact on the rounded lengths.
func Summarize(paths []Path) Summary {
	total := decimal.Zero
	longest := make([]Path, 0, 1)
	var maxKM decimal.Decimal

	for _, p := range paths {
		total = total.Add(p.LengthKM)

		switch {
		case len(longest) == 0 || p.LengthKM.GreaterThan(maxKM):
			maxKM = p.LengthKM
			longest = append(longest[:0], p)
		case p.LengthKM.Equal(maxKM):
			longest = append(longest, p)
		}
	}

	return Summary{TotalKM: total, LongestPaths: longest}
}
