package route

import "errors"

// Kind classifies a route engine failure.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindAlreadyExists
	KindNotFound
	KindInvalidCoordinate
	KindRouteClosed
	KindRouteStillOpen
	KindAlreadyComputed
	KindInsufficientWayPoints
	KindPathsNotComputed
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown",
	KindAlreadyExists:         "already_exists",
	KindNotFound:              "not_found",
	KindInvalidCoordinate:     "invalid_coordinate",
	KindRouteClosed:           "route_closed",
	KindRouteStillOpen:        "route_still_open",
	KindAlreadyComputed:       "already_computed",
	KindInsufficientWayPoints: "insufficient_way_points",
	KindPathsNotComputed:      "paths_not_computed",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error is a route engine failure of a specific kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Engine errors.
var (
	ErrAlreadyExists         = &Error{Kind: KindAlreadyExists, Message: "route already exists"}
	ErrNotFound              = &Error{Kind: KindNotFound, Message: "route does not exist"}
	ErrInvalidCoordinate     = &Error{Kind: KindInvalidCoordinate, Message: "coordinate out of range"}
	ErrRouteClosed           = &Error{Kind: KindRouteClosed, Message: "route is already closed"}
	ErrRouteStillOpen        = &Error{Kind: KindRouteStillOpen, Message: "route is still open"}
	ErrAlreadyComputed       = &Error{Kind: KindAlreadyComputed, Message: "already calculated"}
	ErrInsufficientWayPoints = &Error{Kind: KindInsufficientWayPoints, Message: "not enough way points in route"}
	ErrPathsNotComputed      = &Error{Kind: KindPathsNotComputed, Message: "paths must be calculated first"}
)

// KindOf returns the kind of the first *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
