package route

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/routetrack/routetrack/internal/route"

// Operation names used for spans and metric attributes.
const (
	OpCreate       = "create"
	OpAddWayPoint  = "add_way_point"
	OpDerivePaths  = "derive_paths"
	OpAggregate    = "aggregate"
	OpComputedData = "computed_data"
)

// Metrics holds the route engine instruments.
type Metrics struct {
	operations   metric.Int64Counter
	pathsDerived metric.Int64Counter
	wayPoints    metric.Int64Counter
}

// NewMetrics creates route engine instruments on meter.
// A nil meter uses the global meter provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	operations, err := meter.Int64Counter(
		"route.operations.total",
		metric.WithDescription("Route engine operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	pathsDerived, err := meter.Int64Counter(
		"route.paths.derived",
		metric.WithDescription("Number of path segments derived from way-points"),
		metric.WithUnit("{path}"),
	)
	if err != nil {
		return nil, err
	}

	wayPoints, err := meter.Int64Counter(
		"route.way_points.added",
		metric.WithDescription("Number of way-points appended to routes"),
		metric.WithUnit("{way_point}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		operations:   operations,
		pathsDerived: pathsDerived,
		wayPoints:    wayPoints,
	}, nil
}

// RecordOperation counts one engine operation with its outcome.
func (m *Metrics) RecordOperation(ctx context.Context, op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route.operation", op),
		attribute.String("route.outcome", outcome),
	))
}

// RecordPathsDerived counts derived path segments.
func (m *Metrics) RecordPathsDerived(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.pathsDerived.Add(ctx, int64(n))
}

// RecordWayPointAdded counts an appended way-point.
func (m *Metrics) RecordWayPointAdded(ctx context.Context) {
	if m == nil {
		return
	}
	m.wayPoints.Add(ctx, 1)
}
