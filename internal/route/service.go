package route

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/routetrack/routetrack/internal/geo"
)

// ServiceConfig holds configuration for the route service.
type ServiceConfig struct {
	Repository Repository
	Distance   geo.Provider
	Clock      Clock
	Logger     zerolog.Logger
	Metrics    *Metrics
	Tracer     trace.Tracer
}

// Service provides route operations.
type Service struct {
	repo     Repository
	distance geo.Provider
	clock    Clock
	logger   zerolog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// NewService creates a new route service.
// Missing collaborators default to an in-memory repository, the WGS-84
// geodesic and the local system clock.
func NewService(cfg ServiceConfig) *Service {
	repo := cfg.Repository
	if repo == nil {
		repo = NewInMemoryRepository()
	}

	distance := cfg.Distance
	if distance == nil {
		distance = geo.NewGeodesic()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = NewSystemClock(nil)
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}

	return &Service{
		repo:     repo,
		distance: distance,
		clock:    clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		tracer:   tracer,
	}
}

// CreateRoute opens a new route dated today.
func (s *Service) CreateRoute(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, OpCreate, id)
	defer func() { s.finish(ctx, span, OpCreate, id, err) }()

	route := &Route{
		ID:      id,
		Created: dateOf(s.clock.Now()),
	}

	if err := s.repo.Create(ctx, route); err != nil {
		return err
	}

	s.logger.Info().
		Str("route_id", id).
		Time("created", route.Created).
		Msg("route created")
	return nil
}

// AddWayPoint appends a way-point to a route that is still open.
// The coordinate is validated before the route is looked up.
func (s *Service) AddWayPoint(ctx context.Context, id string, lat, lon decimal.Decimal) (err error) {
	ctx, span := s.start(ctx, OpAddWayPoint, id)
	defer func() { s.finish(ctx, span, OpAddWayPoint, id, err) }()

	if err := ValidateCoordinate(lat, lon); err != nil {
		return err
	}

	now := s.clock.Now()
	wp := &WayPoint{Lat: lat, Lon: lon, CreatedAt: now}

	var count int
	err = s.repo.Update(ctx, id, func(r *Route) error {
		if err := appendWayPoint(r, wp, now); err != nil {
			return err
		}
		count = len(r.WayPoints)
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordWayPointAdded(ctx)
	s.logger.Debug().
		Str("route_id", id).
		Str("lat", lat.String()).
		Str("lon", lon.String()).
		Int("way_points", count).
		Msg("way point added")
	return nil
}

// DerivePaths computes the paths of a closed route. It fails with
// ErrAlreadyComputed if the paths exist.
func (s *Service) DerivePaths(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, OpDerivePaths, id)
	defer func() { s.finish(ctx, span, OpDerivePaths, id, err) }()

	now := s.clock.Now()
	var derived int
	err = s.repo.Update(ctx, id, func(r *Route) error {
		if err := derivePaths(r, now, s.distance); err != nil {
			return err
		}
		paths, _ := r.Paths.Get()
		derived = len(paths)
		return nil
	})
	if err != nil {
		return err
	}

	s.pathsDerived(ctx, id, derived)
	return nil
}

// Aggregate computes the total length and longest paths of a closed route.
// It fails with ErrPathsNotComputed before DerivePaths and with
// ErrAlreadyComputed if the summary exists.
func (s *Service) Aggregate(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, OpAggregate, id)
	defer func() { s.finish(ctx, span, OpAggregate, id, err) }()

	now := s.clock.Now()
	var summary Summary
	err = s.repo.Update(ctx, id, func(r *Route) error {
		if err := aggregate(r, now); err != nil {
			return err
		}
		summary, _ = r.Summary.Get()
		return nil
	})
	if err != nil {
		return err
	}

	s.aggregated(id, summary)
	return nil
}

// GetComputedRouteData derives paths and aggregates as needed, then returns
// the route's total length and longest paths. Both steps run under a single
// route lock and each runs at most once per route.
func (s *Service) GetComputedRouteData(ctx context.Context, id string) (data *ComputedData, err error) {
	ctx, span := s.start(ctx, OpComputedData, id)
	defer func() { s.finish(ctx, span, OpComputedData, id, err) }()

	now := s.clock.Now()
	derived := -1
	aggregated := false

	err = s.repo.Update(ctx, id, func(r *Route) error {
		if !r.Paths.IsSet() {
			if err := derivePaths(r, now, s.distance); err != nil {
				return err
			}
			paths, _ := r.Paths.Get()
			derived = len(paths)
		}

		if !r.Summary.IsSet() {
			if err := aggregate(r, now); err != nil {
				return err
			}
			aggregated = true
		}

		summary, _ := r.Summary.Get()
		data = &ComputedData{
			RouteID:      r.ID,
			TotalKM:      summary.TotalKM,
			LongestPaths: append([]Path{}, summary.LongestPaths...),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyComputed) || errors.Is(err, ErrPathsNotComputed) {
			// Unreachable while presence is checked under the route lock.
			s.logger.Error().Err(err).Str("route_id", id).Msg("inconsistent route state")
		}
		return nil, err
	}

	if derived >= 0 {
		s.pathsDerived(ctx, id, derived)
	}
	if aggregated {
		s.aggregated(id, Summary{TotalKM: data.TotalKM, LongestPaths: data.LongestPaths})
	}
	span.SetAttributes(
		attribute.Bool("route.derived", derived >= 0),
		attribute.Bool("route.aggregated", aggregated),
	)

	return data, nil
}

// RouteLength returns the total length of a route in kilometers.
func (s *Service) RouteLength(ctx context.Context, id string) (decimal.Decimal, error) {
	data, err := s.GetComputedRouteData(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return data.TotalKM, nil
}

// LongestPaths returns every path of maximum length, in route order.
func (s *Service) LongestPaths(ctx context.Context, id string) ([]Path, error) {
	data, err := s.GetComputedRouteData(ctx, id)
	if err != nil {
		return nil, err
	}
	return data.LongestPaths, nil
}

// Status reports the lifecycle state of a route without computing anything.
func (s *Service) Status(ctx context.Context, id string) (*Status, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Status{
		RouteID:   r.ID,
		Created:   r.Created,
		Open:      isOpen(r, s.clock.Now()),
		WayPoints: len(r.WayPoints),
		Computed:  r.Summary.IsSet(),
	}, nil
}

func (s *Service) pathsDerived(ctx context.Context, id string, n int) {
	s.metrics.RecordPathsDerived(ctx, n)
	s.logger.Info().
		Str("route_id", id).
		Int("paths", n).
		Msg("paths derived")
}

func (s *Service) aggregated(id string, summary Summary) {
	s.logger.Info().
		Str("route_id", id).
		Str("total_km", summary.TotalKM.String()).
		Int("longest_paths", len(summary.LongestPaths)).
		Msg("route aggregated")
}

func (s *Service) start(ctx context.Context, op, id string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "route."+op,
		trace.WithAttributes(attribute.String("route.id", id)),
	)
}

func (s *Service) finish(ctx context.Context, span trace.Span, op, id string, err error) {
	defer span.End()
	s.metrics.RecordOperation(ctx, op, err)

	if err == nil {
		return
	}

	kind := KindOf(err)
	span.SetAttributes(attribute.String("route.error_kind", kind.String()))
	if kind == KindUnknown {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	s.logger.Debug().
		Err(err).
		Str("route_id", id).
		Str("operation", op).
		Str("kind", kind.String()).
		Msg("route operation rejected")
}
