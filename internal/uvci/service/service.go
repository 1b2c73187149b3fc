// Package service runs inspections: parse an identifier (or reuse a cached
// record), store the result and publish an event.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"uvci/internal/platform/metrics"
	"uvci/internal/uvci"
	"uvci/internal/uvci/export"
	"uvci/internal/uvci/models"
	"uvci/internal/uvci/store"
	"uvci/pkg/platform/sentinel"
	"uvci/pkg/requestcontext"
)

const (
	tracerName         = "uvci/internal/uvci/service"
	defaultConcurrency = 8
)

type Store interface {
	Save(ctx context.Context, insp *models.Inspection) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	ListByOpaqueID(ctx context.Context, opaqueID string) ([]*models.Inspection, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (uvci.Record, bool, error)
	Set(ctx context.Context, key string, rec uvci.Record) error
}

type Publisher interface {
	Publish(ctx context.Context, ev models.InspectionEvent) error
}

// Service orchestrates inspections.
type Service struct {
	store       Store
	cache       Cache
	publisher   Publisher
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	concurrency int
	clock       func(ctx context.Context) time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore replaces the default in-memory store.
func WithStore(st Store) Option {
	return func(s *Service) {
		s.store = st
	}
}

func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithConcurrency bounds the parallel inspections of one batch. Values below
// one are ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the inspection timestamp source, which defaults to the
// request-scoped time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.clock = func(context.Context) time.Time { return now() }
	}
}

// New constructs a Service. Without WithStore inspections are kept in memory.
func New(opts ...Option) *Service {
	s := &Service{
		concurrency: defaultConcurrency,
		clock:       requestcontext.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = store.NewInMemoryStore()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Inspect parses raw, stores the inspection and publishes its event. Cache and
// publish failures are logged and do not fail the call; store failures do.
func (s *Service) Inspect(ctx context.Context, raw string) (*models.Inspection, error) {
	ctx, span := s.tracer.Start(ctx, "uvci.Inspect")
	defer span.End()
	start := time.Now()
	requestID := requestcontext.RequestID(ctx)

	normalized, accepted := uvci.Normalize(raw)
	rec, cached := s.lookup(ctx, normalized, accepted)
	if !cached {
		var stage uvci.Stage
		rec, stage = uvci.ParseWithStage(raw)
		s.metrics.IncrementParseStage(stage.String())
		if accepted {
			s.remember(ctx, normalized, rec)
		}
	}

	insp := models.NewInspection(raw, normalized, rec, s.clock(ctx))
	insp.Cached = cached
	insp.RequestID = requestID
	span.SetAttributes(
		attribute.String("uvci.inspection_id", insp.ID.String()),
		attribute.String("uvci.country", rec.Country),
		attribute.Int("uvci.schema_option", int(rec.SchemaOption)),
		attribute.Bool("uvci.checksum_verified", rec.ChecksumVerified),
		attribute.Bool("uvci.cached", cached),
	)

	if err := s.store.Save(ctx, insp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save inspection")
		s.logger.ErrorContext(ctx, "failed to save inspection",
			"request_id", requestID,
			"inspection_id", insp.ID,
			"error", err,
		)
		return nil, fmt.Errorf("save inspection: %w", err)
	}

	s.publish(ctx, insp)
	s.metrics.IncrementInspection(uint8(rec.SchemaOption), rec.ChecksumVerified, rec.IsNationalVariant())
	s.metrics.ObserveInspectLatency(time.Since(start))

	s.logger.InfoContext(ctx, "uvci inspected",
		"request_id", requestID,
		"inspection_id", insp.ID,
		"country", rec.Country,
		"schema_option", uint8(rec.SchemaOption),
		"checksum_verified", rec.ChecksumVerified,
		"cached", cached,
	)
	return insp, nil
}

func (s *Service) lookup(ctx context.Context, normalized string, accepted bool) (uvci.Record, bool) {
	if s.cache == nil || !accepted {
		return uvci.Record{}, false
	}
	rec, ok, err := s.cache.Get(ctx, normalized)
	switch {
	case err != nil:
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "record cache lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return uvci.Record{}, false
	case ok:
		s.metrics.IncrementCacheLookup("hit")
		return rec, true
	default:
		s.metrics.IncrementCacheLookup("miss")
		return uvci.Record{}, false
	}
}

func (s *Service) remember(ctx context.Context, normalized string, rec uvci.Record) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, normalized, rec); err != nil {
		s.logger.WarnContext(ctx, "record cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (s *Service) publish(ctx context.Context, insp *models.Inspection) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, insp.Event()); err != nil {
		s.metrics.IncrementPublishFailure()
		s.logger.ErrorContext(ctx, "failed to publish inspection event",
			"request_id", insp.RequestID,
			"inspection_id", insp.ID,
			"error", err,
		)
	}
}

// InspectBatch inspects every identifier with bounded parallelism. Results
// keep the input order; the first store failure cancels the rest.
func (s *Service) InspectBatch(ctx context.Context, raws []string) ([]models.Inspection, error) {
	ctx, span := s.tracer.Start(ctx, "uvci.InspectBatch",
		trace.WithAttributes(attribute.Int("uvci.batch_size", len(raws))))
	defer span.End()
	s.metrics.ObserveBatchSize(len(raws))

	results := make([]models.Inspection, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			insp, err := s.Inspect(gctx, raw)
			if err != nil {
				return fmt.Errorf("inspect item %d: %w", i, err)
			}
			results[i] = *insp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inspect batch")
		return nil, err
	}
	return results, nil
}

// Get returns a stored inspection.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	insp, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get inspection: %w", err)
	}
	return insp, nil
}

// History returns every stored inspection of one national certificate,
// oldest first. The opaque id is matched case-insensitively.
func (s *Service) History(ctx context.Context, opaqueID string) ([]*models.Inspection, error) {
	found, err := s.store.ListByOpaqueID(ctx, strings.ToUpper(strings.TrimSpace(opaqueID)))
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	return found, nil
}

// Graph renders the de-duplicated Cypher statements of raws followed by the
// RETURN directive.
func (s *Service) Graph(ctx context.Context, raws []string) string {
	_, span := s.tracer.Start(ctx, "uvci.Graph",
		trace.WithAttributes(attribute.Int("uvci.batch_size", len(raws))))
	defer span.End()
	stmts := export.GraphBatch(raws)
	span.SetAttributes(attribute.Int("uvci.statements", len(stmts)))
	return export.RenderGraph(stmts, true)
}
