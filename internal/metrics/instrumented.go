package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kailas-cloud/docsearch/internal/db"
)

const tracerName = "github.com/kailas-cloud/docsearch/internal/metrics"

// InstrumentedEngine decorates a db.Engine with operation metrics and trace spans.
// Spans go to the global OpenTelemetry provider, a no-op unless one is installed.
type InstrumentedEngine struct {
	db.Engine
	driver string
	tracer trace.Tracer
}

// InstrumentEngine wraps e so every index, bulk and search call is observed
// under the given driver label.
func InstrumentEngine(e db.Engine, driver string) *InstrumentedEngine {
	RegisterEngineMetrics()
	return &InstrumentedEngine{Engine: e, driver: driver, tracer: otel.Tracer(tracerName)}
}

type opScope struct {
	e     *InstrumentedEngine
	op    string
	span  trace.Span
	start time.Time
}

func (e *InstrumentedEngine) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, opScope) {
	attrs = append(attrs,
		attribute.String("db.system", e.driver),
		attribute.String("db.operation", op),
	)
	ctx, span := e.tracer.Start(ctx, "engine."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, opScope{e: e, op: op, span: span, start: time.Now()}
}

func (s opScope) end(err error) {
	ObserveEngine(s.e.driver, s.op, s.start, err)
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, outcome(err))
	}
	s.span.End()
}

// Ping checks connectivity.
func (e *InstrumentedEngine) Ping(ctx context.Context) error {
	ctx, s := e.begin(ctx, db.OpPing)
	err := e.Engine.Ping(ctx)
	s.end(err)
	return err //nolint:wrapcheck // decorator
}

// CreateIndex creates an index.
func (e *InstrumentedEngine) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	ctx, s := e.begin(ctx, db.OpCreateIndex, attribute.String("db.index", def.Name))
	err := e.Engine.CreateIndex(ctx, def)
	s.end(err)
	return err //nolint:wrapcheck // decorator
}

// DropIndex drops an index.
func (e *InstrumentedEngine) DropIndex(ctx context.Context, name string) error {
	ctx, s := e.begin(ctx, db.OpDropIndex, attribute.String("db.index", name))
	err := e.Engine.DropIndex(ctx, name)
	s.end(err)
	return err //nolint:wrapcheck // decorator
}

// IndexExists reports whether an index exists.
func (e *InstrumentedEngine) IndexExists(ctx context.Context, name string) (bool, error) {
	ctx, s := e.begin(ctx, db.OpIndexExists, attribute.String("db.index", name))
	ok, err := e.Engine.IndexExists(ctx, name)
	s.end(err)
	return ok, err //nolint:wrapcheck // decorator
}

// BulkIndex loads documents.
func (e *InstrumentedEngine) BulkIndex(ctx context.Context, index string, docs []db.Document) error {
	ctx, s := e.begin(ctx, db.OpBulk,
		attribute.String("db.index", index),
		attribute.Int("db.documents", len(docs)),
	)
	err := e.Engine.BulkIndex(ctx, index, docs)
	s.end(err)
	return err //nolint:wrapcheck // decorator
}

// SearchText runs a full-text query.
func (e *InstrumentedEngine) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	ctx, s := e.begin(ctx, db.OpSearch,
		attribute.String("db.index", q.IndexName),
		attribute.Int("db.filters", len(q.Filters)),
	)
	res, err := e.Engine.SearchText(ctx, q)
	if res != nil {
		s.span.SetAttributes(attribute.Int("db.hits", len(res.Entries)))
	}
	s.end(err)
	return res, err //nolint:wrapcheck // decorator
}
