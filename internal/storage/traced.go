package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Traced wraps a Manager with a span and a debug log line per call.
type Traced struct {
	next   Manager
	tracer oteltrace.Tracer
	log    zerolog.Logger
}

// Ensure Traced implements Manager.
var _ Manager = (*Traced)(nil)

// NewTraced wraps next. backend names the backend in span attributes.
func NewTraced(next Manager, tracer oteltrace.Tracer, log zerolog.Logger, backend string) *Traced {
	return &Traced{
		next:   next,
		tracer: tracer,
		log:    log.With().Str("backend", backend).Logger(),
	}
}

// Unwrap returns the wrapped Manager.
func (t *Traced) Unwrap() Manager {
	return t.next
}

func (t *Traced) start(ctx context.Context, op, path string) (context.Context, oteltrace.Span, time.Time) {
	ctx, span := t.tracer.Start(ctx, "storage."+op, oteltrace.WithAttributes(
		attribute.String("cloudnav.storage.op", op),
		attribute.String("cloudnav.file.path", path),
	))
	return ctx, span, time.Now()
}

func (t *Traced) end(span oteltrace.Span, op, path string, began time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	t.log.Debug().
		Str("op", op).
		Str("path", path).
		Dur("took", time.Since(began)).
		Err(err).
		Msg("storage call")
}

func (t *Traced) Root(ctx context.Context) (f File, err error) {
	ctx, span, began := t.start(ctx, "root", PathSeparator)
	defer func() { t.end(span, "root", PathSeparator, began, err) }()
	return t.next.Root(ctx)
}

func (t *Traced) Stat(ctx context.Context, p string) (f File, err error) {
	ctx, span, began := t.start(ctx, "stat", p)
	defer func() { t.end(span, "stat", p, began, err) }()
	return t.next.Stat(ctx, p)
}

func (t *Traced) List(ctx context.Context, folder File) (files []File, err error) {
	ctx, span, began := t.start(ctx, "list", folder.Path)
	defer func() {
		span.SetAttributes(attribute.Int("cloudnav.storage.count", len(files)))
		t.end(span, "list", folder.Path, began, err)
	}()
	return t.next.List(ctx, folder)
}

func (t *Traced) CreateFolder(ctx context.Context, p string) (f File, err error) {
	ctx, span, began := t.start(ctx, "create_folder", p)
	defer func() { t.end(span, "create_folder", p, began, err) }()
	return t.next.CreateFolder(ctx, p)
}
