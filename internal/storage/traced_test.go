package storage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTraced_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	inner := newTestSQLite(t)
	m := NewTraced(inner, tp.Tracer("test"), zerolog.Nop(), "sqlite")
	ctx := context.Background()

	root, err := m.Root(ctx)
	require.NoError(t, err)
	_, err = m.CreateFolder(ctx, "/docs/")
	require.NoError(t, err)
	_, err = m.CreateFolder(ctx, "/docs/")
	require.ErrorIs(t, err, ErrExists)
	files, err := m.List(ctx, root)
	require.NoError(t, err)
	require.Len(t, files, 1)

	spans := rec.Ended()
	require.Len(t, spans, 4)
	assert.Equal(t, "storage.root", spans[0].Name())
	assert.Equal(t, "storage.create_folder", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, "storage.list", spans[3].Name())
	assert.Contains(t, spans[3].Attributes(), attribute.Int("cloudnav.storage.count", 1))
	assert.Same(t, Manager(inner), m.Unwrap())
}
