package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupRecorder 安装使用内存exporter的全局Provider
func setupRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := install(context.Background(), "test-service", sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return exporter
}

func TestStartSpan_ParentChild(t *testing.T) {
	exporter := setupRecorder(t)

	ctx, parent := StartSpan(context.Background(), "inventory", "SellBatch")
	_, child := StartSpan(ctx, "inventory", "SellBatch.entry")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	// WithSyncer按End顺序导出：先子后父
	assert.Equal(t, "SellBatch.entry", spans[0].Name)
	assert.Equal(t, "SellBatch", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func TestEndSpan_Status(t *testing.T) {
	exporter := setupRecorder(t)

	_, ok := StartSpan(context.Background(), "inventory", "Restock")
	ok.SetAttributes(attribute.Int64("book.id", 1))
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "inventory", "SellOne")
	EndSpan(failed, errors.New("库存不足"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.Int64("book.id", 1))

	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "库存不足", spans[1].Status.Description)
	require.Len(t, spans[1].Events, 1)
	assert.Equal(t, "exception", spans[1].Events[0].Name)
}

func TestExtractIDs(t *testing.T) {
	setupRecorder(t)

	t.Run("有效Span", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "inventory", "GetByID")
		defer span.End()

		assert.Len(t, ExtractTraceID(ctx), 32)
		assert.Len(t, ExtractSpanID(ctx), 16)
		assert.Equal(t, span.SpanContext().TraceID().String(), ExtractTraceID(ctx))
	})

	t.Run("无Span", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
		assert.Empty(t, ExtractSpanID(context.Background()))
	})
}
