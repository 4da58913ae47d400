package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitWritesJSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("parking-test", "production", &buf)

	Info(context.Background(), "lot created", "big", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "lot created", record["msg"])
	assert.Equal(t, "parking-test", record["service"])
	assert.Equal(t, "production", record["environment"])
	assert.EqualValues(t, 2, record["big"])
}

func TestDebugSuppressedOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("parking-test", "production", &buf)

	Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	InitWithWriter("parking-test", "development", &buf)
	Debug(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("parking-test", "production", &buf)

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	Info(ctx, "traced")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), record["span_id"])
}
