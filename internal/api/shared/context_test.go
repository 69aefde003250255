package shared_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyforge/srs-api/internal/api/shared"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := shared.SetTraceID(context.Background())
	traceID := shared.GetTraceID(ctx)

	assert.Len(t, traceID, shared.TraceIDLength*2)

	// Fresh contexts get distinct IDs.
	other := shared.GetTraceID(shared.SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)

	// Absent trace ID yields empty string.
	assert.Equal(t, "", shared.GetTraceID(context.Background()))
}
