package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/go-backend/internal/adapters/metrics"
	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/test/helpers"
)

type timedRequest struct{}

func TestTelemetryMiddleware_RecordsOutcomes(t *testing.T) {
	collector := metrics.NewRequestMetricsCollector()
	mw := metrics.TelemetryMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "done", nil
	}
	failing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("handler failure")
	}

	_, err := mw(context.Background(), &timedRequest{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &timedRequest{}, failing)
	require.Error(t, err)

	// Both outcomes observed, span closed: nothing left in flight
	assert.Equal(t, float64(0), testutil.ToFloat64(collector.InFlight("timedRequest")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.RequestsTotal("timedRequest", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.RequestsTotal("timedRequest", "error")))
}

func TestTelemetryMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := metrics.TelemetryMiddleware(nil)
	handler := &helpers.CountingHandler{Response: "done"}

	response, err := mw(context.Background(), &timedRequest{}, handler.Handle)

	require.NoError(t, err)
	assert.Equal(t, "done", response)
	assert.Equal(t, int64(1), handler.Calls.Load())
}

func TestCollector_RegisterWithoutRegistryIsNoOp(t *testing.T) {
	collector := metrics.NewRequestMetricsCollector()
	assert.NoError(t, collector.Register())
}
