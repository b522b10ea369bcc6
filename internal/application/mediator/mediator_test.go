package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/go-backend/internal/application/mediator"
	"taskboard/go-backend/test/helpers"
)

func TestSend_DispatchesToRegisteredHandler(t *testing.T) {
	registry := mediator.NewRegistry()
	handler := &helpers.CountingHandler{Response: "pong"}
	require.NoError(t, mediator.RegisterHandler[*pingRequest](registry, handler))

	m := mediator.New(registry, nil)

	response, err := m.Send(context.Background(), &pingRequest{})

	require.NoError(t, err)
	assert.Equal(t, "pong", response)
	assert.Equal(t, int64(1), handler.Calls.Load())
}

func TestSend_UnregisteredRequestIsNotFound(t *testing.T) {
	registry := mediator.NewRegistry()
	handler := &helpers.CountingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingRequest](registry, handler))

	m := mediator.New(registry, nil)

	_, err := m.Send(context.Background(), &otherRequest{})

	var notFound *mediator.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "otherRequest", notFound.Descriptor)
	assert.Equal(t, int64(0), handler.Calls.Load())
}

func TestSend_NilRequestIsError(t *testing.T) {
	m := mediator.New(mediator.NewRegistry(), nil)

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestSend_HandlerErrorPassesThroughUnchanged(t *testing.T) {
	registry := mediator.NewRegistry()
	handlerErr := errors.New("storage exploded")
	require.NoError(t, mediator.RegisterHandler[*pingRequest](registry, &helpers.CountingHandler{Err: handlerErr}))

	logger := &helpers.RecordingLogger{}
	m := mediator.New(registry, logger, mediator.LoggingMiddleware(logger))

	_, err := m.Send(context.Background(), &pingRequest{})

	assert.ErrorIs(t, err, handlerErr)
	assert.True(t, logger.HasEntry("error", "request failed"))
}

func TestSend_MiddlewareRunsOutsideIn(t *testing.T) {
	registry := mediator.NewRegistry()
	require.NoError(t, mediator.RegisterHandler[*pingRequest](registry, &helpers.CountingHandler{Response: "pong"}))

	var order []string
	tag := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			response, err := next(ctx, request)
			order = append(order, name+":after")
			return response, err
		}
	}

	m := mediator.New(registry, nil, tag("outer"), tag("inner"))

	_, err := m.Send(context.Background(), &pingRequest{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestPublish_NoListenersIsWarnedNoOp(t *testing.T) {
	logger := &helpers.RecordingLogger{}
	m := mediator.New(mediator.NewRegistry(), logger)

	m.Publish(context.Background(), &createdNotification{})

	assert.True(t, logger.HasEntry("warn", "notification has no listeners"))
}

func TestPublish_InvokesAllListenersDespiteFailure(t *testing.T) {
	registry := mediator.NewRegistry()
	failing := &helpers.CountingListener{Err: errors.New("subscriber down")}
	healthy := &helpers.CountingListener{}
	require.NoError(t, mediator.RegisterListener[*createdNotification](registry, failing))
	require.NoError(t, mediator.RegisterListener[*createdNotification](registry, healthy))

	logger := &helpers.RecordingLogger{}
	m := mediator.New(registry, logger)

	m.Publish(context.Background(), &createdNotification{})

	assert.Equal(t, int64(1), failing.Calls.Load())
	assert.Equal(t, int64(1), healthy.Calls.Load())
	assert.True(t, logger.HasEntry("error", "notification handler failed"))
}

func TestPublish_PanickingListenerDoesNotStarveSiblings(t *testing.T) {
	registry := mediator.NewRegistry()
	panicking := &helpers.CountingListener{Panic: true}
	healthy := &helpers.CountingListener{}
	require.NoError(t, mediator.RegisterListener[*createdNotification](registry, panicking))
	require.NoError(t, mediator.RegisterListener[*createdNotification](registry, healthy))

	logger := &helpers.RecordingLogger{}
	m := mediator.New(registry, logger)

	m.Publish(context.Background(), &createdNotification{})

	assert.Equal(t, int64(1), panicking.Calls.Load())
	assert.Equal(t, int64(1), healthy.Calls.Load())
	assert.True(t, logger.HasEntry("error", "notification handler panicked"))
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingRequest", mediator.RequestName(&pingRequest{}))
	assert.Equal(t, "pingRequest", mediator.RequestName(pingRequest{}))
	assert.Equal(t, "UnknownRequest", mediator.RequestName(nil))
}
