package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAfterCompletes(t *testing.T) {
	e := NewExecutor()
	id, wait, err := e.After(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, e.Active())

	assert.NoError(t, wait())
	assert.Equal(t, 0, e.Active())
}

func TestCancelStopsTask(t *testing.T) {
	e := NewExecutor()
	id, wait, err := e.After(context.Background(), time.Hour)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- wait() }()

	e.Cancel(id)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled task did not return")
	}
	assert.Equal(t, 0, e.Active())
}

func TestCancelUnknownIsNoop(t *testing.T) {
	e := NewExecutor()
	e.Cancel("missing")
	assert.Equal(t, 0, e.Active())
}

func TestCancelAll(t *testing.T) {
	e := NewExecutor()
	results := make(chan error, 3)
	for i := 0; i < 3; i++ {
		_, wait, err := e.After(context.Background(), time.Hour)
		require.NoError(t, err)
		go func() { results <- wait() }()
	}

	e.CancelAll()
	for i := 0; i < 3; i++ {
		select {
		case err := <-results:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("task did not return after CancelAll")
		}
	}
}

func TestParentContextCancels(t *testing.T) {
	e := NewExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	_, wait, err := e.After(ctx, time.Hour)
	require.NoError(t, err)

	cancel()
	assert.ErrorIs(t, wait(), context.Canceled)
}

func TestCloseCancelsAndRefuses(t *testing.T) {
	e := NewExecutor()
	_, wait, err := e.After(context.Background(), time.Hour)
	require.NoError(t, err)

	e.Close()
	e.Close()
	assert.ErrorIs(t, wait(), context.Canceled)

	_, _, err = e.After(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, ErrExecutorClosed)
}

func TestSealLetsPendingFinish(t *testing.T) {
	e := NewExecutor()
	_, wait, err := e.After(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)

	e.Seal()
	_, _, err = e.After(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, ErrExecutorClosed)

	assert.NoError(t, wait())
}
