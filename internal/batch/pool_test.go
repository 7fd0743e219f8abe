package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_PreservesInputOrder(t *testing.T) {
	inputs := make([]int, 50)
	for i := range inputs {
		inputs[i] = i
	}

	pool := NewPool(8, func(_ context.Context, n int) (string, error) {
		// Finish out of order on purpose.
		time.Sleep(time.Duration(50-n) * time.Microsecond)
		return fmt.Sprintf("r%d", n), nil
	})
	items := pool.Execute(context.Background(), inputs)

	require.Len(t, items, 50)
	for i, item := range items {
		assert.Equal(t, i, item.Input)
		assert.Equal(t, fmt.Sprintf("r%d", i), item.Result)
		assert.NoError(t, item.Err)
	}
}

func TestPool_FailureDoesNotAbortSiblings(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool(4, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n * 10, nil
	})
	items := pool.Execute(context.Background(), []int{0, 1, 2, 3})

	require.Len(t, items, 4)
	assert.NoError(t, items[0].Err)
	assert.NoError(t, items[1].Err)
	assert.ErrorIs(t, items[2].Err, boom)
	assert.NoError(t, items[3].Err)
	assert.Equal(t, 30, items[3].Result)
}

func TestPool_MinimumOneWorker(t *testing.T) {
	var calls atomic.Int32
	pool := NewPool(0, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})
	items := pool.Execute(context.Background(), []int{1, 2, 3})
	assert.Len(t, items, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestPool_CancelledContextMarksUnreachedInputs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool(2, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n * 10, nil
	})
	items := pool.Execute(ctx, []int{4, 5, 6})

	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, []int{4, 5, 6}[i], item.Input)
		if item.Err != nil {
			assert.ErrorIs(t, item.Err, context.Canceled)
		} else {
			assert.Equal(t, item.Input*10, item.Result)
		}
	}
	// With the context already cancelled no input may be silently dropped:
	// each is either processed or carries the context error.
	processed := int(calls.Load())
	errored := 0
	for _, item := range items {
		if item.Err != nil {
			errored++
		}
	}
	assert.Equal(t, 3, processed+errored)
}

func TestPool_EmptyInput(t *testing.T) {
	pool := NewPool(4, func(_ context.Context, n int) (int, error) { return n, nil })
	assert.Empty(t, pool.Execute(context.Background(), nil))
}
