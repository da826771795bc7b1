package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ResultsKeyedByInputOrder(t *testing.T) {
	items := []int{5, 3, 1, 4, 2}

	results := Map(context.Background(), 3, items, func(ctx context.Context, n int) (int, error) {
		// Stagger completion so faster items finish first.
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, items[i]*10, r.Value)
		assert.NoError(t, r.Err)
	}
}

func TestMap_ErrorsDoNotAbortSiblings(t *testing.T) {
	items := []string{"ok-1", "boom", "ok-2"}

	results := Map(context.Background(), 2, items, func(ctx context.Context, s string) (string, error) {
		if s == "boom" {
			return "", fmt.Errorf("processing %s failed", s)
		}
		return s + "-done", nil
	})

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "ok-1-done", results[0].Value)

	assert.EqualError(t, results[1].Err, "processing boom failed")

	assert.NoError(t, results[2].Err)
	assert.Equal(t, "ok-2-done", results[2].Value)
}

func TestMap_BoundsConcurrency(t *testing.T) {
	const workers = 3

	var current, peak int64
	var mu sync.Mutex

	items := make([]int, 20)
	Map(context.Background(), workers, items, func(ctx context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt64(&current, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&current, -1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak, int64(workers))
	assert.Greater(t, peak, int64(0))
}

func TestMap_ZeroWorkersStillRuns(t *testing.T) {
	results := Map(context.Background(), 0, []int{1, 2}, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Value)
	assert.Equal(t, 2, results[1].Value)
}

func TestMap_EmptyInput(t *testing.T) {
	results := Map(context.Background(), 4, nil, func(ctx context.Context, n int) (int, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})

	assert.Empty(t, results)
}
