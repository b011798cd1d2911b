package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_ChunksInOrder(t *testing.T) {
	items := make([]int, 0, 12)
	for i := range 12 {
		items = append(items, i)
	}

	var chunks [][]int
	err := Process(context.Background(), items, 5, 0, func(_ context.Context, chunk []int) error {
		chunks = append(chunks, append([]int(nil), chunk...))
		return nil
	})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, chunks[0])
	assert.Equal(t, []int{5, 6, 7, 8, 9}, chunks[1])
	assert.Equal(t, []int{10, 11}, chunks[2])
}

func TestProcess_EmptyInputDoesNothing(t *testing.T) {
	called := false
	err := Process(context.Background(), nil, 10, time.Second, func(_ context.Context, _ []int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestProcess_DefaultSize(t *testing.T) {
	items := make([]int, DefaultSize+1)

	var sizes []int
	err := Process(context.Background(), items, 0, 0, func(_ context.Context, chunk []int) error {
		sizes = append(sizes, len(chunk))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{DefaultSize, 1}, sizes)
}

func TestProcess_StopsAtFirstError(t *testing.T) {
	items := []int{1, 2, 3, 4}
	boom := errors.New("boom")

	calls := 0
	err := Process(context.Background(), items, 2, 0, func(_ context.Context, _ []int) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestProcess_EnforcesInterval(t *testing.T) {
	items := []int{1, 2, 3}
	interval := 30 * time.Millisecond

	start := time.Now()
	err := Process(context.Background(), items, 1, interval, func(_ context.Context, _ []int) error {
		return nil
	})
	require.NoError(t, err)

	// Three chunks: first immediate, two more spaced by the interval.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestProcess_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	items := make([]int, 10)
	calls := 0
	err := Process(ctx, items, 1, 50*time.Millisecond, func(_ context.Context, _ []int) error {
		calls++
		cancel()
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
