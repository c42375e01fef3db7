package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pendingRecord mimics the turn-record payload the flush pipeline queues.
type pendingRecord struct {
	Turn int
	Mode string
}

func TestQueue_PushPopOrder(t *testing.T) {
	q := New[pendingRecord]()
	require.True(t, q.Empty())

	q.Push(pendingRecord{Turn: 1, Mode: "heuristic"})
	q.Push(pendingRecord{Turn: 2, Mode: "search"}, pendingRecord{Turn: 3, Mode: "search"})
	require.Equal(t, 3, q.Len())

	first := q.Pop()
	assert.Equal(t, 1, first.Turn)
	assert.Equal(t, "heuristic", first.Mode)
	assert.Equal(t, 2, q.Pop().Turn)
	assert.Equal(t, 3, q.Pop().Turn)
	assert.True(t, q.Empty())
}

func TestQueue_PopEmptyReturnsZeroValue(t *testing.T) {
	q := New[pendingRecord]()

	got := q.Pop()

	assert.Zero(t, got.Turn)
	assert.Empty(t, got.Mode)
}

func TestQueue_Clear(t *testing.T) {
	q := New[pendingRecord]()
	q.Push(pendingRecord{Turn: 1}, pendingRecord{Turn: 2})

	q.Clear()

	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())
}

func TestQueue_GetAndEmpty(t *testing.T) {
	q := New[pendingRecord]()
	q.Push(pendingRecord{Turn: 1}, pendingRecord{Turn: 2}, pendingRecord{Turn: 3})

	drained := q.GetAndEmpty()

	require.Len(t, drained, 3)
	assert.Equal(t, 1, drained[0].Turn)
	assert.Equal(t, 3, drained[2].Turn)
	assert.True(t, q.Empty())

	// Records arriving after a drain stay queued for the next one.
	q.Push(pendingRecord{Turn: 4})
	assert.Equal(t, 1, q.Len())
}

func TestQueue_ConcurrentPushPop(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			q.Push(n)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 100, q.Len())

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Pop()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, q.Len())
}

func TestQueue_ConcurrentDrainsPartitionItems(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Push(i)
	}

	var wg sync.WaitGroup
	results := make(chan []int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- q.GetAndEmpty()
		}()
	}
	wg.Wait()
	close(results)

	// Every item lands in exactly one drain.
	total := 0
	for r := range results {
		total += len(r)
	}
	assert.Equal(t, 100, total)
	assert.True(t, q.Empty())
}
