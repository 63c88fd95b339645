package utils

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4, 0)

	var count int64
	for i := 0; i < 50; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}
	pool.Wait()

	if count != 50 {
		t.Errorf("completed jobs = %d; want 50", count)
	}
}

func TestWorkerPoolLimitsConcurrency(t *testing.T) {
	pool := NewWorkerPool(3, 0)

	var current, peak int64
	for i := 0; i < 30; i++ {
		pool.Submit(func() {
			n := atomic.AddInt64(&current, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			atomic.AddInt64(&current, -1)
		})
	}
	pool.Wait()

	if peak > 3 {
		t.Errorf("peak concurrency = %d; want <= 3", peak)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		size     int
		expected [][]int
	}{
		{"even split", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"size larger than input", []int{1, 2}, 15, [][]int{{1, 2}}},
		{"empty input", nil, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.items, tt.size)
			if len(got) != len(tt.expected) {
				t.Fatalf("chunks = %d; want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if len(got[i]) != len(tt.expected[i]) {
					t.Errorf("chunk %d has %d items; want %d", i, len(got[i]), len(tt.expected[i]))
				}
			}
		})
	}
}

func TestChunkZeroSizeDefaultsToOne(t *testing.T) {
	if got := Chunk([]int{1, 2, 3}, 0); len(got) != 3 {
		t.Errorf("chunks = %d; want 3", len(got))
	}
}

func TestTitleSetDeduplicatesUnderConcurrency(t *testing.T) {
	set := NewTitleSet()

	var added int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if set.Add("sofa") {
				atomic.AddInt64(&added, 1)
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("Add succeeded %d times; want exactly 1", added)
	}
	if !set.Contains("sofa") {
		t.Error("set should contain the key")
	}
	if set.Size() != 1 {
		t.Errorf("size = %d; want 1", set.Size())
	}
}
