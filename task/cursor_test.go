package task

import (
	"sync"
	"testing"
)

func TestCursorSequential(t *testing.T) {
	c := NewCursor(3)
	for want := 0; want < 3; want++ {
		got, ok := c.Next()
		if !ok || got != want {
			t.Fatalf("Next() = %d, %t; want %d, true", got, ok, want)
		}
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() past the limit reported more work")
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() stays exhausted")
	}
	if c.Claimed() != 3 {
		t.Errorf("Claimed() = %d, want 3", c.Claimed())
	}
}

func TestCursorEmpty(t *testing.T) {
	if _, ok := NewCursor(0).Next(); ok {
		t.Error("an empty cursor handed out a row")
	}
}

func TestCursorConcurrentExhaustion(t *testing.T) {
	const height = 1000

	for _, workers := range []int{1, 2, 7, 32} {
		c := NewCursor(height)
		claims := make([][]int, workers)
		failures := make([]int, workers)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					row, ok := c.Next()
					if !ok {
						failures[w]++
						return
					}
					claims[w] = append(claims[w], row)
				}
			}()
		}
		wg.Wait()

		seen := make(map[int]bool, height)
		for w := range claims {
			if failures[w] != 1 {
				t.Errorf("workers=%d: worker %d saw %d exhausted claims", workers, w, failures[w])
			}
			for _, row := range claims[w] {
				if seen[row] {
					t.Fatalf("workers=%d: row %d handed out twice", workers, row)
				}
				if row < 0 || row >= height {
					t.Fatalf("workers=%d: row %d out of range", workers, row)
				}
				seen[row] = true
			}
		}
		if len(seen) != height {
			t.Errorf("workers=%d: %d rows claimed, want %d", workers, len(seen), height)
		}
	}
}

func TestCursorAbort(t *testing.T) {
	c := NewCursor(10)
	if _, ok := c.Next(); !ok {
		t.Fatal("first claim failed")
	}
	c.Abort()
	if !c.Aborted() {
		t.Error("Aborted() is false after Abort")
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() handed out a row after Abort")
	}
	if c.Claimed() != 1 {
		t.Errorf("Claimed() = %d, want 1", c.Claimed())
	}
}

func BenchmarkCursorNext(b *testing.B) {
	c := NewCursor(b.N)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Next()
		}
	})
}
