package universe

import (
	"sync"
	"testing"
	"time"
)

const waitTimeout = 2 * time.Second

//recorder collects the values delivered by a stream
type recorder[T any] struct {
	mu     sync.Mutex
	events []T
	ch     chan T
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{ch: make(chan T, 1024)}
}

func (r *recorder[T]) record(v T) {
	r.mu.Lock()
	r.events = append(r.events, v)
	r.mu.Unlock()
	select {
	case r.ch <- v:
	default:
	}
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.events...)
}

//waitFor reads delivered values until pred matches
func (r *recorder[T]) waitFor(t *testing.T, pred func(T) bool) T {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case v := <-r.ch:
			if pred(v) {
				return v
			}
		case <-deadline:
			t.Fatalf("timed out, got %v", r.all())
		}
	}
}

//areaOf builds an area of the given size with the listed cells alive
func areaOf(rows int, cols int, alive ...Coordinate) Area {
	a := createArea(rows, cols)
	for _, c := range alive {
		a.Entities[c.Row][c.Col] = true
	}
	return a
}

func newTestGame(t *testing.T, rows int, cols int, interval time.Duration, alive ...Coordinate) *Game {
	t.Helper()
	g, err := NewGame(&Options{Rows: rows, Cols: cols, Interval: interval})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Close)
	if len(alive) > 0 {
		if err := g.Settle(alive); err != nil {
			t.Fatalf("Settle: %v", err)
		}
	}
	return g
}

var (
	block   = []Coordinate{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	blinker = []Coordinate{{1, 2}, {2, 2}, {3, 2}}
)
