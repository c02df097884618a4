package universe

import (
	"fmt"
	"sync"
)

type Cell bool

//Area is one generation of the universe, Entities is indexed as [row][col]
//an Area that has been published to observers is never modified again
type Area struct {
	Rows     int
	Cols     int
	Entities [][]Cell
}

//Coordinate addresses a single cell
type Coordinate struct {
	Row int
	Col int
}

//Contains reports whether the coordinate lies inside the area
func (a Area) Contains(row int, col int) bool {
	return row >= 0 && col >= 0 && row < a.Rows && col < a.Cols
}

//Equal compares two areas cell by cell
func (a Area) Equal(b Area) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for r := range a.Entities {
		for c := range a.Entities[r] {
			if a.Entities[r][c] != b.Entities[r][c] {
				return false
			}
		}
	}
	return true
}

//LiveCells calculates the count of live cells
func (a Area) LiveCells() int {
	liveCells := 0
	for r := range a.Entities {
		for _, e := range a.Entities[r] {
			if e {
				liveCells++
			}
		}
	}
	return liveCells
}

//Clone returns a deep copy backed by a new buffer
func (a Area) Clone() Area {
	n := createArea(a.Rows, a.Cols)
	for r := range a.Entities {
		copy(n.Entities[r], a.Entities[r])
	}
	return n
}

//createArea allocates an all-dead area on a single backing buffer
func createArea(rows int, cols int) Area {
	area := Area{Rows: rows, Cols: cols, Entities: make([][]Cell, rows)}
	b := make([]Cell, rows*cols)
	for i := range area.Entities {
		start := cols * i
		area.Entities[i] = b[start : start+cols : start+cols]
	}
	return area
}

func validateSize(rows int, cols int) error {
	if rows <= 1 {
		return fmt.Errorf("%w: rows must be bigger than 1, got %d", ErrInvalidSize, rows)
	}
	if cols <= 1 {
		return fmt.Errorf("%w: cols must be bigger than 1, got %d", ErrInvalidSize, cols)
	}
	return nil
}

//BoardStore owns the current generation and broadcasts every change of it
//writes are serialized by writeMu for the whole read-modify-publish sequence,
//mu only guards the area field so observers may take a Snapshot from a callback
type BoardStore struct {
	writeMu sync.Mutex
	mu      sync.Mutex
	area    Area
	stream  *Stream[Area]
}

//NewBoardStore creates a store with an all-dead area of the given size
func NewBoardStore(rows int, cols int) (*BoardStore, error) {
	if err := validateSize(rows, cols); err != nil {
		return nil, err
	}
	a := createArea(rows, cols)
	return &BoardStore{area: a, stream: NewStreamWithValue(a)}, nil
}

//Snapshot returns the current area, the caller must not modify it
func (s *BoardStore) Snapshot() Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.area
}

//Subscribe registers an observer of the area, the current one is replayed immediately
func (s *BoardStore) Subscribe(fn func(Area)) (unsubscribe func()) {
	return s.stream.Subscribe(fn)
}

//Reset discards the content and establishes an all-dead area of the new size
func (s *BoardStore) Reset(rows int, cols int) error {
	if err := validateSize(rows, cols); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.store(createArea(rows, cols))
	return nil
}

//Clear kills all cells keeping the dimensions
func (s *BoardStore) Clear() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	a := s.Snapshot()
	s.store(createArea(a.Rows, a.Cols))
}

//Toggle inverses the cell state at row, col
func (s *BoardStore) Toggle(row int, col int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	cur := s.Snapshot()
	if !cur.Contains(row, col) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrInvalidCoordinate, row, col, cur.Rows, cur.Cols)
	}
	a := cur.Clone()
	a.Entities[row][col] = !a.Entities[row][col]
	s.store(a)
	return nil
}

//Settle makes all listed cells alive, nothing changes if any of them is out of range
func (s *BoardStore) Settle(cells []Coordinate) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	cur := s.Snapshot()
	for _, c := range cells {
		if !cur.Contains(c.Row, c.Col) {
			return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrInvalidCoordinate, c.Row, c.Col, cur.Rows, cur.Cols)
		}
	}
	a := cur.Clone()
	for _, c := range cells {
		a.Entities[c.Row][c.Col] = true
	}
	s.store(a)
	return nil
}

//Replace swaps the whole area at once, used by the scheduler to publish a generation
func (s *BoardStore) Replace(a Area) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.store(a)
}

//store must be called with writeMu held
func (s *BoardStore) store(a Area) {
	s.mu.Lock()
	s.area = a
	s.mu.Unlock()
	s.stream.Publish(a)
}
