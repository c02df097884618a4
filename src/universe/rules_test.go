package universe

import "testing"

func TestNeighboursWrapAround(t *testing.T) {
	a := createArea(3, 3)
	got := map[Coordinate]bool{}
	for _, c := range Neighbours(a, 0, 0) {
		got[c] = true
	}
	want := []Coordinate{{2, 2}, {2, 0}, {2, 1}, {0, 2}, {1, 2}, {0, 1}, {1, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d distinct neighbours %v, want %d", len(got), got, len(want))
	}
	for _, c := range want {
		if !got[c] {
			t.Errorf("neighbour %v missing from %v", c, got)
		}
	}
}

func TestNeighboursCorners(t *testing.T) {
	a := createArea(4, 6)
	for _, c := range []Coordinate{{0, 0}, {0, 5}, {3, 0}, {3, 5}} {
		for _, n := range Neighbours(a, c.Row, c.Col) {
			if !a.Contains(n.Row, n.Col) {
				t.Errorf("neighbour %v of %v is outside the area", n, c)
			}
		}
	}
	n := Neighbours(a, 3, 5)
	if n[1] != (Coordinate{3, 0}) || n[6] != (Coordinate{0, 5}) || n[7] != (Coordinate{0, 0}) {
		t.Errorf("unexpected neighbours of the bottom right corner: %v", n)
	}
}

func TestIsAliveBirthAndSurvival(t *testing.T) {
	around := []Coordinate{{1, 1}, {1, 3}, {3, 2}}
	tests := []struct {
		name   string
		alive  []Coordinate
		expect bool
	}{
		{"dead with 3 is born", around, true},
		{"alive with 3 survives", append([]Coordinate{{2, 2}}, around...), true},
		{"alive with 2 survives", []Coordinate{{2, 2}, {1, 1}, {3, 3}}, true},
		{"dead with 2 stays dead", []Coordinate{{1, 1}, {3, 3}}, false},
		{"alive with 1 dies", []Coordinate{{2, 2}, {1, 1}}, false},
		{"alive with 4 dies", []Coordinate{{2, 2}, {1, 1}, {1, 2}, {1, 3}, {3, 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := areaOf(5, 5, tt.alive...)
			if got := IsAlive(a, 2, 2); got != tt.expect {
				t.Fatalf("IsAlive = %v, expected %v", got, tt.expect)
			}
		})
	}
}

func TestIsAliveCountsAcrossEdges(t *testing.T) {
	//(0,0) sees (4,4), (4,0) and (0,4) only through the wrap
	a := areaOf(5, 5, Coordinate{4, 4}, Coordinate{4, 0}, Coordinate{0, 4})
	if liveNeighbours(a, 0, 0) != 3 {
		t.Fatalf("liveNeighbours = %d, expected 3", liveNeighbours(a, 0, 0))
	}
	if !IsAlive(a, 0, 0) {
		t.Fatal("corner cell with 3 wrapped neighbours should be born")
	}
}

func TestDeadAreaStaysDead(t *testing.T) {
	a := createArea(6, 7)
	for i := 0; i < 3; i++ {
		a = NextGeneration(a)
		if a.LiveCells() != 0 {
			t.Fatalf("generation %d has %d live cells", i+1, a.LiveCells())
		}
	}
}

func TestIsolatedCellDies(t *testing.T) {
	a := areaOf(3, 3, Coordinate{1, 1})
	if n := liveNeighbours(a, 1, 1); n != 0 {
		t.Fatalf("isolated cell has %d neighbours", n)
	}
	if next := NextGeneration(a); next.LiveCells() != 0 {
		t.Fatalf("expected all dead, got %d live cells", next.LiveCells())
	}
}

func TestBlockIsStillLife(t *testing.T) {
	a := areaOf(6, 6, block...)
	for _, c := range block {
		if n := liveNeighbours(a, c.Row, c.Col); n != 3 {
			t.Errorf("block cell %v has %d neighbours", c, n)
		}
	}
	if !NextGeneration(a).Equal(a) {
		t.Fatal("block changed after one generation")
	}
}

func TestBlinkerOscillation(t *testing.T) {
	a := areaOf(5, 5, blinker...)
	horizontal := areaOf(5, 5, Coordinate{2, 1}, Coordinate{2, 2}, Coordinate{2, 3})

	next := NextGeneration(a)
	if !next.Equal(horizontal) {
		t.Fatalf("after first step got %v", next.Entities)
	}
	if !NextGeneration(next).Equal(a) {
		t.Fatal("blinker did not return to the vertical phase")
	}
}

func TestGliderWrapsAroundTheTorus(t *testing.T) {
	glider := []Coordinate{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	start := areaOf(8, 8, glider...)
	a := start
	//one diagonal cell every 4 generations, 8 cells bring it home
	for i := 0; i < 32; i++ {
		a = NextGeneration(a)
		if a.LiveCells() != 5 {
			t.Fatalf("generation %d has %d live cells", i+1, a.LiveCells())
		}
	}
	if !a.Equal(start) {
		t.Fatal("glider did not come back to its start position")
	}
}

func TestNextGenerationDoesNotTouchInput(t *testing.T) {
	a := areaOf(5, 5, blinker...)
	before := a.Clone()
	next := NextGeneration(a)
	next.Entities[0][0] = true
	if !a.Equal(before) {
		t.Fatal("input area was modified")
	}
}
