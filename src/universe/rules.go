package universe

//neighbourOffsets lists the 8 surrounding positions as {row, col} deltas
var neighbourOffsets = [8][2]int{
	{0, -1}, {0, 1},
	{-1, -1}, {-1, 0}, {-1, 1},
	{1, -1}, {1, 0}, {1, 1},
}

//wrap maps an index that is at most one step outside [0, n) back into it
//the grid is a torus: -1 is the last index and n is the first one
func wrap(i int, n int) int {
	if i < 0 {
		return n - 1
	}
	if i >= n {
		return 0
	}
	return i
}

//Neighbours returns the 8 toroidal neighbours of the cell at row, col
func Neighbours(a Area, row int, col int) [8]Coordinate {
	var n [8]Coordinate
	for i, d := range neighbourOffsets {
		n[i] = Coordinate{Row: wrap(row+d[0], a.Rows), Col: wrap(col+d[1], a.Cols)}
	}
	return n
}

//liveNeighbours counts alive cells around row, col
func liveNeighbours(a Area, row int, col int) int {
	count := 0
	for _, d := range neighbourOffsets {
		if a.Entities[wrap(row+d[0], a.Rows)][wrap(col+d[1], a.Cols)] {
			count++
		}
	}
	return count
}

//IsAlive calculates the state of the cell in the next generation
//a cell with 3 live neighbours is born or survives, with 2 it keeps its state, otherwise it dies
func IsAlive(a Area, row int, col int) bool {
	switch liveNeighbours(a, row, col) {
	case 3:
		return true
	case 2:
		return bool(a.Entities[row][col])
	default:
		return false
	}
}

//NextGeneration builds a new area by applying IsAlive to every cell of a
//the result never shares memory with a
func NextGeneration(a Area) Area {
	next := createArea(a.Rows, a.Cols)
	for r := range a.Entities {
		for c := range a.Entities[r] {
			next.Entities[r][c] = Cell(IsAlive(a, r, c))
		}
	}
	return next
}
