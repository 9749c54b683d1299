package universe

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	//ErrInvalidDimensions is returned when a grid is created with a non-positive size
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	//ErrOutOfBounds is returned on cell access outside the grid
	ErrOutOfBounds = errors.New("cell out of bounds")
)

type Cell bool

//Area is a rectangular row-major block of cells
type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
}

/*
	Grid is the bounded Life field
	Two equally shaped areas are owned by the grid: the live one and the scratch one.
	Advance computes every next state into the scratch area reading only the live area,
	then the two are swapped, so a caller never sees a half updated generation.
	Cells outside the grid are permanently dead, there is no wraparound.
*/
type Grid struct {
	area    Area
	tmpBuff Area
}

//NewGrid creates the grid with all cells dead
func NewGrid(height int, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %v x %v", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		area:    createArea(width, height),
		tmpBuff: createArea(width, height),
	}, nil
}

//Height returns the number of rows
func (g *Grid) Height() int {
	return g.area.Height
}

//Width returns the number of columns
func (g *Grid) Width() int {
	return g.area.Width
}

//Contains reports whether row, col is inside the grid
func (g *Grid) Contains(row int, col int) bool {
	return row >= 0 && col >= 0 && row < g.area.Height && col < g.area.Width
}

func (g *Grid) checkBounds(row int, col int) error {
	if !g.Contains(row, col) {
		return fmt.Errorf("%w: row %v, col %v (grid %v x %v)", ErrOutOfBounds, row, col, g.area.Width, g.area.Height)
	}
	return nil
}

//Get returns the state of the cell at row, col
func (g *Grid) Get(row int, col int) (bool, error) {
	if err := g.checkBounds(row, col); err != nil {
		return false, err
	}
	return bool(g.area.Entities[row][col]), nil
}

//Set sets the state of the cell at row, col
func (g *Grid) Set(row int, col int, alive bool) error {
	if err := g.checkBounds(row, col); err != nil {
		return err
	}
	g.area.Entities[row][col] = Cell(alive)
	return nil
}

//Toggle inverses the cell state at row, col
func (g *Grid) Toggle(row int, col int) error {
	if err := g.checkBounds(row, col); err != nil {
		return err
	}
	g.area.Entities[row][col] = !g.area.Entities[row][col]
	return nil
}

//LiveNeighbours counts the alive cells among the 8 surrounding ones
func (g *Grid) LiveNeighbours(row int, col int) (int, error) {
	if err := g.checkBounds(row, col); err != nil {
		return 0, err
	}
	return g.liveNeighbours(row, col), nil
}

func (g *Grid) liveNeighbours(row int, col int) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nr := row + i
			nc := col + j
			//skip coordinates outside the area
			if nr < 0 || nc < 0 || nr >= g.area.Height || nc >= g.area.Width {
				continue
			}
			if g.area.Entities[nr][nc] {
				n++
			}
		}
	}
	return n
}

//cellNextState applies B3/S23 to the cell at row, col
func (g *Grid) cellNextState(row int, col int) bool {
	n := g.liveNeighbours(row, col)
	if g.area.Entities[row][col] {
		return n == 2 || n == 3
	}
	return n == 3
}

//Advance computes the next generation
//returns the count of live cells in the new generation and whether any cell changed
func (g *Grid) Advance() (liveCells int, changed bool) {
	for y := range g.area.Entities {
		for x := range g.area.Entities[y] {
			nextState := g.cellNextState(y, x)
			if nextState {
				liveCells++
			}
			changed = changed || nextState != bool(g.area.Entities[y][x])
			g.tmpBuff.Entities[y][x] = Cell(nextState)
		}
	}
	g.area, g.tmpBuff = g.tmpBuff, g.area
	return
}

//Clear kills all cells
func (g *Grid) Clear() {
	for y := range g.area.Entities {
		for x := range g.area.Entities[y] {
			g.area.Entities[y][x] = false
		}
	}
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	liveCells := 0
	g.Walk(func(_ int, _ int, alive bool) {
		if alive {
			liveCells++
		}
	})
	return liveCells
}

//Walk walks the entire grid row by row and calls the cb function for each cell
func (g *Grid) Walk(cb func(row int, col int, alive bool)) {
	for y := range g.area.Entities {
		for x := range g.area.Entities[y] {
			cb(y, x, bool(g.area.Entities[y][x]))
		}
	}
}

//Row returns a copy of the row states, nil when row is outside the grid
func (g *Grid) Row(row int) []bool {
	if row < 0 || row >= g.area.Height {
		return nil
	}
	r := make([]bool, g.area.Width)
	for x, e := range g.area.Entities[row] {
		r[x] = bool(e)
	}
	return r
}

//Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{
		area:    createArea(g.area.Width, g.area.Height),
		tmpBuff: createArea(g.area.Width, g.area.Height),
	}
	for y := range g.area.Entities {
		copy(c.area.Entities[y], g.area.Entities[y])
	}
	return c
}

//CopyFrom replaces the cells with the cells of src, both grids must have the same shape
func (g *Grid) CopyFrom(src *Grid) error {
	if src.area.Width != g.area.Width || src.area.Height != g.area.Height {
		return fmt.Errorf("%w: copy %v x %v into %v x %v", ErrInvalidDimensions,
			src.area.Width, src.area.Height, g.area.Width, g.area.Height)
	}
	for y := range g.area.Entities {
		copy(g.area.Entities[y], src.area.Entities[y])
	}
	return nil
}

//Equal reports whether both grids have the same shape and cells
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.area.Width != o.area.Width || g.area.Height != o.area.Height {
		return false
	}
	for y := range g.area.Entities {
		for x := range g.area.Entities[y] {
			if g.area.Entities[y][x] != o.area.Entities[y][x] {
				return false
			}
		}
	}
	return true
}

//Randomize kills all cells then revives width*height randomly chosen ones (duplicates allowed)
func (g *Grid) Randomize(rnd *rand.Rand) {
	g.Clear()
	for i := 0; i < g.area.Width*g.area.Height; i++ {
		g.area.Entities[rnd.Intn(g.area.Height)][rnd.Intn(g.area.Width)] = true
	}
}

//createArea allocates the area backed by a single slice
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
