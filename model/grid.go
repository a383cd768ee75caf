package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrOutOfBounds is returned when a cell coordinate falls outside the grid
var ErrOutOfBounds = errors.New("cell out of bounds")

// MooreOffsets are the (row, col) offsets of the 8 cells around a cell
var MooreOffsets = [8][2]int{
	{0, 1}, {0, -1}, {1, -1}, {-1, 1},
	{1, 1}, {-1, -1}, {1, 0}, {-1, 0},
}

// Grid is one generation of the board. A Grid is never modified after it is
// built: Toggle and Next return new grids.
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGrid creates an empty grid with the specified dimensions
func NewGrid(rows, cols int) *Grid {
	rows, cols = max(rows, 1), max(cols, 1)
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// NewRandomGrid creates a grid where each cell is alive when a draw from rng
// exceeds threshold. A nil rng uses a time-seeded source.
func NewRandomGrid(rows, cols int, threshold float64, rng *rand.Rand) *Grid {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	g := NewGrid(rows, cols)
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = rng.Float64() > threshold
		}
	}
	return g
}

// FromRows builds a grid from rows of 0/1 values
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("[FromRows] grid must have at least one row and one column")
	}
	g := NewGrid(len(rows), len(rows[0]))
	for y, row := range rows {
		if len(row) != g.cols {
			return nil, errors.Errorf("[FromRows] row %d has %d cells, want %d", y, len(row), g.cols)
		}
		for x, v := range row {
			switch v {
			case 0:
			case 1:
				g.cells[y][x] = true
			default:
				return nil, errors.Errorf("[FromRows] cell (%d,%d) has value %d, want 0 or 1", y, x, v)
			}
		}
	}
	return g, nil
}

// Rows returns the height of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the width of the grid
func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns 1 if the cell is alive and 0 if it is dead
func (g *Grid) Get(row, col int) (int, error) {
	if !g.inBounds(row, col) {
		return 0, errors.Wrapf(ErrOutOfBounds, "[Get] row=%d col=%d grid=%dx%d", row, col, g.rows, g.cols)
	}
	if g.cells[row][col] {
		return 1, nil
	}
	return 0, nil
}

// Alive reports whether the cell is alive; coordinates outside the grid are dead
func (g *Grid) Alive(row, col int) bool {
	return g.inBounds(row, col) && g.cells[row][col]
}

// Toggle returns a copy of the grid with the cell at (row, col) flipped
func (g *Grid) Toggle(row, col int) (*Grid, error) {
	if !g.inBounds(row, col) {
		return nil, errors.Wrapf(ErrOutOfBounds, "[Toggle] row=%d col=%d grid=%dx%d", row, col, g.rows, g.cols)
	}
	next := g.clone()
	next.cells[row][col] = !next.cells[row][col]
	return next, nil
}

func (g *Grid) clone() *Grid {
	next := NewGrid(g.rows, g.cols)
	for y := range g.rows {
		copy(next.cells[y], g.cells[y])
	}
	return next
}

// CountNeighbors counts living cells in the Moore neighborhood of (row, col).
// Offsets that land outside the grid count as dead.
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0
	for _, off := range MooreOffsets {
		if g.Alive(row+off[0], col+off[1]) {
			count++
		}
	}
	return count
}

// Next builds the following generation by applying rule to every cell.
// Rows are split across workers; each worker reads only from g.
func (g *Grid) Next(rule func(neighbors int, alive bool) bool) *Grid {
	var (
		next          = NewGrid(g.rows, g.cols)
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), g.rows)
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := range g.cols {
					next.cells[y][x] = rule(g.CountNeighbors(y, x), g.cells[y][x])
				}
			}
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()

	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Hash returns an MD5 hash of the grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid with '#' for living cells and '.' for dead ones
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
