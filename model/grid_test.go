package model

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func mustGrid(t *testing.T, rows [][]int) *Grid {
	t.Helper()
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(30, 30)
	if g.Rows() != 30 || g.Cols() != 30 {
		t.Fatalf("size = %dx%d, want 30x30", g.Rows(), g.Cols())
	}
	for r := range g.Rows() {
		for c := range g.Cols() {
			v, err := g.Get(r, c)
			if err != nil {
				t.Fatalf("Get(%d,%d): %v", r, c, err)
			}
			if v != 0 {
				t.Fatalf("cell (%d,%d) = %d, want 0", r, c, v)
			}
		}
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -4)
	if g.Rows() != 1 || g.Cols() != 1 {
		t.Fatalf("size = %dx%d, want 1x1", g.Rows(), g.Cols())
	}
}

func TestToggleIsCopyOnWrite(t *testing.T) {
	g := NewGrid(3, 4)
	next, err := g.Toggle(1, 2)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if v, _ := next.Get(1, 2); v != 1 {
		t.Fatalf("toggled cell = %d, want 1", v)
	}
	if v, _ := g.Get(1, 2); v != 0 {
		t.Fatalf("original cell changed to %d", v)
	}
	if next.CountLivingCells() != 1 {
		t.Fatalf("living = %d, want 1", next.CountLivingCells())
	}
}

func TestToggleIsSelfInverse(t *testing.T) {
	g := NewRandomGrid(6, 7, 0.5, rand.New(rand.NewPCG(7, 7)))
	for r := range g.Rows() {
		for c := range g.Cols() {
			once, err := g.Toggle(r, c)
			if err != nil {
				t.Fatalf("Toggle(%d,%d): %v", r, c, err)
			}
			twice, err := once.Toggle(r, c)
			if err != nil {
				t.Fatalf("Toggle(%d,%d): %v", r, c, err)
			}
			if once.Equal(g) {
				t.Fatalf("single toggle of (%d,%d) left grid unchanged", r, c)
			}
			if !twice.Equal(g) {
				t.Fatalf("double toggle of (%d,%d) changed grid:\n%s", r, c, twice)
			}
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3)
	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {10, 10}}
	for _, rc := range coords {
		if _, err := g.Get(rc[0], rc[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%d,%d) err = %v, want ErrOutOfBounds", rc[0], rc[1], err)
		}
		next, err := g.Toggle(rc[0], rc[1])
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Toggle(%d,%d) err = %v, want ErrOutOfBounds", rc[0], rc[1], err)
		}
		if next != nil {
			t.Errorf("Toggle(%d,%d) returned a grid with an error", rc[0], rc[1])
		}
	}
	if g.CountLivingCells() != 0 {
		t.Fatal("failed toggles modified the grid")
	}
}

func TestFromRows(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 1, 0},
		{1, 1, 0},
	})
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("size = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	if got, want := g.String(), ".#.\n##.\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	bad := map[string][][]int{
		"empty":  {},
		"ragged": {{0, 1}, {1}},
		"value":  {{0, 2}},
	}
	for name, rows := range bad {
		if _, err := FromRows(rows); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNewRandomGrid(t *testing.T) {
	if g := NewRandomGrid(10, 10, 1, nil); g.CountLivingCells() != 0 {
		t.Fatalf("threshold 1 produced %d living cells", g.CountLivingCells())
	}
	if g := NewRandomGrid(10, 10, -1, nil); g.CountLivingCells() != 100 {
		t.Fatalf("threshold -1 produced %d living cells, want 100", g.CountLivingCells())
	}

	a := NewRandomGrid(30, 30, 0.8, rand.New(rand.NewPCG(42, 1)))
	b := NewRandomGrid(30, 30, 0.8, rand.New(rand.NewPCG(42, 1)))
	if !a.Equal(b) {
		t.Fatal("same seed produced different grids")
	}
	// ~20% of 900 cells
	if n := a.CountLivingCells(); n < 100 || n > 260 {
		t.Fatalf("living = %d, want roughly 180", n)
	}
}

func TestCountNeighbors(t *testing.T) {
	full := mustGrid(t, [][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	tests := []struct {
		row, col int
		want     int
	}{
		{0, 0, 3},
		{0, 2, 3},
		{2, 0, 3},
		{2, 2, 3},
		{0, 1, 5},
		{1, 0, 5},
		{1, 1, 8},
	}
	for _, tt := range tests {
		if got := full.CountNeighbors(tt.row, tt.col); got != tt.want {
			t.Errorf("CountNeighbors(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestNextAppliesRuleToEveryCell(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	next := g.Next(func(neighbors int, alive bool) bool { return neighbors == 1 })
	if got, want := next.String(), "###\n..#\n...\n"; got != want {
		t.Fatalf("Next =\n%s\nwant\n%s", got, want)
	}
	if got, want := g.String(), "##.\n...\n...\n"; got != want {
		t.Fatalf("Next modified its receiver:\n%s", got)
	}
}

func TestHash(t *testing.T) {
	a := mustGrid(t, [][]int{{1, 0}, {0, 1}})
	b := mustGrid(t, [][]int{{1, 0}, {0, 1}})
	c := mustGrid(t, [][]int{{0, 1}, {1, 0}})
	if a.Hash() != b.Hash() {
		t.Fatal("equal grids hashed differently")
	}
	if a.Hash() == c.Hash() {
		t.Fatal("different grids hashed the same")
	}
}

func TestTextRenderer(t *testing.T) {
	g := mustGrid(t, [][]int{{1, 0}, {0, 1}})
	var sb strings.Builder
	if err := (&TextRenderer{}).Render(&sb, g); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := gridPosBlock + gridPosEmpty + "\n" + gridPosEmpty + gridPosBlock + "\n"
	if sb.String() != want {
		t.Fatalf("Render = %q, want %q", sb.String(), want)
	}

	sb.Reset()
	if err := (&TextRenderer{ClearScreen: true}).Render(&sb, g); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(sb.String(), clearScreenSeq) {
		t.Fatalf("Render with ClearScreen = %q", sb.String())
	}
}
