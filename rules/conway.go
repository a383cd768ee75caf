package rules

import "github.com/sheikhrachel/gol-live/model"

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Fewer than 2 or more than 3 living neighbors kill the cell, a dead cell with
exactly 3 comes alive, and anything else keeps its current state.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case neighbors < 2 || neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}

// Step computes the next generation of g. It always reads the whole previous
// generation and never fails.
func Step(g *model.Grid) *model.Grid {
	return g.Next(ApplyConwayRules)
}
