package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// clearScreenSeq moves the cursor home and clears the terminal
	clearScreenSeq = "\033[H\033[2J"
)

// TextRenderer writes grids as block characters, one line per row
type TextRenderer struct {
	// ClearScreen prefixes each frame with an ANSI clear sequence
	ClearScreen bool
}

// Render writes the grid to w
func (r *TextRenderer) Render(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	if r.ClearScreen {
		bw.WriteString(clearScreenSeq)
	}
	for y := range g.Rows() {
		for x := range g.Cols() {
			if g.Alive(y, x) {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[Render] failed to write frame")
	}
	return nil
}
