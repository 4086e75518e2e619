package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct{}

// Display writes the world to out, one line per row
func (r *TerminalRenderer) Display(out io.Writer, w *World) error {
	bw := bufio.NewWriter(out)
	for y := range w.height {
		for x := range w.width {
			if w.CellAt(x, y) == Alive {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Display] failed to write grid")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear(out io.Writer) error {
	if _, err := io.WriteString(out, ansiClear); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Clear] failed to clear terminal")
	}
	return nil
}
