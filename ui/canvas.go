package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// cellWidth is how many terminal columns one grid cell occupies
const cellWidth = 2

// ErrQuit is returned by Run when the user asks to leave
var ErrQuit = errors.New("quit requested")

// Point is a grid coordinate
type Point struct {
	X, Y int
}

// Responder receives pointer events already translated to grid coordinates
type Responder interface {
	OnMouseDown(p Point)
	OnMouseMove(p Point)
	OnMouseUp()
}

// KeyResponder is implemented by responders that also want key presses
type KeyResponder interface {
	OnKey(r rune)
}

// Canvas draws a grid on a tcell screen and turns input into Responder calls
type Canvas struct {
	screen     tcell.Screen
	cols, rows int
	responder  Responder
	buttonDown bool

	cellStyle   tcell.Style
	statusStyle tcell.Style
}

// NewTerminal opens the real terminal with mouse reporting enabled
func NewTerminal() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[NewTerminal] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewTerminal] failed to initialise screen")
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// NewCanvas creates a canvas for a cols x rows grid
func NewCanvas(screen tcell.Screen, cols, rows int) *Canvas {
	return &Canvas{
		screen:      screen,
		cols:        cols,
		rows:        rows,
		cellStyle:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
		statusStyle: tcell.StyleDefault.Reverse(true),
	}
}

// InstallResponder sets the receiver of translated input events
func (c *Canvas) InstallResponder(r Responder) {
	c.responder = r
}

// Clear blanks the screen
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// DrawCell paints the grid cell at (x, y)
func (c *Canvas) DrawCell(x, y int) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	for i := range cellWidth {
		c.screen.SetContent(x*cellWidth+i, y, '█', nil, c.cellStyle)
	}
}

// DrawStatus writes a one-line status below the grid
func (c *Canvas) DrawStatus(status string) {
	col := 0
	for _, r := range status {
		c.screen.SetContent(col, c.rows, r, nil, c.statusStyle)
		col++
	}
}

// Show flushes pending drawing to the terminal
func (c *Canvas) Show() {
	c.screen.Show()
}

// HandleEvent dispatches one terminal event and reports whether to quit
func (c *Canvas) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
			if kr, ok := c.responder.(KeyResponder); ok {
				kr.OnKey(ev.Rune())
			}
		}
	case *tcell.EventMouse:
		if c.responder == nil {
			return false
		}
		col, row := ev.Position()
		p := Point{X: col / cellWidth, Y: row}
		pressed := ev.Buttons()&tcell.Button1 != 0

		switch {
		case pressed && !c.buttonDown:
			c.buttonDown = true
			c.responder.OnMouseDown(p)
		case !pressed && c.buttonDown:
			c.buttonDown = false
			c.responder.OnMouseUp()
		default:
			c.responder.OnMouseMove(p)
		}
	case *tcell.EventResize:
		c.screen.Sync()
	}
	return false
}

// Run polls terminal events until the user quits or ctx is done
func (c *Canvas) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.HandleEvent(ev) {
			return ErrQuit
		}
	}
}
