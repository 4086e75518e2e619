package model

import (
	"crypto/md5"
	"fmt"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	// ErrInvalidDimensions is returned when a world cannot be sized as requested
	ErrInvalidDimensions = errors.New("invalid world dimensions")
	// ErrOutOfBounds is the panic value for coordinates outside the grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Boundary selects how neighbours beyond the grid edge are treated
type Boundary int

const (
	// BoundaryOpen treats everything outside the grid as dead
	BoundaryOpen Boundary = iota
	// BoundaryTorus wraps both axes
	BoundaryTorus
)

// ParseBoundary maps a config value onto a Boundary
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case utils.BoundaryOpen, "":
		return BoundaryOpen, nil
	case utils.BoundaryTorus:
		return BoundaryTorus, nil
	}
	return BoundaryOpen, errors.Errorf("[ParseBoundary] unknown boundary: %q", s)
}

// World is a fixed-size Game of Life grid backed by a double buffer.
//
// A World is not safe for concurrent use. Callers sharing one across
// goroutines must serialize every call, Advance included.
type World struct {
	width      int
	height     int
	boundary   Boundary
	workers    int
	generation int
	cells      *DoubleBuffer[[]Cell]
}

// NewWorld creates an all-dead world with an open boundary
func NewWorld(width, height int) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewWorld] non-positive size %dx%d", width, height)
	}
	if width > math.MaxInt/height {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewWorld] size %dx%d overflows", width, height)
	}

	size := width * height
	return &World{
		width:   width,
		height:  height,
		workers: 1,
		cells: NewDoubleBuffer(func() []Cell {
			return make([]Cell, size)
		}),
	}, nil
}

// NewWorldFromConfig creates a world sized and tuned by the config
func NewWorldFromConfig(config utils.Config) (*World, error) {
	boundary, err := ParseBoundary(config.Boundary)
	if err != nil {
		return nil, err
	}

	if boundary == BoundaryTorus && (config.Width < utils.MinTorusSide || config.Height < utils.MinTorusSide) {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewWorldFromConfig] torus needs at least %dx%d cells: %dx%d",
			utils.MinTorusSide, utils.MinTorusSide, config.Width, config.Height)
	}

	w, err := NewWorld(config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	w.boundary = boundary

	if config.UseParallel {
		w.workers = config.Workers
		if w.workers <= 0 {
			w.workers = runtime.NumCPU()
		}
	}
	return w, nil
}

// Width returns the width of the world
func (w *World) Width() int {
	return w.width
}

// Height returns the height of the world
func (w *World) Height() int {
	return w.height
}

// Boundary returns the edge policy
func (w *World) Boundary() Boundary {
	return w.boundary
}

// Generation returns the number of completed Advance calls
func (w *World) Generation() int {
	return w.generation
}

// Contains reports whether (x, y) lies inside the grid
func (w *World) Contains(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

func (w *World) index(x, y int) int {
	return y*w.width + x
}

func (w *World) mustContain(op string, x, y int) {
	if !w.Contains(x, y) {
		panic(errors.Wrapf(ErrOutOfBounds, "[World.%s] (%d, %d) outside %dx%d grid", op, x, y, w.width, w.height))
	}
}

// SetCell writes a cell into the current generation
func (w *World) SetCell(x, y int, c Cell) {
	w.mustContain("SetCell", x, y)
	w.cells.Front()[w.index(x, y)] = c
}

// CellAt returns the cell at (x, y) in the current generation
func (w *World) CellAt(x, y int) Cell {
	w.mustContain("CellAt", x, y)
	return w.cells.Front()[w.index(x, y)]
}

// NeighbourCount counts living cells in the Moore neighbourhood of (x, y)
func (w *World) NeighbourCount(x, y int) int {
	w.mustContain("NeighbourCount", x, y)
	return w.neighbours(w.cells.Front(), x, y)
}

func (w *World) neighbours(front []Cell, x, y int) (count int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if w.boundary == BoundaryTorus {
				nx = (nx + w.width) % w.width
				ny = (ny + w.height) % w.height
			} else if nx < 0 || nx >= w.width || ny < 0 || ny >= w.height {
				continue
			}
			if front[w.index(nx, ny)] == Alive {
				count++
			}
		}
	}
	return
}

// advanceRows writes the next state of rows [startRow, endRow) into back
func (w *World) advanceRows(front, back []Cell, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range w.width {
			i := w.index(x, y)
			back[i] = CellOf(rules.NextState(front[i] == Alive, w.neighbours(front, x, y)))
		}
	}
}

// Advance computes the next generation into the back buffer and swaps it in
func (w *World) Advance() {
	front, back := w.cells.Front(), w.cells.Back()

	if w.workers <= 1 || w.height == 1 {
		w.advanceRows(front, back, 0, w.height)
	} else {
		w.advanceParallel(front, back)
	}

	w.cells.Swap()
	w.generation++
}

// advanceParallel splits the rows into contiguous bands, one goroutine each
func (w *World) advanceParallel(front, back []Cell) {
	var (
		eg            errgroup.Group
		numWorkers    = min(w.workers, w.height)
		rowsPerWorker = (w.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, w.height)
		)
		if startRow >= w.height {
			break
		}

		eg.Go(func() error {
			w.advanceRows(front, back, startRow, endRow)
			return nil
		})
	}

	// bands never fail
	_ = eg.Wait()
}

// Each calls fn for every cell of the current generation in row-major order
func (w *World) Each(fn func(x, y int, c Cell)) {
	front := w.cells.Front()
	for y := range w.height {
		for x := range w.width {
			fn(x, y, front[w.index(x, y)])
		}
	}
}

// Population returns the number of living cells
func (w *World) Population() (count int) {
	for _, c := range w.cells.Front() {
		if c == Alive {
			count++
		}
	}
	return
}

// Clear kills every cell of the current generation
func (w *World) Clear() {
	clear(w.cells.Front())
}

// Hash returns an MD5 digest of the current generation
func (w *World) Hash() string {
	var (
		h     = md5.New()
		chunk [256]byte
		n     int
	)
	for _, c := range w.cells.Front() {
		chunk[n] = byte(c)
		n++
		if n == len(chunk) {
			h.Write(chunk[:])
			n = 0
		}
	}
	h.Write(chunk[:n])
	return fmt.Sprintf("%x", h.Sum(nil))
}
