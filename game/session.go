package game

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/ui"
	"github.com/sheikhrachel/go-life/utils"
)

// Surface is anything a session can draw a world onto
type Surface interface {
	Clear()
	DrawCell(x, y int)
	DrawStatus(status string)
	Show()
}

// Status is a point-in-time summary of a session
type Status struct {
	Generation int
	Population int
	Running    bool
}

// String formats the status line shown under the grid
func (s Status) String() string {
	state := "paused"
	if s.Running {
		state = "running"
	}
	return fmt.Sprintf("Gen: %d | Living: %d | %s | space: pause  n: step  c: clear  r: reseed  q: quit",
		s.Generation, s.Population, state)
}

// Session drives a world on a timer and paints cells from pointer input.
// Every engine call goes through mu, so the ticker goroutine and the input
// goroutine never touch the world at the same time.
type Session struct {
	mu          sync.Mutex
	world       *model.World
	surface     Surface
	config      utils.Config
	isMouseDown bool
	seed        int64

	timerMu sync.Mutex
	running atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSession wires a world to a surface and draws the first frame
func NewSession(world *model.World, surface Surface, config utils.Config) *Session {
	s := &Session{
		world:   world,
		surface: surface,
		config:  config,
		seed:    config.Seed,
	}
	s.Redraw()
	return s
}

// Resume starts advancing the world every FrameRate. No-op if already running.
func (s *Session) Resume() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.stop != nil {
		return
	}

	stop, done := make(chan struct{}), make(chan struct{})
	s.stop, s.done = stop, done
	s.running.Store(true)
	ticker := time.NewTicker(s.config.FrameRate)

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.Tick()
			}
		}
	}()
}

// Pause stops the ticker and waits for an in-flight tick to finish
func (s *Session) Pause() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.stop == nil {
		return
	}

	s.running.Store(false)
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

// Running reports whether the ticker is active
func (s *Session) Running() bool {
	return s.running.Load()
}

// Close stops the ticker
func (s *Session) Close() {
	s.Pause()
}

// Tick advances the world one generation and redraws
func (s *Session) Tick() {
	s.mu.Lock()
	s.world.Advance()
	s.mu.Unlock()
	s.Redraw()
}

// Step advances a single generation while paused
func (s *Session) Step() {
	if s.Running() {
		return
	}
	s.Tick()
}

// PutCell brings the cell at (x, y) to life. Points outside the grid are ignored.
func (s *Session) PutCell(x, y int) {
	s.mu.Lock()
	if !s.world.Contains(x, y) {
		s.mu.Unlock()
		return
	}
	s.world.SetCell(x, y, model.Alive)
	s.mu.Unlock()
	s.Redraw()
}

// ClearWorld kills every cell
func (s *Session) ClearWorld() {
	s.mu.Lock()
	s.world.Clear()
	s.mu.Unlock()
	s.Redraw()
}

// Reseed fills the world with fresh random life from the next seed
func (s *Session) Reseed() {
	s.mu.Lock()
	s.seed++
	s.world.Randomize(model.NewRand(s.seed), s.config.RandomDensity)
	s.mu.Unlock()
	s.Redraw()
}

// Snapshot returns the current status
func (s *Session) Snapshot() Status {
	running := s.Running()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Generation: s.world.Generation(),
		Population: s.world.Population(),
		Running:    running,
	}
}

// Redraw paints every living cell and the status line
func (s *Session) Redraw() {
	status := s.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.Clear()
	s.world.Each(func(x, y int, c model.Cell) {
		if c == model.Alive {
			s.surface.DrawCell(x, y)
		}
	})
	s.surface.DrawStatus(status.String())
	s.surface.Show()
}

// OnMouseDown starts painting at p
func (s *Session) OnMouseDown(p ui.Point) {
	s.mu.Lock()
	s.isMouseDown = true
	s.mu.Unlock()
	s.PutCell(p.X, p.Y)
}

// OnMouseMove paints at p while the button is held
func (s *Session) OnMouseMove(p ui.Point) {
	s.mu.Lock()
	down := s.isMouseDown
	s.mu.Unlock()
	if !down {
		return
	}
	s.PutCell(p.X, p.Y)
}

// OnMouseUp stops painting
func (s *Session) OnMouseUp() {
	s.mu.Lock()
	s.isMouseDown = false
	s.mu.Unlock()
}

// OnKey handles the session's keyboard shortcuts
func (s *Session) OnKey(r rune) {
	switch r {
	case ' ':
		if s.Running() {
			s.Pause()
		} else {
			s.Resume()
		}
		s.Redraw()
	case 'n':
		s.Step()
	case 'c':
		s.ClearWorld()
	case 'r':
		s.Reseed()
	}
}
