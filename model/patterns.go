package model

import "math/rand/v2"

// NewRand returns a deterministic PCG source for the given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Randomize replaces the current generation with living cells at the given density
func (w *World) Randomize(rng *rand.Rand, density float64) {
	front := w.cells.Front()
	for i := range front {
		front[i] = CellOf(rng.Float64() < density)
	}
}

// stamp writes a pattern with its top-left corner at (startX, startY),
// dropping any part that falls outside the grid
func (w *World) stamp(startX, startY int, pattern [][]bool) {
	for y, row := range pattern {
		for x, alive := range row {
			if w.Contains(startX+x, startY+y) {
				w.SetCell(startX+x, startY+y, CellOf(alive))
			}
		}
	}
}

// AddGlider adds a glider pattern at the specified position
func (w *World) AddGlider(startX, startY int) {
	w.stamp(startX, startY, [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	})
}

// AddBlinker adds a horizontal blinker oscillator
func (w *World) AddBlinker(startX, startY int) {
	w.stamp(startX, startY, [][]bool{{true, true, true}})
}

// Seed fills the world with random life and stamps a few known patterns on top
func (w *World) Seed(rng *rand.Rand, density float64) {
	w.Randomize(rng, density)

	if w.width >= 10 && w.height >= 10 {
		w.AddGlider(5, 5)
		if w.width >= 20 && w.height >= 15 {
			w.AddGlider(w.width-8, 5)
		}

		w.AddBlinker(w.width/4, w.height/4)
		if w.width >= 30 {
			w.AddBlinker(3*w.width/4, 3*w.height/4)
		}
	}
}

// InjectRandomLife brings count random cells to life to break stagnation
func (w *World) InjectRandomLife(rng *rand.Rand, count int) {
	for range count {
		w.SetCell(rng.IntN(w.width), rng.IntN(w.height), Alive)
	}
}
