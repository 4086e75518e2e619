package model

// DoubleBuffer holds two interchangeable buffers of the same shape.
//
// The back buffer is written while the front buffer is still readable, then
// Swap publishes the back buffer without copying or allocating.
type DoubleBuffer[T any] struct {
	bufs  [2]T
	front int
}

// NewDoubleBuffer builds both buffers by calling factory twice, so they never alias
func NewDoubleBuffer[T any](factory func() T) *DoubleBuffer[T] {
	return &DoubleBuffer[T]{bufs: [2]T{factory(), factory()}}
}

// Swap exchanges the front and back roles
func (b *DoubleBuffer[T]) Swap() {
	b.front ^= 1
}

// Front returns the current buffer. Slice buffers returned here must not be
// kept across a Swap.
func (b *DoubleBuffer[T]) Front() T {
	return b.bufs[b.front]
}

// Back returns the buffer under construction
func (b *DoubleBuffer[T]) Back() T {
	return b.bufs[b.front^1]
}
