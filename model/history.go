package model

// historySize is how many recent generations are remembered for cycle detection
const historySize = 5

// History remembers the hashes of recent generations
type History struct {
	hashes []string
}

// Observe reports whether hash matches one of the last three recorded
// generations (a still life or a period 2 or 3 oscillator), then records it
func (h *History) Observe(hash string) bool {
	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = nil
}
