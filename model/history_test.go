package model

import "testing"

func TestHistoryObserve(t *testing.T) {
	tests := []struct {
		name     string
		sequence []string
		want     bool
	}{
		{"fresh", []string{"a"}, false},
		{"still life", []string{"a", "a"}, true},
		{"period two", []string{"a", "b", "a"}, true},
		{"period three", []string{"a", "b", "c", "a"}, true},
		{"period four", []string{"a", "b", "c", "d", "a"}, false},
		{"evicted", []string{"a", "b", "c", "d", "e", "f", "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h History
			var got bool
			for _, hash := range tt.sequence {
				got = h.Observe(hash)
			}
			if got != tt.want {
				t.Fatalf("Observe(%v) = %v, want %v", tt.sequence, got, tt.want)
			}
		})
	}
}

func TestHistoryDetectsBlinker(t *testing.T) {
	w := newTestWorld(t, 5, 5)
	w.AddBlinker(1, 2)

	var h History
	stagnant := false
	for range 3 {
		stagnant = h.Observe(w.Hash())
		w.Advance()
	}
	if !stagnant {
		t.Fatal("blinker should be reported as stagnant after a full period")
	}

	h.Reset()
	if h.Observe(w.Hash()) {
		t.Fatal("reset history must not report stagnation")
	}
}
