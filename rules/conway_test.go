package rules

import "testing"

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := n == 2 || n == 3
		if got := NextState(true, n); got != wantAlive {
			t.Fatalf("alive cell with %d neighbours: got %v, want %v", n, got, wantAlive)
		}

		wantBorn := n == 3
		if got := NextState(false, n); got != wantBorn {
			t.Fatalf("dead cell with %d neighbours: got %v, want %v", n, got, wantBorn)
		}
	}
}
