package rules

/*
NextState applies Conway's Game of Life rules to determine the next state of a cell.

	alive, neighbours < 2      -> dead (underpopulation)
	alive, neighbours 2 or 3   -> alive
	alive, neighbours > 3      -> dead (overpopulation)
	dead,  neighbours == 3     -> alive (reproduction)
	dead,  anything else       -> dead
*/
func NextState(alive bool, neighbours int) bool {
	if alive {
		switch {
		case neighbours < 2:
			return false
		case neighbours <= 3:
			return true
		default:
			return false
		}
	}
	return neighbours == 3
}
