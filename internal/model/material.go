package model

// Material sums the value of the pieces each side has captured and returns the
// difference from the first side's point of view. Captured lists are keyed by
// the captured piece's color, so the first side's gains are the second side's
// losses.
func Material(r Rules, s GameState, values map[PieceType]float64) float64 {
	sides := r.Sides()
	var gained, lost float64
	for _, pc := range s.Captured[sides[1]] {
		gained += values[pc.Type]
	}
	for _, pc := range s.Captured[sides[0]] {
		lost += values[pc.Type]
	}
	return gained - lost
}
