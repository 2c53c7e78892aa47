package model

// CastleRookMove is the rook relocation that accompanies a castling king move.
type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Move struct {
	From    Position        `json:"from"`
	To      Position        `json:"to"`
	Capture bool            `json:"isCapture"`
	Castle  *CastleRookMove `json:"castle,omitempty"`
}

// Destinations returns the target squares of moves in order.
func Destinations(moves []Move) []Position {
	out := make([]Position, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To)
	}
	return out
}

// FindMove returns the move in moves landing on to.
func FindMove(moves []Move, to Position) (Move, bool) {
	for _, m := range moves {
		if m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

// Contains reports whether any move in moves lands on to.
func Contains(moves []Move, to Position) bool {
	_, ok := FindMove(moves, to)
	return ok
}

var (
	Orthogonal = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	Diagonal   = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	AllEight   = append(append([]Position{}, Orthogonal...), Diagonal...)
)

// Slide walks each direction from from one square at a time. Empty squares are
// added and the walk continues; an enemy square is added as a capture and ends
// the walk; a friendly square ends the walk without being added.
func Slide(b BoardReader, from Position, color Color, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := from.Add(dir)
		for b.InBounds(target) {
			occupant := b.At(target)
			if occupant == nil {
				moves = append(moves, Move{From: from, To: target})
			} else {
				if occupant.Color != color {
					moves = append(moves, Move{From: from, To: target, Capture: true})
				}
				break
			}
			target = target.Add(dir)
		}
	}
	return moves
}

// Step tries each offset once. Squares off the board or holding a friendly
// piece are skipped.
func Step(b BoardReader, from Position, color Color, offsets []Position) []Move {
	var moves []Move
	for _, off := range offsets {
		if m, ok := StepTo(b, from, color, from.Add(off)); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// StepTo builds the single-step move from from to target if target is on the
// board and not held by a friendly piece.
func StepTo(b BoardReader, from Position, color Color, target Position) (Move, bool) {
	if !b.InBounds(target) {
		return Move{}, false
	}
	occupant := b.At(target)
	if occupant != nil && occupant.Color == color {
		return Move{}, false
	}
	return Move{From: from, To: target, Capture: occupant != nil}, true
}
