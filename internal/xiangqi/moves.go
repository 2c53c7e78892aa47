package xiangqi

import "github.com/benbeisheim/boardtutor-backend/internal/model"

var diagonalSteps = model.Diagonal

// horseJump pairs a horse destination offset with the leg square that must be
// empty for the jump.
type horseJump struct {
	to, leg model.Position
}

var horseJumps = []horseJump{
	{to: model.Pos(1, 2), leg: model.Pos(0, 1)},
	{to: model.Pos(-1, 2), leg: model.Pos(0, 1)},
	{to: model.Pos(1, -2), leg: model.Pos(0, -1)},
	{to: model.Pos(-1, -2), leg: model.Pos(0, -1)},
	{to: model.Pos(2, 1), leg: model.Pos(1, 0)},
	{to: model.Pos(2, -1), leg: model.Pos(1, 0)},
	{to: model.Pos(-2, 1), leg: model.Pos(-1, 0)},
	{to: model.Pos(-2, -1), leg: model.Pos(-1, 0)},
}

// forward is the rank step toward the enemy side. Red starts on ranks 5-9.
func forward(c model.Color) int {
	if c == model.Red {
		return -1
	}
	return 1
}

func inPalace(p model.Position, c model.Color) bool {
	if p.X < 3 || p.X > 5 {
		return false
	}
	if c == model.Red {
		return p.Y >= 7 && p.Y <= 9
	}
	return p.Y >= 0 && p.Y <= 2
}

func ownSide(p model.Position, c model.Color) bool {
	if c == model.Red {
		return p.Y >= 5
	}
	return p.Y <= 4
}

// Candidates returns the destinations of the piece on from. General moves
// that would leave the two generals facing each other are already excluded;
// other self-check is not.
func Candidates(b model.BoardReader, from model.Position) []model.Move {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case model.General:
		return generalMoves(b, from, piece.Color)
	case model.Advisor:
		return palaceSteps(b, from, piece.Color, diagonalSteps)
	case model.Elephant:
		return elephantMoves(b, from, piece.Color)
	case model.Horse:
		return horseMoves(b, from, piece.Color)
	case model.Chariot:
		return model.Slide(b, from, piece.Color, model.Orthogonal)
	case model.Cannon:
		return cannonMoves(b, from, piece.Color)
	case model.Soldier:
		return soldierMoves(b, from, piece.Color)
	default:
		return nil
	}
}

func palaceSteps(b model.BoardReader, from model.Position, color model.Color, offsets []model.Position) []model.Move {
	var moves []model.Move
	for _, m := range model.Step(b, from, color, offsets) {
		if inPalace(m.To, color) {
			moves = append(moves, m)
		}
	}
	return moves
}

func generalMoves(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	var moves []model.Move
	for _, m := range palaceSteps(b, from, color, model.Orthogonal) {
		if !generalsFace(movedView{BoardReader: b, from: m.From, to: m.To}) {
			moves = append(moves, m)
		}
	}
	return moves
}

func elephantMoves(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	var moves []model.Move
	for _, d := range diagonalSteps {
		eye := from.Add(d)
		if !b.InBounds(eye) || b.At(eye) != nil {
			continue
		}
		target := eye.Add(d)
		if !ownSide(target, color) {
			continue
		}
		if m, ok := model.StepTo(b, from, color, target); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func horseMoves(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	var moves []model.Move
	for _, j := range horseJumps {
		leg := from.Add(j.leg)
		if !b.InBounds(leg) || b.At(leg) != nil {
			continue
		}
		if m, ok := model.StepTo(b, from, color, from.Add(j.to)); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// cannonMoves walks each ray: empty squares before the first piece (the
// mount) are moves, and the first piece beyond the mount is a capture if it
// is an enemy. Nothing past the mount is a plain move.
func cannonMoves(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	var moves []model.Move
	for _, dir := range model.Orthogonal {
		target := from.Add(dir)
		for b.InBounds(target) && b.At(target) == nil {
			moves = append(moves, model.Move{From: from, To: target})
			target = target.Add(dir)
		}
		// target is now the mount, or off the board.
		for target = target.Add(dir); b.InBounds(target); target = target.Add(dir) {
			if occupant := b.At(target); occupant != nil {
				if occupant.Color != color {
					moves = append(moves, model.Move{From: from, To: target, Capture: true})
				}
				break
			}
		}
	}
	return moves
}

func soldierMoves(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	offsets := []model.Position{model.Pos(0, forward(color))}
	if !ownSide(from, color) {
		offsets = append(offsets, model.Pos(-1, 0), model.Pos(1, 0))
	}
	return model.Step(b, from, color, offsets)
}

// movedView is b with the piece on from standing on to instead.
type movedView struct {
	model.BoardReader
	from, to model.Position
}

func (v movedView) At(p model.Position) *model.Piece {
	switch p {
	case v.to:
		return v.BoardReader.At(v.from)
	case v.from:
		return nil
	}
	return v.BoardReader.At(p)
}

// findGeneral looks for the general of color c inside its palace.
func findGeneral(b model.BoardReader, c model.Color) (model.Position, bool) {
	minY, maxY := 0, 2
	if c == model.Red {
		minY, maxY = 7, 9
	}
	for y := minY; y <= maxY; y++ {
		for x := 3; x <= 5; x++ {
			p := model.Pos(x, y)
			if pc := b.At(p); pc != nil && pc.Type == model.General && pc.Color == c {
				return p, true
			}
		}
	}
	return model.Position{}, false
}

// generalsFace reports whether both generals stand on one file with nothing
// between them.
func generalsFace(b model.BoardReader) bool {
	red, ok := findGeneral(b, model.Red)
	if !ok {
		return false
	}
	black, ok := findGeneral(b, model.Black)
	if !ok || red.X != black.X {
		return false
	}
	for y := black.Y + 1; y < red.Y; y++ {
		if b.At(model.Pos(red.X, y)) != nil {
			return false
		}
	}
	return true
}
