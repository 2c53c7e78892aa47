package chess

import "github.com/benbeisheim/boardtutor-backend/internal/model"

var knightJumps = []model.Position{
	{X: 1, Y: 2}, {X: -1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: -2},
	{X: 2, Y: 1}, {X: -2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: -1},
}

// forward is the rank step of a pawn of color c.
func forward(c model.Color) int {
	if c == model.White {
		return 1
	}
	return -1
}

func pawnStartRank(c model.Color) int {
	if c == model.White {
		return 1
	}
	return 6
}

func backRank(c model.Color) int {
	if c == model.White {
		return 0
	}
	return 7
}

// Candidates returns the destinations of the piece on from without castling
// and without checking whether the own king is left attacked.
func Candidates(b model.BoardReader, from model.Position) []model.Move {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case model.Pawn:
		return pawnMoves(b, from, piece.Color)
	case model.Knight:
		return model.Step(b, from, piece.Color, knightJumps)
	case model.Bishop:
		return model.Slide(b, from, piece.Color, model.Diagonal)
	case model.Rook:
		return model.Slide(b, from, piece.Color, model.Orthogonal)
	case model.Queen:
		return model.Slide(b, from, piece.Color, model.AllEight)
	case model.King:
		return model.Step(b, from, piece.Color, model.AllEight)
	default:
		return nil
	}
}

func pawnMoves(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	var moves []model.Move
	dir := forward(color)

	one := from.Add(model.Pos(0, dir))
	if b.InBounds(one) && b.At(one) == nil {
		moves = append(moves, model.Move{From: from, To: one})
		two := one.Add(model.Pos(0, dir))
		if from.Y == pawnStartRank(color) && b.InBounds(two) && b.At(two) == nil {
			moves = append(moves, model.Move{From: from, To: two})
		}
	}

	for _, dx := range []int{-1, 1} {
		target := from.Add(model.Pos(dx, dir))
		if !b.InBounds(target) {
			continue
		}
		if occupant := b.At(target); occupant != nil && occupant.Color != color {
			moves = append(moves, model.Move{From: from, To: target, Capture: true})
		}
	}
	return moves
}

// pawnAttacks is the two forward diagonals, occupied or not.
func pawnAttacks(b model.BoardReader, from model.Position, color model.Color) []model.Move {
	var moves []model.Move
	for _, dx := range []int{-1, 1} {
		target := from.Add(model.Pos(dx, forward(color)))
		if b.InBounds(target) {
			moves = append(moves, model.Move{From: from, To: target, Capture: b.At(target) != nil})
		}
	}
	return moves
}

// attacks is what the piece on from threatens. It differs from Candidates
// only for pawns, whose pushes never capture.
func attacks(b model.BoardReader, from model.Position) []model.Move {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	if piece.Type == model.Pawn {
		return pawnAttacks(b, from, piece.Color)
	}
	return Candidates(b, from)
}

// castleMoves lists the castling king moves available to the king on from.
// The king and the rook must not have moved, the squares between them must be
// empty, and the king may not be in check or cross an attacked square.
func castleMoves(s *model.GameState, from model.Position, color model.Color) []model.Move {
	rank := backRank(color)
	if from != model.Pos(4, rank) {
		return nil
	}
	kingMoved, rookAMoved, rookHMoved := s.Castling.WhiteKing, s.Castling.WhiteRookA, s.Castling.WhiteRookH
	if color == model.Black {
		kingMoved, rookAMoved, rookHMoved = s.Castling.BlackKing, s.Castling.BlackRookA, s.Castling.BlackRookH
	}
	if kingMoved {
		return nil
	}
	enemy := opponent(color)
	if Attacked(s.Board, from, enemy) {
		return nil
	}

	var moves []model.Move
	if !rookHMoved && isRook(s.Board, model.Pos(7, rank), color) &&
		emptyAndSafe(s.Board, rank, []int{5, 6}, []int{5, 6}, enemy) {
		moves = append(moves, model.Move{
			From:   from,
			To:     model.Pos(6, rank),
			Castle: &model.CastleRookMove{From: model.Pos(7, rank), To: model.Pos(5, rank)},
		})
	}
	if !rookAMoved && isRook(s.Board, model.Pos(0, rank), color) &&
		emptyAndSafe(s.Board, rank, []int{1, 2, 3}, []int{2, 3}, enemy) {
		moves = append(moves, model.Move{
			From:   from,
			To:     model.Pos(2, rank),
			Castle: &model.CastleRookMove{From: model.Pos(0, rank), To: model.Pos(3, rank)},
		})
	}
	return moves
}

func isRook(b *model.Board, p model.Position, color model.Color) bool {
	pc := b.At(p)
	return pc != nil && pc.Type == model.Rook && pc.Color == color
}

func emptyAndSafe(b *model.Board, rank int, empty, safe []int, enemy model.Color) bool {
	for _, x := range empty {
		if b.At(model.Pos(x, rank)) != nil {
			return false
		}
	}
	for _, x := range safe {
		if Attacked(b, model.Pos(x, rank), enemy) {
			return false
		}
	}
	return true
}
