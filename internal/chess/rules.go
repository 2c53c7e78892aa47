// Package chess implements Western chess movement, check detection and the
// special moves the tutor teaches (castling and promotion).
package chess

import (
	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

const Size = 8

var pieceTypes = []model.PieceType{model.King, model.Queen, model.Rook, model.Bishop, model.Knight, model.Pawn}

var promotionChoices = []model.PieceType{model.Queen, model.Rook, model.Bishop, model.Knight}

// Values is the material value of each piece.
var Values = map[model.PieceType]float64{
	model.King:   0,
	model.Queen:  9,
	model.Rook:   5,
	model.Bishop: 3,
	model.Knight: 3,
	model.Pawn:   1,
}

type Options struct {
	// StrictLegality drops moves that leave the own king attacked and ends
	// the game on checkmate. Without it a game only ends when a king is
	// captured.
	StrictLegality bool
}

type Rules struct {
	opts Options
}

var (
	_ model.Rules         = (*Rules)(nil)
	_ model.PracticeMover = (*Rules)(nil)
)

func New(opts Options) *Rules {
	return &Rules{opts: opts}
}

func (r *Rules) Variant() model.Variant { return model.VariantChess }

func (r *Rules) Sides() [2]model.Color { return [2]model.Color{model.White, model.Black} }

func opponent(c model.Color) model.Color {
	if c == model.White {
		return model.Black
	}
	return model.White
}

// NewBoard returns the opening position. White occupies ranks 0 and 1.
func (r *Rules) NewBoard() *model.Board {
	back := []model.PieceType{model.Rook, model.Knight, model.Bishop, model.Queen, model.King, model.Bishop, model.Knight, model.Rook}
	var placements []model.Placement
	for x, t := range back {
		placements = append(placements,
			model.Place(t, model.White, x, 0),
			model.Place(model.Pawn, model.White, x, 1),
			model.Place(model.Pawn, model.Black, x, 6),
			model.Place(t, model.Black, x, 7),
		)
	}
	return model.NewBoardWith(Size, Size, placements...)
}

func (r *Rules) Validate(b *model.Board) error {
	return model.ValidateBoard(b, Size, Size, r.Sides(), model.King, pieceTypes)
}

func (r *Rules) Candidates(b model.BoardReader, from model.Position) []model.Move {
	return Candidates(b, from)
}

func (r *Rules) Moves(s *model.GameState, from model.Position) []model.Move {
	moves := r.PracticeMoves(s, from)
	if r.opts.StrictLegality && len(moves) > 0 {
		moves = model.FilterLegal(r, s.Board, s.Board.At(from).Color, moves)
	}
	return moves
}

// PracticeMoves is Moves without the self-check filter, whatever the options.
func (r *Rules) PracticeMoves(s *model.GameState, from model.Position) []model.Move {
	piece := s.Board.At(from)
	if piece == nil {
		return nil
	}
	moves := Candidates(s.Board, from)
	if piece.Type == model.King {
		moves = append(moves, castleMoves(s, from, piece.Color)...)
	}
	return moves
}

func (r *Rules) InCheck(b *model.Board, c model.Color) bool {
	return InCheck(b, c)
}

func (r *Rules) DetectsCheckmate() bool { return r.opts.StrictLegality }

// AfterMove relocates the castling rook and records which castling pieces
// have moved or been captured.
func (r *Rules) AfterMove(s *model.GameState, m model.Move, moved model.Piece) {
	if m.Castle != nil {
		s.Board.Relocate(m.Castle.From, m.Castle.To)
	}
	if moved.Type == model.King {
		if moved.Color == model.White {
			s.Castling.WhiteKing = true
		} else {
			s.Castling.BlackKing = true
		}
	}
	for _, sq := range []model.Position{m.From, m.To} {
		switch sq {
		case model.Pos(0, 0):
			s.Castling.WhiteRookA = true
		case model.Pos(7, 0):
			s.Castling.WhiteRookH = true
		case model.Pos(0, 7):
			s.Castling.BlackRookA = true
		case model.Pos(7, 7):
			s.Castling.BlackRookH = true
		}
	}
}

func (r *Rules) Promotes(p model.Piece, to model.Position) bool {
	return p.Type == model.Pawn && to.Y == backRank(opponent(p.Color))
}

func (r *Rules) PromotionChoices() []model.PieceType {
	return append([]model.PieceType(nil), promotionChoices...)
}

// InCheck reports whether the king of color c is attacked. A board without
// that king is never in check.
func InCheck(b *model.Board, c model.Color) bool {
	king, ok := b.Find(model.King, c)
	if !ok {
		return false
	}
	return Attacked(b, king, opponent(c))
}

// Attacked reports whether any piece of color by attacks sq.
func Attacked(b *model.Board, sq model.Position, by model.Color) bool {
	return model.Attacked(b, sq, by, attacks)
}
