package model

type Variant string

const (
	VariantChess   Variant = "chess"
	VariantXiangqi Variant = "xiangqi"
)

// Rules is everything the game state machine needs to know about one ruleset.
type Rules interface {
	Variant() Variant
	// Sides lists both colors, the side that moves first at index 0.
	Sides() [2]Color
	NewBoard() *Board
	Validate(b *Board) error

	// Candidates is the pure per-piece generator. It must not mutate b.
	Candidates(b BoardReader, from Position) []Move
	// Moves returns the moves the piece on from may play in a full game,
	// after any special moves and legality filtering the ruleset applies.
	Moves(s *GameState, from Position) []Move
	InCheck(b *Board, c Color) bool
	// DetectsCheckmate reports whether a side in check with no legal move
	// loses. Royal capture always ends the game regardless.
	DetectsCheckmate() bool

	// AfterMove applies ruleset side effects once the moving piece has
	// landed on m.To.
	AfterMove(s *GameState, m Move, moved Piece)
	Promotes(p Piece, to Position) bool
	PromotionChoices() []PieceType

	Notate(p Piece, m Move) string
	NotatePromotion(p Piece, m Move, to PieceType) string
}

// PracticeMover is implemented by rulesets whose practice boards offer a
// different move set than the full game, typically without the self-check
// filter.
type PracticeMover interface {
	PracticeMoves(s *GameState, from Position) []Move
}

// Opponent returns the other side of r.
func Opponent(r Rules, c Color) Color {
	sides := r.Sides()
	if c == sides[0] {
		return sides[1]
	}
	return sides[0]
}

// HasAnyLegalMove reports whether any piece of color c has a move under r.
func HasAnyLegalMove(r Rules, s *GameState, c Color) bool {
	for _, sq := range s.Board.Occupied(c) {
		if len(r.Moves(s, sq)) > 0 {
			return true
		}
	}
	return false
}

// FilterLegal drops every move that would leave color's royal piece in check.
// Each candidate is tried on a clone so b is never touched.
func FilterLegal(r Rules, b *Board, color Color, moves []Move) []Move {
	legal := make([]Move, 0, len(moves))
	for _, m := range moves {
		trial := b.Clone()
		trial.Relocate(m.From, m.To)
		if m.Castle != nil {
			trial.Relocate(m.Castle.From, m.Castle.To)
		}
		if !r.InCheck(trial, color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// Attacked reports whether sq is reached by any piece of color by, using
// attacks to generate each piece's reach.
func Attacked(b *Board, sq Position, by Color, attacks func(BoardReader, Position) []Move) bool {
	for _, from := range b.Occupied(by) {
		if Contains(attacks(b, from), sq) {
			return true
		}
	}
	return false
}
