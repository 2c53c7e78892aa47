// Package xiangqi implements Chinese chess: palace-bound generals and
// advisors, river-bound elephants, leg-blocked horses, screen-jumping cannons
// and the flying-general rule.
//
// Two generals facing each other on an open file count as check. In a full
// game this forbids every move that opens the file between them, whichever
// piece makes it, not only general moves onto the file.
package xiangqi

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

const (
	Width  = 9
	Height = 10
)

var ErrOutOfPlace = errors.New("piece outside its allowed area")

var pieceTypes = []model.PieceType{
	model.General, model.Advisor, model.Elephant, model.Horse, model.Chariot, model.Cannon, model.Soldier,
}

// Values is the material value of each piece.
var Values = map[model.PieceType]float64{
	model.General:  0,
	model.Advisor:  2,
	model.Elephant: 2,
	model.Horse:    4,
	model.Chariot:  9,
	model.Cannon:   4.5,
	model.Soldier:  1,
}

// Rules is the Xiangqi ruleset. Moves that leave the own general attacked or
// facing the enemy general are never offered, and checkmate ends the game.
type Rules struct{}

var (
	_ model.Rules         = Rules{}
	_ model.PracticeMover = Rules{}
)

func New() Rules { return Rules{} }

func (Rules) Variant() model.Variant { return model.VariantXiangqi }

func (Rules) Sides() [2]model.Color { return [2]model.Color{model.Red, model.Black} }

func opponent(c model.Color) model.Color {
	if c == model.Red {
		return model.Black
	}
	return model.Red
}

// NewBoard returns the opening position with black on ranks 0-4.
func (Rules) NewBoard() *model.Board {
	back := []model.PieceType{
		model.Chariot, model.Horse, model.Elephant, model.Advisor, model.General,
		model.Advisor, model.Elephant, model.Horse, model.Chariot,
	}
	var placements []model.Placement
	for x, t := range back {
		placements = append(placements,
			model.Place(t, model.Black, x, 0),
			model.Place(t, model.Red, x, 9),
		)
	}
	for _, x := range []int{1, 7} {
		placements = append(placements,
			model.Place(model.Cannon, model.Black, x, 2),
			model.Place(model.Cannon, model.Red, x, 7),
		)
	}
	for x := 0; x < Width; x += 2 {
		placements = append(placements,
			model.Place(model.Soldier, model.Black, x, 3),
			model.Place(model.Soldier, model.Red, x, 6),
		)
	}
	return model.NewBoardWith(Width, Height, placements...)
}

// Validate adds the palace and river constraints to the shared board checks.
func (r Rules) Validate(b *model.Board) error {
	if err := model.ValidateBoard(b, Width, Height, r.Sides(), model.General, pieceTypes); err != nil {
		return err
	}
	var result error
	for _, side := range r.Sides() {
		for _, sq := range b.Occupied(side) {
			pc := b.At(sq)
			switch {
			case (pc.Type == model.General || pc.Type == model.Advisor) && !inPalace(sq, side):
				result = multierror.Append(result, fmt.Errorf("%w: %s at %s", ErrOutOfPlace, pc, sq))
			case pc.Type == model.Elephant && !ownSide(sq, side):
				result = multierror.Append(result, fmt.Errorf("%w: %s at %s", ErrOutOfPlace, pc, sq))
			}
		}
	}
	if result != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidBoard, result)
	}
	return nil
}

func (Rules) Candidates(b model.BoardReader, from model.Position) []model.Move {
	return Candidates(b, from)
}

func (r Rules) Moves(s *model.GameState, from model.Position) []model.Move {
	piece := s.Board.At(from)
	if piece == nil {
		return nil
	}
	return model.FilterLegal(r, s.Board, piece.Color, Candidates(s.Board, from))
}

// PracticeMoves offers the candidates unfiltered, so a practice board lets a
// piece step into or stay in check. The flying-general rule still holds for
// general moves.
func (Rules) PracticeMoves(s *model.GameState, from model.Position) []model.Move {
	return Candidates(s.Board, from)
}

// InCheck reports whether the general of color c is attacked or faces the
// enemy general on an open file.
func (Rules) InCheck(b *model.Board, c model.Color) bool {
	return InCheck(b, c)
}

func (Rules) DetectsCheckmate() bool { return true }

func (Rules) AfterMove(*model.GameState, model.Move, model.Piece) {}

func (Rules) Promotes(model.Piece, model.Position) bool { return false }

func (Rules) PromotionChoices() []model.PieceType { return nil }

func InCheck(b *model.Board, c model.Color) bool {
	general, ok := b.Find(model.General, c)
	if !ok {
		return false
	}
	if model.Attacked(b, general, opponent(c), Candidates) {
		return true
	}
	return generalsFace(b)
}
