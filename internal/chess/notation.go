package chess

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

// Letter is the upper-case piece letter used in notation, "P" for pawns.
func Letter(t model.PieceType) string {
	switch t {
	case model.King:
		return "K"
	case model.Queen:
		return "Q"
	case model.Rook:
		return "R"
	case model.Bishop:
		return "B"
	case model.Knight:
		return "N"
	case model.Pawn:
		return "P"
	}
	return "?"
}

// SquareName renders p in algebraic form, "e4" for Pos(4, 3).
func SquareName(p model.Position) string {
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(s string) (model.Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return model.Position{}, errors.Errorf("invalid square %q", s)
	}
	return model.Pos(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Notate renders m as "Ng1-f3", with "x" in place of "-" on captures and
// "O-O" or "O-O-O" for castling.
func (r *Rules) Notate(p model.Piece, m model.Move) string {
	if m.Castle != nil {
		if m.To.X > m.From.X {
			return "O-O"
		}
		return "O-O-O"
	}
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	return Letter(p.Type) + SquareName(m.From) + sep + SquareName(m.To)
}

func (r *Rules) NotatePromotion(p model.Piece, m model.Move, to model.PieceType) string {
	return r.Notate(p, m) + "=" + Letter(to)
}

// PieceFromLetter maps q, r, b and n (either case) to the promotion pieces.
func PieceFromLetter(s string) (model.PieceType, bool) {
	switch strings.ToLower(s) {
	case "q", "queen":
		return model.Queen, true
	case "r", "rook":
		return model.Rook, true
	case "b", "bishop":
		return model.Bishop, true
	case "n", "knight":
		return model.Knight, true
	}
	return "", false
}
