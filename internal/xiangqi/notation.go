package xiangqi

import (
	"fmt"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

var glyphs = map[model.Color]map[model.PieceType]string{
	model.Red: {
		model.General:  "帅",
		model.Advisor:  "仕",
		model.Elephant: "相",
		model.Horse:    "马",
		model.Chariot:  "车",
		model.Cannon:   "炮",
		model.Soldier:  "兵",
	},
	model.Black: {
		model.General:  "将",
		model.Advisor:  "士",
		model.Elephant: "象",
		model.Horse:    "马",
		model.Chariot:  "车",
		model.Cannon:   "砲",
		model.Soldier:  "卒",
	},
}

// Glyph is the character printed on the piece.
func Glyph(p model.Piece) string {
	return glyphs[p.Color][p.Type]
}

func sideName(c model.Color) string {
	if c == model.Red {
		return "红"
	}
	return "黑"
}

// Notate renders m as "红马 1,9→2,7".
func (Rules) Notate(p model.Piece, m model.Move) string {
	return fmt.Sprintf("%s%s %s→%s", sideName(p.Color), Glyph(p), m.From, m.To)
}

func (r Rules) NotatePromotion(p model.Piece, m model.Move, _ model.PieceType) string {
	return r.Notate(p, m)
}
