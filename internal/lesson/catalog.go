package lesson

import (
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

func square(x, y int) *model.Position {
	p := model.Pos(x, y)
	return &p
}

func white(t model.PieceType, x, y int) model.Placement { return model.Place(t, model.White, x, y) }
func black(t model.PieceType, x, y int) model.Placement { return model.Place(t, model.Black, x, y) }
func red(t model.PieceType, x, y int) model.Placement { return model.Place(t, model.Red, x, y) }

func reachChess(id, title, name string, t model.PieceType, from, to model.Position, target string) Lesson {
	return Lesson{
		ID:           id,
		Variant:      model.VariantChess,
		Title:        title,
		Instructions: "Move the " + name + " to " + target + ".",
		Color:        model.White,
		Goal:         Goal{Kind: GoalReach, Square: square(to.X, to.Y)},
		Pieces:       []model.Placement{white(t, from.X, from.Y)},
		Success:      "Correct! The " + name + " moved to " + target + ".",
		Hint:         "Valid move, but not the target. Try moving to " + target + "!",
	}
}

func captureChess(id, title, name string, t model.PieceType, from model.Position, targets ...model.Position) Lesson {
	pieces := []model.Placement{white(t, from.X, from.Y)}
	for _, p := range targets {
		pieces = append(pieces, black(model.Pawn, p.X, p.Y))
	}
	return Lesson{
		ID:           id,
		Variant:      model.VariantChess,
		Title:        title,
		Instructions: "Capture the black pawn with the " + name + ".",
		Color:        model.White,
		Goal:         Goal{Kind: GoalCapture, Piece: model.Pawn},
		Pieces:       pieces,
		Success:      "Correct! The " + name + " captured the pawn.",
		Hint:         "Valid move, but nothing was captured. Look for the pawn!",
	}
}

func quiz(id string, v model.Variant, c model.Color, title, question, success, hint string, options []QuizOption, pieces ...model.Placement) Lesson {
	return Lesson{
		ID:           id,
		Variant:      v,
		Title:        title,
		Instructions: question,
		Color:        c,
		Goal:         Goal{Kind: GoalQuiz},
		Pieces:       pieces,
		FullBoard:    len(pieces) == 0,
		Question:     question,
		Options:      options,
		Success:      success,
		Hint:         hint,
	}
}

var chessLessons = []Lesson{
	reachChess("knight", "The knight", "knight", model.Knight, model.Pos(6, 0), model.Pos(5, 2), "f3"),
	reachChess("rook", "The rook", "rook", model.Rook, model.Pos(0, 0), model.Pos(4, 3), "e4"),
	reachChess("bishop", "The bishop", "bishop", model.Bishop, model.Pos(2, 0), model.Pos(6, 4), "g5"),
	reachChess("pawn", "The pawn", "pawn", model.Pawn, model.Pos(4, 1), model.Pos(4, 3), "e4"),
	reachChess("queen", "The queen", "queen", model.Queen, model.Pos(3, 0), model.Pos(3, 3), "d4"),
	reachChess("king", "The king", "king", model.King, model.Pos(4, 0), model.Pos(4, 1), "e2"),
	{
		ID:           "castling",
		Variant:      model.VariantChess,
		Title:        "Castling",
		Instructions: "Castle on either side: move the king two squares toward a rook.",
		Color:        model.White,
		Goal:         Goal{Kind: GoalCastle},
		Pieces: []model.Placement{
			white(model.King, 4, 0),
			white(model.Rook, 0, 0),
			white(model.Rook, 7, 0),
		},
		Success: "Correct! The king is safe and the rook is in play.",
		Hint:    "That is a legal move, but not castling. Move the king two squares sideways.",
	},
	{
		ID:           "promotion",
		Variant:      model.VariantChess,
		Title:        "Promotion",
		Instructions: "Advance the pawn to the last rank and choose a new piece.",
		Color:        model.White,
		Goal:         Goal{Kind: GoalPromote},
		Pieces: []model.Placement{
			white(model.Pawn, 4, 6),
			black(model.King, 0, 7),
		},
		Success: "Correct! The pawn has been promoted.",
		Hint:    "Push the pawn forward to e8.",
	},
	captureChess("knight-capture", "Knight captures", "knight", model.Knight, model.Pos(6, 0), model.Pos(5, 2)),
	captureChess("rook-capture", "Rook captures", "rook", model.Rook, model.Pos(0, 0), model.Pos(0, 6)),
	captureChess("bishop-capture", "Bishop captures", "bishop", model.Bishop, model.Pos(2, 0), model.Pos(7, 5)),
	{
		ID:           "pawn-capture",
		Variant:      model.VariantChess,
		Title:        "Pawn captures",
		Instructions: "Pawns capture diagonally. Take the black pawn.",
		Color:        model.White,
		Goal:         Goal{Kind: GoalCapture, Piece: model.Pawn},
		Pieces: []model.Placement{
			white(model.Pawn, 4, 3),
			black(model.Pawn, 3, 4),
		},
		Success: "Correct! The pawn captured diagonally.",
		Hint:    "Pawns move straight but capture diagonally. Try again!",
	},
	captureChess("queen-capture", "Queen captures", "queen", model.Queen, model.Pos(3, 0), model.Pos(3, 7)),
	quiz("opening", model.VariantChess, model.White, "Opening moves",
		"Which is a good first move for white?",
		"Correct! This is a good opening move that controls the center.",
		"Not ideal. You should control the center squares like e4 or d4 in the opening.",
		[]QuizOption{
			{Text: "e4", Detail: "King's pawn forward two squares", Correct: true},
			{Text: "a4", Detail: "Rook's pawn forward two squares"},
			{Text: "d4", Detail: "Queen's pawn forward two squares", Correct: true},
			{Text: "h4", Detail: "Rook's pawn forward two squares"},
		}),
}

func free(id, title, instructions string, pieces ...model.Placement) Lesson {
	return Lesson{
		ID:           id,
		Variant:      model.VariantXiangqi,
		Title:        title,
		Instructions: instructions,
		Color:        model.Red,
		Goal:         Goal{Kind: GoalFree},
		Pieces:       pieces,
		Hint:         "Legal move. Select the piece again to see where it can go next.",
	}
}

func captureXiangqi(id, title, name string, target model.PieceType, targetName string, pieces ...model.Placement) Lesson {
	return Lesson{
		ID:           id,
		Variant:      model.VariantXiangqi,
		Title:        title,
		Instructions: "Use the " + name + " to capture the black " + targetName + ".",
		Color:        model.Red,
		Goal:         Goal{Kind: GoalCapture, Piece: target},
		Pieces:       pieces,
		Success:      "Correct! The " + name + " captured the " + targetName + ".",
		Hint:         "Legal move, but no capture. Try again!",
	}
}

var xiangqiLessons = []Lesson{
	free("general", "The general",
		"The general moves one point orthogonally and never leaves the palace.",
		red(model.General, 4, 8)),
	{
		ID:           "general-capture",
		Variant:      model.VariantXiangqi,
		Title:        "Escaping check",
		Instructions: "The black chariot attacks your general. Step off the file.",
		Color:        model.Red,
		Goal:         Goal{Kind: GoalLeaveFile, File: 4},
		Pieces: []model.Placement{
			red(model.General, 4, 8),
			black(model.Chariot, 4, 3),
		},
		Success: "Correct! The general escaped the chariot.",
		Hint:    "The general is still in danger. Leave the file!",
	},
	free("advisor", "The advisor",
		"The advisor moves one point diagonally inside the palace.",
		red(model.Advisor, 3, 9)),
	captureXiangqi("advisor-capture", "Advisor captures", "advisor", model.Soldier, "soldier",
		red(model.Advisor, 3, 9), red(model.Advisor, 4, 8), black(model.Soldier, 5, 7)),
	free("elephant", "The elephant",
		"The elephant moves two points diagonally, cannot cross the river, and is blocked by a piece on its eye.",
		red(model.Elephant, 4, 7), black(model.Soldier, 5, 6)),
	captureXiangqi("elephant-capture", "Elephant captures", "elephant", model.Soldier, "soldier",
		red(model.Elephant, 4, 7), black(model.Soldier, 6, 5)),
	free("horse", "The horse",
		"The horse moves one point straight and one diagonally, and is blocked by a piece on its leg.",
		red(model.Horse, 4, 5), black(model.Soldier, 4, 4)),
	captureXiangqi("horse-capture", "Horse captures", "horse", model.Soldier, "soldier",
		red(model.Horse, 4, 5), black(model.Soldier, 5, 3)),
	free("chariot", "The chariot",
		"The chariot moves any distance orthogonally.",
		red(model.Chariot, 4, 5), black(model.Soldier, 4, 2), black(model.Soldier, 7, 5)),
	captureXiangqi("chariot-capture", "Chariot captures", "chariot", model.Horse, "horse",
		red(model.Chariot, 2, 5), black(model.Horse, 7, 5)),
	free("cannon", "The cannon",
		"The cannon moves like a chariot but captures by jumping over exactly one piece.",
		red(model.Cannon, 2, 5), red(model.Soldier, 5, 5), black(model.Horse, 7, 5), black(model.Soldier, 2, 2)),
	captureXiangqi("cannon-capture", "Cannon captures", "cannon", model.Elephant, "elephant",
		red(model.Cannon, 2, 7), red(model.Soldier, 2, 6), black(model.Elephant, 2, 4)),
	free("soldier", "The soldier",
		"The soldier moves forward one point. After crossing the river it may also move sideways.",
		red(model.Soldier, 4, 6)),
	captureXiangqi("soldier-capture", "Soldier captures", "soldier", model.Soldier, "soldier",
		red(model.Soldier, 4, 6), black(model.Soldier, 5, 4)),
	free("flying-general", "Flying general",
		"The generals may never face each other on an open file. Try moving your general to the centre file.",
		red(model.General, 5, 8), black(model.General, 4, 1)),
	quiz("river-quiz", model.VariantXiangqi, model.Red, "The river",
		"Which piece can never cross the river?",
		"Correct! The elephant defends its own side of the board.",
		"Not quite. The horse, chariot and soldier all cross; the elephant stays home.",
		[]QuizOption{
			{Text: "Horse"},
			{Text: "Elephant", Correct: true},
			{Text: "Chariot"},
			{Text: "Soldier"},
		},
		red(model.Elephant, 2, 9), red(model.Horse, 1, 9), red(model.Chariot, 0, 9), red(model.Soldier, 2, 6)),
	quiz("cannon-quiz", model.VariantXiangqi, model.Red, "How the cannon captures",
		"How does the cannon capture?",
		"Correct! The cannon needs exactly one screen between itself and its target.",
		"Not quite. The cannon moves like a chariot but must jump one piece to capture.",
		[]QuizOption{
			{Text: "Like the chariot, along an open line"},
			{Text: "By jumping over exactly one piece", Correct: true},
			{Text: "One point diagonally"},
		},
		red(model.Cannon, 2, 7), red(model.Soldier, 2, 6), black(model.Elephant, 2, 4)),
	quiz("palace-quiz", model.VariantXiangqi, model.Red, "The palace",
		"Which pieces can never leave the palace?",
		"Correct! The general and the advisors are confined to the palace.",
		"Not quite. Only the general and the advisors stay inside the palace.",
		[]QuizOption{
			{Text: "The general only"},
			{Text: "The general and the advisors", Correct: true},
			{Text: "The general, advisors and elephants"},
		},
		red(model.General, 4, 9), red(model.Advisor, 3, 9), red(model.Advisor, 5, 9)),
}

// Catalog lists the lessons for v in teaching order.
func Catalog(v model.Variant) []Lesson {
	switch v {
	case model.VariantChess:
		return append([]Lesson(nil), chessLessons...)
	case model.VariantXiangqi:
		return append([]Lesson(nil), xiangqiLessons...)
	}
	return nil
}

func Find(v model.Variant, id string) (Lesson, error) {
	for _, l := range Catalog(v) {
		if l.ID == id {
			return l, nil
		}
	}
	return Lesson{}, errors.Wrapf(ErrUnknownLesson, "%s/%s", v, id)
}
