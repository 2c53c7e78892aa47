package chess_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/boardtutor-backend/internal/chess"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

func play(t *testing.T, g *model.Game, from, to model.Position) {
	t.Helper()
	require.True(t, g.Play(from, to), "move %s -> %s rejected", from, to)
}

func TestOpeningNotation(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}))

	play(t, g, model.Pos(6, 0), model.Pos(5, 2))
	play(t, g, model.Pos(4, 6), model.Pos(4, 4))
	play(t, g, model.Pos(5, 2), model.Pos(4, 4))

	s := g.State()
	assert.Equal(t, []string{"Ng1-f3", "Pe7-e5", "Nf3xe5"}, s.MoveHistory)
	assert.Equal(t, model.Black, s.Turn)
	require.Len(t, s.Captured[model.Black], 1)
	assert.Equal(t, model.Pawn, s.Captured[model.Black][0].Type)
	assert.Equal(t, 1.0, model.Material(g.Rules(), s, chess.Values))
}

func TestClickSelection(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}))

	g.Click(model.Pos(4, 6))
	assert.Equal(t, model.PhaseNoSelection, g.State().Phase, "opponent piece selected")

	g.Click(model.Pos(4, 1))
	s := g.State()
	require.NotNil(t, s.Selected)
	assert.Equal(t, model.PhasePieceSelected, s.Phase)
	assert.ElementsMatch(t, []model.Position{{X: 4, Y: 2}, {X: 4, Y: 3}}, model.Destinations(s.LegalMoves))

	g.Click(model.Pos(6, 0))
	s = g.State()
	require.NotNil(t, s.Selected)
	assert.Equal(t, model.Pos(6, 0), *s.Selected)

	g.Click(model.Pos(6, 0))
	s = g.State()
	assert.Nil(t, s.Selected)
	assert.Equal(t, model.PhaseNoSelection, s.Phase)

	g.Click(model.Pos(6, 0))
	g.Click(model.Pos(3, 4))
	assert.Nil(t, g.State().Selected, "click on an unreachable square should deselect")
	assert.Empty(t, g.State().MoveHistory)
}

func TestKingCaptureEndsGame(t *testing.T) {
	b := board(
		model.Place(model.King, model.White, 7, 0),
		model.Place(model.Rook, model.White, 0, 0),
		model.Place(model.King, model.Black, 0, 7),
	)
	g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(b, model.White))
	assert.False(t, g.State().IsCheck)

	play(t, g, model.Pos(0, 0), model.Pos(0, 7))

	s := g.State()
	assert.True(t, s.GameOver)
	assert.Equal(t, model.PhaseGameOver, s.Phase)
	require.NotNil(t, s.Winner)
	assert.Equal(t, model.White, *s.Winner)
	assert.Empty(t, s.MoveHistory)
	assert.Equal(t, model.White, s.Turn)
	assert.Equal(t, &model.Piece{Type: model.Rook, Color: model.White}, s.Board.At(model.Pos(0, 7)))
	require.Len(t, s.Captured[model.Black], 1)
	assert.Equal(t, model.King, s.Captured[model.Black][0].Type)

	g.Click(model.Pos(7, 0))
	assert.Nil(t, g.State().Selected, "clicks after game over are ignored")
}

var foolsMate = [][2]model.Position{
	{{X: 5, Y: 1}, {X: 5, Y: 2}},
	{{X: 4, Y: 6}, {X: 4, Y: 4}},
	{{X: 6, Y: 1}, {X: 6, Y: 3}},
	{{X: 3, Y: 7}, {X: 7, Y: 3}},
}

func TestStrictCheckmate(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{StrictLegality: true}))
	for _, m := range foolsMate {
		play(t, g, m[0], m[1])
	}

	s := g.State()
	assert.True(t, s.IsCheck)
	assert.True(t, s.IsCheckmate)
	assert.True(t, s.GameOver)
	require.NotNil(t, s.Winner)
	assert.Equal(t, model.Black, *s.Winner)
}

func TestDefaultRulesOnlyFlagCheck(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}))
	for _, m := range foolsMate {
		play(t, g, m[0], m[1])
	}

	s := g.State()
	assert.True(t, s.IsCheck)
	assert.False(t, s.IsCheckmate)
	assert.False(t, s.GameOver)
	assert.Equal(t, model.PhaseNoSelection, s.Phase)
}

func TestStrictRulesRejectSelfCheck(t *testing.T) {
	b := board(
		model.Place(model.King, model.White, 4, 0),
		model.Place(model.Bishop, model.White, 4, 1),
		model.Place(model.Rook, model.Black, 4, 6),
		model.Place(model.King, model.Black, 0, 7),
	)

	strict := model.NewGame(chess.New(chess.Options{StrictLegality: true}), model.WithBoard(b, model.White))
	assert.Empty(t, strict.LegalMovesFrom(model.Pos(4, 1)))

	loose := model.NewGame(chess.New(chess.Options{}), model.WithBoard(b, model.White))
	assert.NotEmpty(t, loose.LegalMovesFrom(model.Pos(4, 1)))
}

func castlingBoard(extra ...model.Placement) *model.Board {
	return board(append([]model.Placement{
		model.Place(model.King, model.White, 4, 0),
		model.Place(model.Rook, model.White, 0, 0),
		model.Place(model.Rook, model.White, 7, 0),
		model.Place(model.King, model.Black, 4, 7),
	}, extra...)...)
}

func TestCastlingKingside(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(castlingBoard(), model.White))

	moves := g.LegalMovesFrom(model.Pos(4, 0))
	assert.True(t, model.Contains(moves, model.Pos(6, 0)))
	assert.True(t, model.Contains(moves, model.Pos(2, 0)))

	play(t, g, model.Pos(4, 0), model.Pos(6, 0))

	s := g.State()
	assert.Equal(t, model.King, s.Board.At(model.Pos(6, 0)).Type)
	assert.Equal(t, model.Rook, s.Board.At(model.Pos(5, 0)).Type)
	assert.Nil(t, s.Board.At(model.Pos(7, 0)))
	assert.Equal(t, []string{"O-O"}, s.MoveHistory)
	assert.True(t, s.Castling.WhiteKing)
	assert.Equal(t, model.Pos(6, 0), s.KingPositions[model.White])
}

func TestCastlingQueenside(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(castlingBoard(), model.White))

	play(t, g, model.Pos(4, 0), model.Pos(2, 0))

	s := g.State()
	assert.Equal(t, model.King, s.Board.At(model.Pos(2, 0)).Type)
	assert.Equal(t, model.Rook, s.Board.At(model.Pos(3, 0)).Type)
	assert.Equal(t, []string{"O-O-O"}, s.MoveHistory)
}

func TestCastlingRestrictions(t *testing.T) {
	tests := []struct {
		name      string
		extra     []model.Placement
		kingside  bool
		queenside bool
	}{
		{name: "both sides open", kingside: true, queenside: true},
		{
			name:      "attacked transit square",
			extra:     []model.Placement{model.Place(model.Rook, model.Black, 5, 7)},
			queenside: true,
		},
		{
			name:     "piece in between",
			extra:    []model.Placement{model.Place(model.Knight, model.White, 1, 0)},
			kingside: true,
		},
		{
			name:  "king in check",
			extra: []model.Placement{model.Place(model.Rook, model.Black, 4, 5)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(castlingBoard(tt.extra...), model.White))
			moves := g.LegalMovesFrom(model.Pos(4, 0))
			assert.Equal(t, tt.kingside, model.Contains(moves, model.Pos(6, 0)), "kingside")
			assert.Equal(t, tt.queenside, model.Contains(moves, model.Pos(2, 0)), "queenside")
		})
	}
}

func TestCastlingLostAfterRookMoves(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(castlingBoard(), model.White))

	play(t, g, model.Pos(7, 0), model.Pos(7, 1))
	play(t, g, model.Pos(4, 7), model.Pos(4, 6))
	play(t, g, model.Pos(7, 1), model.Pos(7, 0))
	play(t, g, model.Pos(4, 6), model.Pos(4, 7))

	moves := g.LegalMovesFrom(model.Pos(4, 0))
	assert.False(t, model.Contains(moves, model.Pos(6, 0)))
	assert.True(t, model.Contains(moves, model.Pos(2, 0)))
}

type promotionRecorder struct {
	color   model.Color
	square  model.Position
	choices []model.PieceType
	states  int
}

func (p *promotionRecorder) OnStateChanged(model.GameState) { p.states++ }

func (p *promotionRecorder) RequestPromotionChoice(color model.Color, square model.Position, choices []model.PieceType) {
	p.color, p.square, p.choices = color, square, choices
}

func TestPromotion(t *testing.T) {
	b := board(
		model.Place(model.King, model.White, 7, 0),
		model.Place(model.Pawn, model.White, 4, 6),
		model.Place(model.King, model.Black, 0, 7),
	)
	rec := &promotionRecorder{}
	g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(b, model.White), model.WithObserver(rec))

	play(t, g, model.Pos(4, 6), model.Pos(4, 7))

	s := g.State()
	assert.Equal(t, model.PhaseAwaitingPromotion, s.Phase)
	require.NotNil(t, s.Promotion)
	assert.Equal(t, model.White, s.Turn)
	assert.Equal(t, model.White, rec.color)
	assert.Equal(t, model.Pos(4, 7), rec.square)
	assert.Equal(t, []model.PieceType{model.Queen, model.Rook, model.Bishop, model.Knight}, rec.choices)

	g.Click(model.Pos(7, 0))
	assert.Nil(t, g.State().Selected, "clicks are ignored while a promotion is pending")

	g.Promote(model.King)
	s = g.State()
	assert.Equal(t, model.PhaseAwaitingPromotion, s.Phase)
	assert.NotEmpty(t, s.Notice)

	g.Promote(model.Queen)
	s = g.State()
	assert.Equal(t, &model.Piece{Type: model.Queen, Color: model.White}, s.Board.At(model.Pos(4, 7)))
	assert.Nil(t, s.Promotion)
	assert.Equal(t, []string{"Pe7-e8=Q"}, s.MoveHistory)
	assert.Equal(t, model.Black, s.Turn)
	assert.True(t, s.IsCheck)
	assert.Equal(t, "Pawn promoted to queen", s.Notice)
}

func TestUndoRestoresPosition(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}))
	before := g.State()

	g.Undo()
	assert.Equal(t, model.NoticeNothingToUndo, g.State().Notice)

	play(t, g, model.Pos(4, 1), model.Pos(4, 3))
	play(t, g, model.Pos(3, 6), model.Pos(3, 4))
	play(t, g, model.Pos(4, 3), model.Pos(3, 4))
	g.Flip()

	g.Undo()
	g.Undo()
	g.Undo()

	after := g.State()
	assert.Equal(t, model.NoticeMoveUndone, after.Notice)
	assert.True(t, after.Flipped, "undo keeps the orientation")
	assert.False(t, g.CanUndo())
	if diff := cmp.Diff(before, after, cmpopts.IgnoreFields(model.GameState{}, "Notice", "Flipped")); diff != "" {
		t.Errorf("state after undo mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoPendingPromotion(t *testing.T) {
	b := board(
		model.Place(model.King, model.White, 7, 0),
		model.Place(model.Pawn, model.White, 4, 6),
		model.Place(model.King, model.Black, 0, 7),
	)
	g := model.NewGame(chess.New(chess.Options{}), model.WithBoard(b, model.White))
	play(t, g, model.Pos(4, 6), model.Pos(4, 7))

	g.Undo()

	s := g.State()
	assert.Equal(t, model.PhaseNoSelection, s.Phase)
	assert.Nil(t, s.Promotion)
	assert.Equal(t, model.Pawn, s.Board.At(model.Pos(4, 6)).Type)
}

func TestResetKeepsOrientation(t *testing.T) {
	g := model.NewGame(chess.New(chess.Options{}))
	play(t, g, model.Pos(4, 1), model.Pos(4, 3))
	g.Flip()

	g.Reset()

	s := g.State()
	assert.True(t, s.Flipped)
	assert.Empty(t, s.MoveHistory)
	assert.Equal(t, model.White, s.Turn)
	assert.Equal(t, model.Pawn, s.Board.At(model.Pos(4, 1)).Type)
	assert.False(t, g.CanUndo())
}

func TestNewGameFromBoardRejectsMissingKing(t *testing.T) {
	b := board(model.Place(model.King, model.White, 4, 0))
	_, err := model.NewGameFromBoard(chess.New(chess.Options{}), b, model.White)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidBoard)
	assert.ErrorIs(t, err, model.ErrMissingKing)

	_, err = model.NewGameFromBoard(chess.New(chess.Options{}), castlingBoard(), model.Red)
	assert.ErrorIs(t, err, model.ErrUnknownTurn)
}
