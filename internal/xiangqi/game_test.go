package xiangqi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/xiangqi"
)

func TestStartingBoardIsValid(t *testing.T) {
	r := xiangqi.New()
	require.NoError(t, r.Validate(r.NewBoard()))

	b := board(
		model.Place(model.General, model.Red, 4, 5),
		model.Place(model.General, model.Black, 4, 0),
		model.Place(model.Elephant, model.Black, 2, 7),
	)
	err := r.Validate(b)
	assert.ErrorIs(t, err, model.ErrInvalidBoard)
	assert.ErrorIs(t, err, xiangqi.ErrOutOfPlace)

	err = r.Validate(board(model.Place(model.General, model.Red, 4, 9)))
	assert.ErrorIs(t, err, model.ErrMissingKing)
}

func TestOpeningMove(t *testing.T) {
	g := model.NewGame(xiangqi.New())

	require.True(t, g.Play(model.Pos(1, 7), model.Pos(4, 7)))

	s := g.State()
	assert.Equal(t, []string{"红炮 1,7→4,7"}, s.MoveHistory)
	assert.Equal(t, model.Black, s.Turn)
	assert.False(t, s.IsCheck)
}

func TestCannonCaptureRecordsMaterial(t *testing.T) {
	g := model.NewGame(xiangqi.New())

	require.True(t, g.Play(model.Pos(1, 7), model.Pos(1, 0)))

	s := g.State()
	assert.Equal(t, []string{"红炮 1,7→1,0"}, s.MoveHistory)
	require.Len(t, s.Captured[model.Black], 1)
	assert.Equal(t, model.Horse, s.Captured[model.Black][0].Type)
	assert.Equal(t, 4.0, model.Material(g.Rules(), s, xiangqi.Values))
}

func TestMovesMayNotOpenTheFile(t *testing.T) {
	b := board(
		model.Place(model.General, model.Red, 4, 9),
		model.Place(model.General, model.Black, 4, 0),
		model.Place(model.Chariot, model.Red, 4, 5),
	)
	g, err := model.NewGameFromBoard(xiangqi.New(), b, model.Red)
	require.NoError(t, err)

	moves := g.LegalMovesFrom(model.Pos(4, 5))
	require.NotEmpty(t, moves)
	for _, m := range moves {
		assert.Equal(t, 4, m.To.X, "chariot left the file at %s", m.To)
	}
}

func mateBoard(extra ...model.Placement) *model.Board {
	return board(append([]model.Placement{
		model.Place(model.General, model.Black, 3, 0),
		model.Place(model.General, model.Red, 5, 9),
		model.Place(model.Chariot, model.Red, 1, 5),
	}, extra...)...)
}

func TestCheckmate(t *testing.T) {
	g, err := model.NewGameFromBoard(xiangqi.New(), mateBoard(model.Place(model.Chariot, model.Red, 0, 1)), model.Red)
	require.NoError(t, err)

	require.True(t, g.Play(model.Pos(1, 5), model.Pos(1, 0)))

	s := g.State()
	assert.True(t, s.IsCheck)
	assert.True(t, s.IsCheckmate)
	assert.True(t, s.GameOver)
	require.NotNil(t, s.Winner)
	assert.Equal(t, model.Red, *s.Winner)

	g.Click(model.Pos(3, 0))
	assert.Nil(t, g.State().Selected)
}

func TestCheckWithEscape(t *testing.T) {
	g, err := model.NewGameFromBoard(xiangqi.New(), mateBoard(), model.Red)
	require.NoError(t, err)

	require.True(t, g.Play(model.Pos(1, 5), model.Pos(1, 0)))

	s := g.State()
	assert.True(t, s.IsCheck)
	assert.False(t, s.IsCheckmate)
	assert.False(t, s.GameOver)
	assert.ElementsMatch(t, []model.Position{{X: 3, Y: 1}}, model.Destinations(g.LegalMovesFrom(model.Pos(3, 0))))
}

func TestPracticeKeepsTurn(t *testing.T) {
	b := board(model.Place(model.Soldier, model.Red, 4, 6))
	g := model.NewGame(xiangqi.New(), model.WithBoard(b, model.Red), model.WithPracticeColor(model.Red))

	require.True(t, g.Play(model.Pos(4, 6), model.Pos(4, 5)))
	require.True(t, g.Play(model.Pos(4, 5), model.Pos(4, 4)))

	s := g.State()
	assert.Equal(t, model.Red, s.Turn)
	assert.Len(t, s.MoveHistory, 2)
	assert.Equal(t, "红兵 4,5→4,4", s.MoveHistory[1])
}

func TestPracticeOffersUnfilteredMoves(t *testing.T) {
	b := board(
		model.Place(model.General, model.Red, 4, 8),
		model.Place(model.Chariot, model.Black, 4, 3),
	)
	full := model.NewGame(xiangqi.New(), model.WithBoard(b, model.Red))
	practice := model.NewGame(xiangqi.New(), model.WithBoard(b, model.Red), model.WithPracticeColor(model.Red))

	assert.ElementsMatch(t,
		[]model.Position{{X: 3, Y: 8}, {X: 5, Y: 8}},
		model.Destinations(full.LegalMovesFrom(model.Pos(4, 8))))
	assert.ElementsMatch(t,
		[]model.Position{{X: 3, Y: 8}, {X: 5, Y: 8}, {X: 4, Y: 7}, {X: 4, Y: 9}},
		model.Destinations(practice.LegalMovesFrom(model.Pos(4, 8))))

	require.True(t, practice.Play(model.Pos(4, 8), model.Pos(4, 9)))
	s := practice.State()
	assert.True(t, s.IsCheck)
	assert.False(t, s.IsCheckmate, "practice boards never end in checkmate")
}

func TestPracticeKeepsFlyingGeneralRule(t *testing.T) {
	b := board(
		model.Place(model.General, model.Red, 5, 8),
		model.Place(model.General, model.Black, 4, 1),
	)
	g := model.NewGame(xiangqi.New(), model.WithBoard(b, model.Red), model.WithPracticeColor(model.Red))
	assert.False(t, model.Contains(g.LegalMovesFrom(model.Pos(5, 8)), model.Pos(4, 8)))
}
