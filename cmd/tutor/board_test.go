package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/boardtutor-backend/internal/chess"
	"github.com/benbeisheim/boardtutor-backend/internal/lesson"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
	"github.com/benbeisheim/boardtutor-backend/internal/xiangqi"
)

func TestLayoutRoundTrip(t *testing.T) {
	for _, l := range []layout{
		{width: 8, height: 8, bottomUp: true},
		{width: 8, height: 8, bottomUp: true, flipped: true},
		{width: 9, height: 10},
		{width: 9, height: 10, flipped: true},
	} {
		for y := 0; y < l.height; y++ {
			for x := 0; x < l.width; x++ {
				p := model.Pos(x, y)
				col, row := l.cell(p)
				for dx := 0; dx < cellWidth; dx++ {
					got, ok := l.square(col+dx, row)
					require.True(t, ok, "%+v %s", l, p)
					assert.Equal(t, p, got, "%+v", l)
				}
			}
		}
	}
}

func TestLayoutOrientation(t *testing.T) {
	chessBoard := layout{width: 8, height: 8, bottomUp: true}
	col, row := chessBoard.cell(model.Pos(0, 0))
	assert.Equal(t, []int{originX, originY + 7}, []int{col, row}, "a1 bottom left")

	chessBoard.flipped = true
	col, row = chessBoard.cell(model.Pos(0, 0))
	assert.Equal(t, []int{originX + 7*cellWidth, originY}, []int{col, row}, "a1 top right when flipped")

	xiangqiBoard := layout{width: 9, height: 10}
	col, row = xiangqiBoard.cell(model.Pos(4, 9))
	assert.Equal(t, []int{originX + 4*cellWidth, originY + 9}, []int{col, row}, "red general at the bottom")
}

func TestLayoutOutside(t *testing.T) {
	l := layout{width: 8, height: 8, bottomUp: true}
	for _, c := range [][2]int{{0, 0}, {originX - 1, originY}, {originX, originY - 1}, {originX + 8*cellWidth, originY}, {originX, originY + 8}} {
		_, ok := l.square(c[0], c[1])
		assert.False(t, ok, "%v", c)
	}
}

func runeAt(t *testing.T, s tcell.SimulationScreen, col, row int) rune {
	t.Helper()
	cells, width, _ := s.GetContents()
	cell := cells[row*width+col]
	require.NotEmpty(t, cell.Runes)
	return cell.Runes[0]
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(120, 30)
	t.Cleanup(s.Fini)
	return s
}

func TestDrawChess(t *testing.T) {
	s := newScreen(t)
	state := model.NewGame(chess.New(chess.Options{})).State()
	draw(s, service.SessionView{Variant: model.VariantChess, State: state}, "")

	l := layoutFor(state)
	col, row := l.cell(model.Pos(4, 0))
	assert.Equal(t, 'K', runeAt(t, s, col+1, row))
	col, row = l.cell(model.Pos(4, 7))
	assert.Equal(t, 'k', runeAt(t, s, col+1, row))
	assert.Equal(t, '1', runeAt(t, s, 0, originY+7))
	assert.Equal(t, 'a', runeAt(t, s, originX+1, originY+8))
}

func TestDrawXiangqi(t *testing.T) {
	s := newScreen(t)
	state := model.NewGame(xiangqi.New()).State()
	draw(s, service.SessionView{Variant: model.VariantXiangqi, State: state}, "")

	col, row := layoutFor(state).cell(model.Pos(4, 9))
	assert.Equal(t, '帅', runeAt(t, s, col+1, row))
	col, row = layoutFor(state).cell(model.Pos(4, 0))
	assert.Equal(t, '将', runeAt(t, s, col+1, row))
}

func TestDrawQuizOptions(t *testing.T) {
	s := newScreen(t)
	l, err := lesson.Find(model.VariantChess, "opening")
	require.NoError(t, err)
	answer := 2
	state := model.NewGame(chess.New(chess.Options{})).State()
	draw(s, service.SessionView{Variant: model.VariantChess, Lesson: &l, Answer: &answer, State: state}, "")

	cells, width, height := s.GetContents()
	var lines []string
	for row := 0; row < height; row++ {
		var b strings.Builder
		for _, c := range cells[row*width : (row+1)*width] {
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			}
		}
		lines = append(lines, b.String())
	}
	screen := strings.Join(lines, "\n")
	assert.Contains(t, screen, "1. e4")
	assert.Contains(t, screen, "3. d4")
	assert.Contains(t, screen, "press a number to answer")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"move the", "knight to", "f3"}, wrap("move the knight to f3", 9))
	assert.Nil(t, wrap("   ", 10))
	assert.Equal(t, []string{"unbreakableword"}, wrap("unbreakableword", 4))
}

func TestStatus(t *testing.T) {
	white := model.White
	assert.Equal(t, "white to move", status(model.GameState{Turn: model.White}))
	assert.Equal(t, "black to move, in check", status(model.GameState{Turn: model.Black, IsCheck: true}))
	assert.Equal(t, "Checkmate, white wins", status(model.GameState{IsCheckmate: true, GameOver: true, Winner: &white}))
	assert.Equal(t, "Game over, white wins", status(model.GameState{GameOver: true, Winner: &white}))
}
