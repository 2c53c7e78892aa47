package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/benbeisheim/boardtutor-backend/internal/chess"
	"github.com/benbeisheim/boardtutor-backend/internal/lesson"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
	"github.com/benbeisheim/boardtutor-backend/internal/xiangqi"
)

const (
	cellWidth  = 4
	originX    = 3
	originY    = 1
	panelGap   = 3
	panelWidth = 44
	movesShown = 8
)

var variantTitles = map[model.Variant]string{
	model.VariantChess:   "Chess",
	model.VariantXiangqi: "Xiangqi",
}

var (
	lightSquare = tcell.StyleDefault.Background(tcell.NewRGBColor(240, 217, 181))
	darkSquare  = tcell.StyleDefault.Background(tcell.NewRGBColor(181, 136, 99))
	boardPoint  = tcell.StyleDefault.Background(tcell.NewRGBColor(222, 184, 135))
	riverPoint  = tcell.StyleDefault.Background(tcell.NewRGBColor(173, 216, 230))
	palacePoint = tcell.StyleDefault.Background(tcell.NewRGBColor(205, 160, 110))
	selectedBg  = tcell.NewRGBColor(246, 246, 105)
	targetBg    = tcell.NewRGBColor(130, 200, 120)
	captureBg   = tcell.NewRGBColor(220, 110, 100)
	lastMoveBg  = tcell.NewRGBColor(205, 210, 106)
)

// layout maps board squares to screen cells and back. Chess draws rank 0 on
// the bottom row, xiangqi draws row 0 (black's back rank) on top. Flipping
// rotates either by half a turn.
type layout struct {
	width, height int
	bottomUp      bool
	flipped       bool
}

func layoutFor(s model.GameState) layout {
	l := layout{bottomUp: s.Variant == model.VariantChess, flipped: s.Flipped}
	if s.Board != nil {
		l.width, l.height = s.Board.Width, s.Board.Height
	}
	return l
}

// orient converts between board and display indices. It is its own inverse.
func (l layout) orient(x, y int) (int, int) {
	if l.bottomUp {
		y = l.height - 1 - y
	}
	if l.flipped {
		x, y = l.width-1-x, l.height-1-y
	}
	return x, y
}

// cell is the leftmost screen column and the row of square p.
func (l layout) cell(p model.Position) (int, int) {
	x, y := l.orient(p.X, p.Y)
	return originX + x*cellWidth, originY + y
}

// square is the board square under a screen cell, if any.
func (l layout) square(col, row int) (model.Position, bool) {
	if col < originX || row < originY {
		return model.Position{}, false
	}
	x, y := (col-originX)/cellWidth, row-originY
	if x >= l.width || y >= l.height {
		return model.Position{}, false
	}
	x, y = l.orient(x, y)
	return model.Pos(x, y), true
}

func draw(s tcell.Screen, v service.SessionView, errMsg string) {
	s.Clear()
	if v.State.Board != nil {
		drawBoard(s, v.State)
		drawPanel(s, v, errMsg)
	}
	s.Show()
}

func drawBoard(s tcell.Screen, st model.GameState) {
	l := layoutFor(st)
	targets := map[model.Position]bool{}
	for _, m := range st.LegalMoves {
		targets[m.To] = m.Capture
	}

	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			p := model.Pos(x, y)
			style := squareStyle(st.Variant, p)
			if st.LastMove != nil && (st.LastMove.From == p || st.LastMove.To == p) {
				style = style.Background(lastMoveBg)
			}
			if capture, ok := targets[p]; ok {
				if capture {
					style = style.Background(captureBg)
				} else {
					style = style.Background(targetBg)
				}
			}
			if st.Selected != nil && *st.Selected == p {
				style = style.Background(selectedBg)
			}

			col, row := l.cell(p)
			drawText(s, col, row, style, strings.Repeat(" ", cellWidth))
			if pc := st.Board.At(p); pc != nil {
				drawText(s, col+1, row, style.Foreground(pieceColor(pc.Color)).Bold(true), pieceLabel(st.Variant, *pc))
			}
		}
	}

	for x := 0; x < l.width; x++ {
		col, _ := l.cell(model.Pos(x, 0))
		drawText(s, col+1, originY+l.height, tcell.StyleDefault, fileLabel(st.Variant, x))
	}
	for y := 0; y < l.height; y++ {
		_, row := l.cell(model.Pos(0, y))
		drawText(s, 0, row, tcell.StyleDefault, rankLabel(st.Variant, y))
	}
}

func squareStyle(v model.Variant, p model.Position) tcell.Style {
	if v == model.VariantChess {
		if (p.X+p.Y)%2 == 0 {
			return darkSquare
		}
		return lightSquare
	}
	switch {
	case p.Y == 4 || p.Y == 5:
		return riverPoint
	case p.X >= 3 && p.X <= 5 && (p.Y <= 2 || p.Y >= 7):
		return palacePoint
	}
	return boardPoint
}

func pieceColor(c model.Color) tcell.Color {
	switch c {
	case model.White:
		return tcell.ColorWhite
	case model.Red:
		return tcell.ColorDarkRed
	}
	return tcell.ColorBlack
}

// pieceLabel is upper case for white and lower case for black in chess, and
// the piece's character in xiangqi.
func pieceLabel(v model.Variant, pc model.Piece) string {
	if v == model.VariantXiangqi {
		return xiangqi.Glyph(pc)
	}
	l := chess.Letter(pc.Type)
	if pc.Color == model.Black {
		l = strings.ToLower(l)
	}
	return l
}

func fileLabel(v model.Variant, x int) string {
	if v == model.VariantChess {
		return string(rune('a' + x))
	}
	return fmt.Sprint(x)
}

func rankLabel(v model.Variant, y int) string {
	if v == model.VariantChess {
		return fmt.Sprint(y + 1)
	}
	return fmt.Sprint(y)
}

func drawPanel(s tcell.Screen, v service.SessionView, errMsg string) {
	st := v.State
	col := originX + st.Board.Width*cellWidth + panelGap
	row := originY
	line := func(style tcell.Style, text string) {
		for _, wrapped := range wrap(text, panelWidth) {
			drawText(s, col, row, style, wrapped)
			row++
		}
	}
	bold := tcell.StyleDefault.Bold(true)

	if v.Lesson != nil {
		line(bold, v.Lesson.Title)
		line(tcell.StyleDefault, v.Lesson.Instructions)
	} else {
		line(bold, variantTitles[v.Variant]+" game")
	}
	row++

	line(tcell.StyleDefault, status(st))
	if v.Feedback != nil && v.Feedback.Message != "" {
		line(feedbackStyle(v.Feedback.Kind), v.Feedback.Message)
	}
	if st.Notice != "" {
		line(tcell.StyleDefault.Italic(true), st.Notice)
	}
	if errMsg != "" {
		line(tcell.StyleDefault.Foreground(tcell.ColorRed), errMsg)
	}
	if st.Promotion != nil {
		line(bold, "Promote to: [q]ueen [r]ook [b]ishop k[n]ight")
	}
	if v.Lesson != nil && len(v.Lesson.Options) > 0 {
		row++
		for i, o := range v.Lesson.Options {
			style := tcell.StyleDefault
			if v.Answer != nil && *v.Answer == i {
				style = style.Reverse(true)
			}
			text := fmt.Sprintf("%d. %s", i+1, o.Text)
			if o.Detail != "" {
				text += " (" + o.Detail + ")"
			}
			line(style, text)
		}
		line(tcell.StyleDefault.Dim(true), "press a number to answer")
	}
	if v.Lesson == nil {
		line(tcell.StyleDefault, fmt.Sprintf("Material: %+g", v.Material))
	}
	row++

	if n := len(st.MoveHistory); n > 0 {
		line(bold, "Moves")
		start := 0
		if n > movesShown {
			start = n - movesShown
		}
		for i := start; i < n; i++ {
			line(tcell.StyleDefault, fmt.Sprintf("%3d. %s", i+1, st.MoveHistory[i]))
		}
		row++
	}

	line(tcell.StyleDefault.Dim(true), "click select/move  u undo  r reset  f flip  q quit")
}

func status(st model.GameState) string {
	switch {
	case st.IsCheckmate && st.Winner != nil:
		return fmt.Sprintf("Checkmate, %s wins", *st.Winner)
	case st.GameOver && st.Winner != nil:
		return fmt.Sprintf("Game over, %s wins", *st.Winner)
	case st.IsCheck:
		return fmt.Sprintf("%s to move, in check", st.Turn)
	}
	return fmt.Sprintf("%s to move", st.Turn)
}

func feedbackStyle(k lesson.FeedbackKind) tcell.Style {
	switch k {
	case lesson.FeedbackSuccess:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case lesson.FeedbackError:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	return tcell.StyleDefault
}

// drawText writes str from (col, row) and returns the column after it.
func drawText(s tcell.Screen, col, row int, style tcell.Style, str string) int {
	for _, r := range str {
		s.SetContent(col, row, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col
}

// wrap breaks text on spaces into lines at most width cells wide.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && runewidth.StringWidth(cur.String())+1+runewidth.StringWidth(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
