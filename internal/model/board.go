package model

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
	Red   Color = "red"
)

type PieceType string

// Western chess pieces.
const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Xiangqi pieces.
const (
	General  PieceType = "general"
	Advisor  PieceType = "advisor"
	Elephant PieceType = "elephant"
	Horse    PieceType = "horse"
	Chariot  PieceType = "chariot"
	Cannon   PieceType = "cannon"
	Soldier  PieceType = "soldier"
)

// IsRoyal reports whether losing this piece loses the game.
func (p PieceType) IsRoyal() bool {
	return p == King || p == General
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// BoardReader is the read-only view move generators work against.
type BoardReader interface {
	InBounds(p Position) bool
	At(p Position) *Piece
}

// Board is a Width x Height grid indexed Cells[y][x].
type Board struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Cells  [][]*Piece `json:"cells"`
}

// Placement puts one piece on one square when building a board.
type Placement struct {
	Piece    Piece
	Position Position
}

func Place(t PieceType, c Color, x, y int) Placement {
	return Placement{Piece: Piece{Type: t, Color: c}, Position: Pos(x, y)}
}

func NewBoard(width, height int) *Board {
	b := &Board{Width: width, Height: height}
	for y := 0; y < height; y++ {
		b.Cells = append(b.Cells, make([]*Piece, width))
	}
	return b
}

// NewBoardWith builds a board and places pieces on it. Later placements on the
// same square replace earlier ones.
func NewBoardWith(width, height int, placements ...Placement) *Board {
	b := NewBoard(width, height)
	for _, pl := range placements {
		if !b.InBounds(pl.Position) {
			continue
		}
		pc := pl.Piece
		b.Set(pl.Position, &pc)
	}
	return b
}

func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// At returns the piece on p, or nil for empty or out-of-range squares.
func (b *Board) At(p Position) *Piece {
	if !b.InBounds(p) {
		return nil
	}
	return b.Cells[p.Y][p.X]
}

func (b *Board) Set(p Position, piece *Piece) {
	if !b.InBounds(p) {
		return
	}
	b.Cells[p.Y][p.X] = piece
}

// Relocate moves whatever stands on from to to and returns the piece that was
// on to before the move.
func (b *Board) Relocate(from, to Position) *Piece {
	captured := b.At(to)
	b.Set(to, b.At(from))
	b.Set(from, nil)
	return captured
}

func (b *Board) Clone() *Board {
	c := NewBoard(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if pc := b.Cells[y][x]; pc != nil {
				cp := *pc
				c.Cells[y][x] = &cp
			}
		}
	}
	return c
}

// Find returns the first square, in row-major order, holding the given piece.
func (b *Board) Find(t PieceType, c Color) (Position, bool) {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if pc := b.Cells[y][x]; pc != nil && pc.Type == t && pc.Color == c {
				return Pos(x, y), true
			}
		}
	}
	return Position{}, false
}

// Occupied lists the squares holding pieces of color c in row-major order.
func (b *Board) Occupied(c Color) []Position {
	var out []Position
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if pc := b.Cells[y][x]; pc != nil && pc.Color == c {
				out = append(out, Pos(x, y))
			}
		}
	}
	return out
}

// Count returns how many pieces of the given type and color are on the board.
func (b *Board) Count(t PieceType, c Color) int {
	n := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if pc := b.Cells[y][x]; pc != nil && pc.Type == t && pc.Color == c {
				n++
			}
		}
	}
	return n
}
