package model

type Phase string

const (
	PhaseNoSelection       Phase = "no-selection"
	PhasePieceSelected     Phase = "piece-selected"
	PhaseAwaitingPromotion Phase = "awaiting-promotion"
	PhaseGameOver          Phase = "game-over"
)

// CastlingFlags records which castling pieces have left their home squares.
type CastlingFlags struct {
	WhiteKing  bool `json:"whiteKing"`
	WhiteRookA bool `json:"whiteRookA"`
	WhiteRookH bool `json:"whiteRookH"`
	BlackKing  bool `json:"blackKing"`
	BlackRookA bool `json:"blackRookA"`
	BlackRookH bool `json:"blackRookH"`
}

// PendingPromotion is a pawn move waiting for the player's piece choice.
type PendingPromotion struct {
	Color   Color       `json:"color"`
	Square  Position    `json:"square"`
	Move    Move        `json:"move"`
	Choices []PieceType `json:"choices"`
}

type GameState struct {
	Variant       Variant            `json:"variant"`
	Board         *Board             `json:"board"`
	Turn          Color              `json:"currentTurn"`
	Phase         Phase              `json:"phase"`
	Selected      *Position          `json:"selected"`
	LegalMoves    []Move             `json:"legalMoves"`
	MoveHistory   []string           `json:"moveHistory"`
	Captured      map[Color][]Piece  `json:"captured"`
	KingPositions map[Color]Position `json:"kingPositions"`
	Castling      CastlingFlags      `json:"hasMoved"`
	IsCheck       bool               `json:"isCheck"`
	IsCheckmate   bool               `json:"isCheckmate"`
	GameOver      bool               `json:"gameOver"`
	Winner        *Color             `json:"winner"`
	Promotion     *PendingPromotion  `json:"promotion"`
	Flipped       bool               `json:"flipped"`
	Notice        string             `json:"notice"`
	LastMove      *Move              `json:"lastMove"`
}

func newGameState(r Rules, b *Board, turn Color) GameState {
	sides := r.Sides()
	s := GameState{
		Variant:       r.Variant(),
		Board:         b,
		Turn:          turn,
		Phase:         PhaseNoSelection,
		MoveHistory:   []string{},
		Captured:      map[Color][]Piece{sides[0]: {}, sides[1]: {}},
		KingPositions: map[Color]Position{},
	}
	for _, side := range sides {
		for _, royal := range []PieceType{King, General} {
			if sq, ok := b.Find(royal, side); ok {
				s.KingPositions[side] = sq
			}
		}
	}
	return s
}

// Clone returns a deep copy sharing no memory with s.
func (s GameState) Clone() GameState {
	c := s
	if s.Board != nil {
		c.Board = s.Board.Clone()
	}
	if s.Selected != nil {
		sel := *s.Selected
		c.Selected = &sel
	}
	if s.LegalMoves != nil {
		c.LegalMoves = make([]Move, len(s.LegalMoves))
		for i, m := range s.LegalMoves {
			c.LegalMoves[i] = m.clone()
		}
	}
	c.MoveHistory = append([]string(nil), s.MoveHistory...)
	if s.MoveHistory != nil && c.MoveHistory == nil {
		c.MoveHistory = []string{}
	}
	if s.Captured != nil {
		c.Captured = make(map[Color][]Piece, len(s.Captured))
		for color, pieces := range s.Captured {
			c.Captured[color] = append([]Piece{}, pieces...)
		}
	}
	if s.KingPositions != nil {
		c.KingPositions = make(map[Color]Position, len(s.KingPositions))
		for color, sq := range s.KingPositions {
			c.KingPositions[color] = sq
		}
	}
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	if s.Promotion != nil {
		p := *s.Promotion
		p.Move = s.Promotion.Move.clone()
		p.Choices = append([]PieceType(nil), s.Promotion.Choices...)
		c.Promotion = &p
	}
	if s.LastMove != nil {
		m := s.LastMove.clone()
		c.LastMove = &m
	}
	return c
}

func (m Move) clone() Move {
	if m.Castle != nil {
		cr := *m.Castle
		m.Castle = &cr
	}
	return m
}
