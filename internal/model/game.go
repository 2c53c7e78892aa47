package model

import "fmt"

const (
	NoticeNothingToUndo = "No moves to undo"
	NoticeMoveUndone    = "Move undone"
)

// Observer is told about every state change. It receives a copy.
type Observer interface {
	OnStateChanged(state GameState)
}

// PromotionRequester is implemented by observers that present the promotion
// choice. The game stays in PhaseAwaitingPromotion until Promote is called.
type PromotionRequester interface {
	RequestPromotionChoice(color Color, square Position, choices []PieceType)
}

type ObserverFunc func(state GameState)

func (f ObserverFunc) OnStateChanged(state GameState) { f(state) }

// Game is one game instance: a board, whose turn it is, the selection cursor
// and the undo stack. It is not safe for concurrent use.
type Game struct {
	rules     Rules
	state     GameState
	history   []GameState
	initial   *Board
	firstTurn Color
	castling  CastlingFlags
	practice  *Color
	observers []Observer
}

type Option func(*Game)

// WithBoard starts the game from b instead of the ruleset's opening setup.
// The board is not validated; tutorial boards are often deliberately partial.
func WithBoard(b *Board, turn Color) Option {
	return func(g *Game) {
		g.initial = b.Clone()
		g.firstTurn = turn
	}
}

// WithPracticeColor fixes the side to move: the turn never passes to the
// other color. Pieces offer the ruleset's practice moves when it has them, and
// checkmate is not detected.
func WithPracticeColor(c Color) Option {
	return func(g *Game) {
		color := c
		g.practice = &color
		g.firstTurn = c
	}
}

// WithCastling sets which castling pieces count as already moved at the start.
func WithCastling(flags CastlingFlags) Option {
	return func(g *Game) {
		g.castling = flags
	}
}

func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observers = append(g.observers, o)
	}
}

func NewGame(r Rules, opts ...Option) *Game {
	g := &Game{
		rules:     r,
		firstTurn: r.Sides()[0],
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.initial == nil {
		g.initial = r.NewBoard()
	}
	g.state = newGameState(r, g.initial.Clone(), g.firstTurn)
	g.state.Castling = g.castling
	g.refreshCheck()
	return g
}

// NewGameFromBoard starts a full game from an arbitrary position after
// checking it against the ruleset.
func NewGameFromBoard(r Rules, b *Board, turn Color, opts ...Option) (*Game, error) {
	if err := r.Validate(b); err != nil {
		return nil, err
	}
	sides := r.Sides()
	if turn != sides[0] && turn != sides[1] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTurn, turn)
	}
	return NewGame(r, append([]Option{WithBoard(b, turn)}, opts...)...), nil
}

func (g *Game) Rules() Rules { return g.rules }

// State returns a deep copy of the current state.
func (g *Game) State() GameState { return g.state.Clone() }

func (g *Game) Subscribe(o Observer) { g.observers = append(g.observers, o) }

// CanUndo reports whether Undo would restore a previous position.
func (g *Game) CanUndo() bool { return len(g.history) > 0 }

// MoveCount is the number of moves on the undo stack.
func (g *Game) MoveCount() int { return len(g.history) }

// mover is the color allowed to select pieces.
func (g *Game) mover() Color {
	if g.practice != nil {
		return *g.practice
	}
	return g.state.Turn
}

// Click is the single input entry point: it selects, reselects, deselects or
// moves depending on the current selection. Clicks that mean nothing are
// ignored.
func (g *Game) Click(p Position) {
	if g.state.Phase == PhaseGameOver || g.state.Phase == PhaseAwaitingPromotion {
		return
	}
	if !g.state.Board.InBounds(p) {
		return
	}
	g.state.Notice = ""

	if g.state.Selected != nil {
		if m, ok := FindMove(g.state.LegalMoves, p); ok {
			g.executeMove(m)
			g.notify()
			return
		}
		if *g.state.Selected != p {
			if pc := g.state.Board.At(p); pc != nil && pc.Color == g.mover() {
				g.selectPiece(p)
				g.notify()
				return
			}
		}
		g.clearSelection()
		g.notify()
		return
	}

	if pc := g.state.Board.At(p); pc != nil && pc.Color == g.mover() {
		g.selectPiece(p)
		g.notify()
	}
}

// Play selects from and then clicks to. It reports whether a move was made.
func (g *Game) Play(from, to Position) bool {
	before := len(g.history)
	g.Click(from)
	if g.state.Selected == nil || *g.state.Selected != from {
		return false
	}
	g.Click(to)
	return len(g.history) > before
}

// LegalMovesFrom returns the moves the piece on from may make right now, or
// nil when it is not that piece's turn.
func (g *Game) LegalMovesFrom(from Position) []Move {
	pc := g.state.Board.At(from)
	if pc == nil || pc.Color != g.mover() || g.state.GameOver {
		return nil
	}
	return g.moves(from)
}

// moves is what the piece on from is offered in this game.
func (g *Game) moves(from Position) []Move {
	if g.practice != nil {
		if pm, ok := g.rules.(PracticeMover); ok {
			return pm.PracticeMoves(&g.state, from)
		}
	}
	return g.rules.Moves(&g.state, from)
}

func (g *Game) selectPiece(p Position) {
	sel := p
	g.state.Selected = &sel
	g.state.LegalMoves = g.moves(p)
	if g.state.LegalMoves == nil {
		g.state.LegalMoves = []Move{}
	}
	g.state.Phase = PhasePieceSelected
}

func (g *Game) clearSelection() {
	g.state.Selected = nil
	g.state.LegalMoves = nil
	if g.state.Phase == PhasePieceSelected {
		g.state.Phase = PhaseNoSelection
	}
}

func (g *Game) executeMove(m Move) {
	s := &g.state
	moving := *s.Board.At(m.From)

	g.history = append(g.history, g.snapshot())
	g.clearSelection()

	captured := s.Board.Relocate(m.From, m.To)
	last := m.clone()
	s.LastMove = &last
	if captured != nil {
		s.Captured[captured.Color] = append(s.Captured[captured.Color], *captured)
		if captured.Type.IsRoyal() {
			winner := moving.Color
			s.Winner = &winner
			s.GameOver = true
			s.IsCheck = false
			s.Phase = PhaseGameOver
			return
		}
	}

	if moving.Type.IsRoyal() {
		s.KingPositions[moving.Color] = m.To
	}
	g.rules.AfterMove(s, m, moving)

	if g.rules.Promotes(moving, m.To) {
		s.Promotion = &PendingPromotion{
			Color:   moving.Color,
			Square:  m.To,
			Move:    m.clone(),
			Choices: g.rules.PromotionChoices(),
		}
		s.Phase = PhaseAwaitingPromotion
		for _, o := range g.observers {
			if pr, ok := o.(PromotionRequester); ok {
				pr.RequestPromotionChoice(moving.Color, m.To, s.Promotion.Choices)
			}
		}
		return
	}

	s.MoveHistory = append(s.MoveHistory, g.rules.Notate(moving, m))
	g.switchTurn()
}

// Promote resolves a pending promotion. Choices outside the ruleset's list
// leave the game waiting and set a notice.
func (g *Game) Promote(t PieceType) {
	s := &g.state
	if s.Phase != PhaseAwaitingPromotion || s.Promotion == nil {
		return
	}
	allowed := false
	for _, c := range s.Promotion.Choices {
		if c == t {
			allowed = true
			break
		}
	}
	if !allowed {
		s.Notice = fmt.Sprintf("Cannot promote to %s", t)
		g.notify()
		return
	}

	pending := s.Promotion
	pc := s.Board.At(pending.Square)
	if pc == nil {
		return
	}
	pawn := *pc
	pc.Type = t
	s.Promotion = nil
	s.MoveHistory = append(s.MoveHistory, g.rules.NotatePromotion(pawn, pending.Move, t))
	s.Notice = fmt.Sprintf("Pawn promoted to %s", t)
	g.switchTurn()
	g.notify()
}

func (g *Game) switchTurn() {
	if g.practice == nil {
		g.state.Turn = Opponent(g.rules, g.state.Turn)
	}
	g.state.Phase = PhaseNoSelection
	g.refreshCheck()
}

// refreshCheck recomputes check and checkmate for the side to move.
func (g *Game) refreshCheck() {
	s := &g.state
	s.IsCheck = g.rules.InCheck(s.Board, s.Turn)
	s.IsCheckmate = g.practice == nil && g.rules.DetectsCheckmate() && s.IsCheck && !HasAnyLegalMove(g.rules, s, s.Turn)
	if s.IsCheckmate {
		winner := Opponent(g.rules, s.Turn)
		s.Winner = &winner
		s.GameOver = true
		s.Phase = PhaseGameOver
	}
}

// Undo restores the position before the last move. With nothing to undo it
// only sets a notice.
func (g *Game) Undo() {
	if len(g.history) == 0 {
		g.state.Notice = NoticeNothingToUndo
		g.notify()
		return
	}
	prev := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	flipped := g.state.Flipped
	g.state = prev
	g.state.Flipped = flipped
	g.state.Notice = NoticeMoveUndone
	g.notify()
}

// Reset starts over from the initial board. Orientation is kept.
func (g *Game) Reset() {
	flipped := g.state.Flipped
	g.history = nil
	g.state = newGameState(g.rules, g.initial.Clone(), g.firstTurn)
	g.state.Castling = g.castling
	g.state.Flipped = flipped
	g.refreshCheck()
	g.notify()
}

// Flip toggles the display orientation. Square addressing is unaffected.
func (g *Game) Flip() {
	g.state.Flipped = !g.state.Flipped
	g.notify()
}

// snapshot is the undo record for the current position: the state without
// the transient selection and notice.
func (g *Game) snapshot() GameState {
	snap := g.state.Clone()
	snap.Selected = nil
	snap.LegalMoves = nil
	snap.Notice = ""
	if snap.Phase == PhasePieceSelected {
		snap.Phase = PhaseNoSelection
	}
	return snap
}

func (g *Game) notify() {
	if len(g.observers) == 0 {
		return
	}
	for _, o := range g.observers {
		o.OnStateChanged(g.state.Clone())
	}
}
