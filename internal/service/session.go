package service

import (
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/benbeisheim/boardtutor-backend/internal/lesson"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Connections are the watchers of one session, keyed by client id.
type Connections struct {
	conns map[string]Conn
	mu    sync.RWMutex
}

func NewConnections() *Connections {
	return &Connections{conns: make(map[string]Conn)}
}

// SessionView is what clients receive: the game state plus session metadata.
type SessionView struct {
	ID        string           `json:"id"`
	Variant   model.Variant    `json:"variant"`
	Owner     string           `json:"owner"`
	Lesson    *lesson.Lesson   `json:"lesson,omitempty"`
	Feedback  *lesson.Feedback `json:"feedback,omitempty"`
	Completed bool             `json:"completed"`
	Answer    *int             `json:"answer,omitempty"`
	Material  float64          `json:"material"`
	CanUndo   bool             `json:"canUndo"`
	State     model.GameState  `json:"state"`
}

// Session is one game or lesson run shared by its owner and any watchers.
// All access to the game goes through mu.
type Session struct {
	ID        string
	Owner     string
	Variant   model.Variant
	CreatedAt time.Time

	mu          sync.Mutex
	sendMu      sync.Mutex
	lastUsed    time.Time
	game        *model.Game
	run         *lesson.Run
	values      map[model.PieceType]float64
	connections *Connections
}

func newSession(id, owner string, game *model.Game, run *lesson.Run, values map[model.PieceType]float64, now time.Time) *Session {
	s := &Session{
		ID:          id,
		Owner:       owner,
		Variant:     game.Rules().Variant(),
		CreatedAt:   now,
		lastUsed:    now,
		game:        game,
		run:         run,
		values:      values,
		connections: NewConnections(),
	}
	game.Subscribe(sessionObserver{s})
	return s
}

// sessionObserver logs what the game reports. Broadcasting happens in
// Session.Do once the game lock is released.
type sessionObserver struct {
	s *Session
}

func (o sessionObserver) OnStateChanged(state model.GameState) {
	log.WithFields(log.Fields{
		"session": o.s.ID,
		"phase":   state.Phase,
		"turn":    state.Turn,
		"moves":   len(state.MoveHistory),
	}).Debug("state changed")
}

func (o sessionObserver) RequestPromotionChoice(color model.Color, square model.Position, choices []model.PieceType) {
	log.WithFields(log.Fields{
		"session": o.s.ID,
		"color":   color,
		"square":  square,
		"choices": choices,
	}).Info("promotion choice requested")
}

// Input is one user action against a session.
type Input struct {
	Kind   ws.MessageType
	Square model.Position
	Piece  model.PieceType
	Option int
}

func (s *Session) apply(in Input) {
	if s.run != nil {
		switch in.Kind {
		case ws.MessageTypeClick:
			s.run.Click(in.Square)
		case ws.MessageTypePromote:
			s.run.Promote(in.Piece)
		case ws.MessageTypeUndo:
			s.run.Undo()
		case ws.MessageTypeReset:
			s.run.Reset()
		case ws.MessageTypeFlip:
			s.run.Flip()
		case ws.MessageTypeAnswer:
			s.run.SelectAnswer(in.Option)
		}
		return
	}
	switch in.Kind {
	case ws.MessageTypeClick:
		s.game.Click(in.Square)
	case ws.MessageTypePromote:
		s.game.Promote(in.Piece)
	case ws.MessageTypeUndo:
		s.game.Undo()
	case ws.MessageTypeReset:
		s.game.Reset()
	case ws.MessageTypeFlip:
		s.game.Flip()
	}
}

// Do applies in under the session lock and broadcasts the new view once the
// lock is released. sendMu keeps broadcasts in input order.
func (s *Session) Do(in Input, now time.Time) SessionView {
	s.mu.Lock()
	s.lastUsed = now
	s.apply(in)
	view := s.view()
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()

	s.broadcast(view)
	return view
}

// IsQuiz reports whether the session runs a quiz lesson. The lesson never
// changes after creation, so no lock is needed.
func (s *Session) IsQuiz() bool { return s.run != nil && s.run.IsQuiz() }

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() SessionView {
	state := s.game.State()
	v := SessionView{
		ID:       s.ID,
		Variant:  s.Variant,
		Owner:    s.Owner,
		Material: model.Material(s.game.Rules(), state, s.values),
		CanUndo:  s.game.CanUndo(),
		State:    state,
	}
	if s.run != nil {
		l := s.run.Lesson()
		fb := s.run.Feedback()
		v.Lesson = &l
		v.Feedback = &fb
		v.Completed = s.run.Completed()
		if a, ok := s.run.Answer(); ok {
			v.Answer = &a
		}
	}
	return v
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Register adds a watcher and sends it the current view. A second connection
// from the same client is refused.
func (s *Session) Register(clientID string, conn Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.conns[clientID]; exists {
		s.connections.mu.Unlock()
		return ErrDuplicateConn
	}
	s.connections.conns[clientID] = conn
	s.connections.mu.Unlock()

	log.WithFields(log.Fields{"session": s.ID, "client": clientID}).Info("connection registered")

	s.mu.Lock()
	view := s.view()
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()

	s.broadcast(view)
	return nil
}

// Unregister removes the watcher only if conn is still the registered one.
func (s *Session) Unregister(clientID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, exists := s.connections.conns[clientID]; exists && current == conn {
		delete(s.connections.conns, clientID)
		log.WithFields(log.Fields{"session": s.ID, "client": clientID}).Info("connection unregistered")
	}
}

func (s *Session) ConnectionCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.conns)
}

// closeAll drops every watcher, used when the session ends.
func (s *Session) closeAll() {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for clientID, conn := range s.connections.conns {
		conn.Close()
		delete(s.connections.conns, clientID)
	}
}

// Send writes v to a single connection, ordered with broadcasts.
func (s *Session) Send(conn Conn, v interface{}) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return conn.WriteJSON(v)
}

// broadcast writes view to every watcher. Failed connections are dropped.
// Callers hold sendMu.
func (s *Session) broadcast(view SessionView) {
	msg, err := ws.NewMessage(ws.MessageTypeState, view)
	if err != nil {
		log.WithError(err).WithField("session", s.ID).Error("encode state")
		return
	}

	s.connections.mu.RLock()
	active := make(map[string]Conn, len(s.connections.conns))
	for clientID, conn := range s.connections.conns {
		active[clientID] = conn
	}
	s.connections.mu.RUnlock()

	for clientID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.WithError(err).WithFields(log.Fields{"session": s.ID, "client": clientID}).Warn("send state failed")
			s.Unregister(clientID, conn)
		}
	}
}
