package service

import (
	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/lesson"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/ws"
)

type SessionService struct {
	sessionManager *SessionManager
}

func NewSessionService(sessionManager *SessionManager) *SessionService {
	return &SessionService{
		sessionManager: sessionManager,
	}
}

func (ss *SessionService) CreateSession(clientID string, req CreateRequest) (SessionView, error) {
	s, err := ss.sessionManager.Create(clientID, req)
	if err != nil {
		return SessionView{}, errors.Wrap(err, "failed to create session")
	}
	return s.View(), nil
}

func (ss *SessionService) GetSession(id string) (SessionView, error) {
	s, err := ss.sessionManager.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	return s.View(), nil
}

func (ss *SessionService) DeleteSession(id, clientID string) error {
	return ss.sessionManager.Delete(id, clientID)
}

// HandleInput applies one owner action and returns the resulting view.
func (ss *SessionService) HandleInput(id, clientID string, in Input) (SessionView, error) {
	s, err := ss.sessionManager.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	if s.Owner != clientID {
		return SessionView{}, ErrForbidden
	}
	switch in.Kind {
	case ws.MessageTypeClick, ws.MessageTypePromote, ws.MessageTypeUndo, ws.MessageTypeReset, ws.MessageTypeFlip:
	case ws.MessageTypeAnswer:
		if !s.IsQuiz() {
			return SessionView{}, errors.Wrap(ErrInvalidRequest, "session has no quiz")
		}
	default:
		return SessionView{}, errors.Wrapf(ErrInvalidRequest, "unknown input %q", in.Kind)
	}
	log.WithFields(log.Fields{"session": id, "input": in.Kind}).Debug("input")
	return s.Do(in, ss.sessionManager.cfg.Now()), nil
}

func (ss *SessionService) Click(id, clientID string, sq model.Position) (SessionView, error) {
	return ss.HandleInput(id, clientID, Input{Kind: ws.MessageTypeClick, Square: sq})
}

func (ss *SessionService) Promote(id, clientID string, t model.PieceType) (SessionView, error) {
	return ss.HandleInput(id, clientID, Input{Kind: ws.MessageTypePromote, Piece: t})
}

func (ss *SessionService) Undo(id, clientID string) (SessionView, error) {
	return ss.HandleInput(id, clientID, Input{Kind: ws.MessageTypeUndo})
}

func (ss *SessionService) Reset(id, clientID string) (SessionView, error) {
	return ss.HandleInput(id, clientID, Input{Kind: ws.MessageTypeReset})
}

func (ss *SessionService) Flip(id, clientID string) (SessionView, error) {
	return ss.HandleInput(id, clientID, Input{Kind: ws.MessageTypeFlip})
}

func (ss *SessionService) Answer(id, clientID string, option int) (SessionView, error) {
	return ss.HandleInput(id, clientID, Input{Kind: ws.MessageTypeAnswer, Option: option})
}

func (ss *SessionService) Lessons(v model.Variant) ([]lesson.Lesson, error) {
	lessons := lesson.Catalog(v)
	if lessons == nil {
		return nil, errors.Wrapf(ErrInvalidRequest, "unknown variant %q", v)
	}
	return lessons, nil
}

func (ss *SessionService) RegisterConnection(id, clientID string, conn Conn) error {
	s, err := ss.sessionManager.Get(id)
	if err != nil {
		return err
	}
	return s.Register(clientID, conn)
}

func (ss *SessionService) UnregisterConnection(id, clientID string, conn Conn) {
	s, err := ss.sessionManager.Get(id)
	if err != nil {
		return
	}
	s.Unregister(clientID, conn)
}

// Send writes v to conn without racing the session's broadcasts. Without a
// session there is nothing to race and v is written directly.
func (ss *SessionService) Send(id string, conn Conn, v interface{}) error {
	s, err := ss.sessionManager.Get(id)
	if err != nil {
		return conn.WriteJSON(v)
	}
	return s.Send(conn, v)
}
