package service

import (
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/chess"
	"github.com/benbeisheim/boardtutor-backend/internal/lesson"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/xiangqi"
)

// CreateRequest describes a new session. Lesson and FEN are mutually
// exclusive; FEN is only understood for chess.
type CreateRequest struct {
	Variant model.Variant `json:"variant"`
	Lesson  string        `json:"lesson,omitempty"`
	FEN     string        `json:"fen,omitempty"`
}

type ManagerConfig struct {
	// StrictChess enables self-check filtering and checkmate in chess.
	StrictChess bool
	// SessionTTL is how long a session may sit unused before it is removed.
	// Zero disables the sweeper.
	SessionTTL    time.Duration
	SweepInterval time.Duration
	Now           func() time.Time
}

type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	cfg      ManagerConfig
	done     chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(cfg ManagerConfig) *SessionManager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	sm := &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		done:     make(chan struct{}),
	}

	if cfg.SessionTTL > 0 {
		go sm.processExpiry()
	}

	return sm
}

// Close stops the sweeper and disconnects every watcher.
func (sm *SessionManager) Close() {
	sm.stopOnce.Do(func() { close(sm.done) })

	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, s := range sm.sessions {
		s.closeAll()
		delete(sm.sessions, id)
	}
}

func (sm *SessionManager) processExpiry() {
	ticker := time.NewTicker(sm.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sm.done:
			return
		case <-ticker.C:
			sm.Sweep()
		}
	}
}

// Sweep removes sessions idle for longer than the TTL and reports how many
// were removed.
func (sm *SessionManager) Sweep() int {
	if sm.cfg.SessionTTL <= 0 {
		return 0
	}
	cutoff := sm.cfg.Now().Add(-sm.cfg.SessionTTL)

	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for id, s := range sm.sessions {
		if s.idleSince().Before(cutoff) {
			s.closeAll()
			delete(sm.sessions, id)
			removed++
			log.WithField("session", id).Info("session expired")
		}
	}
	return removed
}

func rulesFor(v model.Variant, strictChess bool) (model.Rules, map[model.PieceType]float64, error) {
	switch v {
	case model.VariantChess:
		return chess.New(chess.Options{StrictLegality: strictChess}), chess.Values, nil
	case model.VariantXiangqi:
		return xiangqi.New(), xiangqi.Values, nil
	}
	return nil, nil, errors.Wrapf(ErrInvalidRequest, "unknown variant %q", v)
}

func (sm *SessionManager) build(req CreateRequest) (*model.Game, *lesson.Run, map[model.PieceType]float64, error) {
	rules, values, err := rulesFor(req.Variant, sm.cfg.StrictChess)
	if err != nil {
		return nil, nil, nil, err
	}

	switch {
	case req.Lesson != "" && req.FEN != "":
		return nil, nil, nil, errors.Wrap(ErrInvalidRequest, "lesson and fen are mutually exclusive")
	case req.Lesson != "":
		l, err := lesson.Find(req.Variant, req.Lesson)
		if err != nil {
			return nil, nil, nil, errors.Wrap(ErrInvalidRequest, err.Error())
		}
		run, err := lesson.Start(l, rules)
		if err != nil {
			return nil, nil, nil, errors.Wrap(ErrInvalidRequest, err.Error())
		}
		return run.Game(), run, values, nil
	case req.FEN != "":
		cr, ok := rules.(*chess.Rules)
		if !ok {
			return nil, nil, nil, errors.Wrapf(ErrInvalidRequest, "fen is not supported for %s", req.Variant)
		}
		g, err := chess.NewGameFromFEN(cr, req.FEN)
		if err != nil {
			return nil, nil, nil, errors.Wrap(ErrInvalidRequest, err.Error())
		}
		return g, nil, values, nil
	}
	return model.NewGame(rules), nil, values, nil
}

func (sm *SessionManager) Create(owner string, req CreateRequest) (*Session, error) {
	id := uuid.New().String()
	game, run, values, err := sm.build(req)
	if err != nil {
		return nil, err
	}
	s := newSession(id, owner, game, run, values, sm.cfg.Now())

	sm.mu.Lock()
	sm.sessions[id] = s
	sm.mu.Unlock()

	log.WithFields(log.Fields{
		"session": id,
		"owner":   owner,
		"variant": req.Variant,
		"lesson":  req.Lesson,
	}).Info("session created")
	return s, nil
}

func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, exists := sm.sessions[id]
	if !exists {
		return nil, errors.Wrap(ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete ends a session. Only its owner may do so.
func (sm *SessionManager) Delete(id, clientID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, exists := sm.sessions[id]
	if !exists {
		return errors.Wrap(ErrSessionNotFound, id)
	}
	if s.Owner != clientID {
		return ErrForbidden
	}
	s.closeAll()
	delete(sm.sessions, id)
	log.WithFields(log.Fields{"session": id, "client": clientID}).Info("session deleted")
	return nil
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
