package main

import (
	"unicode"

	"github.com/apex/log"
	"github.com/gdamore/tcell/v2"

	"github.com/benbeisheim/boardtutor-backend/internal/chess"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
	"github.com/benbeisheim/boardtutor-backend/internal/ws"
)

const localClient = "terminal"

// tutor is the terminal adapter around one session: tcell events become
// session inputs and every resulting view is redrawn.
type tutor struct {
	sessions *service.SessionService
	id       string
	view     service.SessionView
	buttons  tcell.ButtonMask
	errMsg   string
}

func newTutor(sessions *service.SessionService, req service.CreateRequest) (*tutor, error) {
	view, err := sessions.CreateSession(localClient, req)
	if err != nil {
		return nil, err
	}
	return &tutor{sessions: sessions, id: view.ID, view: view}, nil
}

func (t *tutor) run(screen tcell.Screen) {
	draw(screen, t.view, t.errMsg)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		if t.handle(ev) {
			return
		}
		draw(screen, t.view, t.errMsg)
	}
}

// handle applies one event and reports whether the user asked to quit.
func (t *tutor) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
		default:
			return false
		}
		r := unicode.ToLower(ev.Rune())
		// While a promotion is pending q, r, b and n pick the piece.
		if t.view.State.Promotion != nil {
			if piece, ok := chess.PieceFromLetter(string(r)); ok {
				t.input(service.Input{Kind: ws.MessageTypePromote, Piece: piece})
			}
			return false
		}
		if t.view.Lesson != nil && len(t.view.Lesson.Options) > 0 && r >= '1' && r <= '9' {
			t.input(service.Input{Kind: ws.MessageTypeAnswer, Option: int(r - '1')})
			return false
		}
		switch r {
		case 'q':
			return true
		case 'u':
			t.input(service.Input{Kind: ws.MessageTypeUndo})
		case 'r':
			t.input(service.Input{Kind: ws.MessageTypeReset})
		case 'f':
			t.input(service.Input{Kind: ws.MessageTypeFlip})
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
		t.buttons = buttons
		if !pressed {
			return false
		}
		col, row := ev.Position()
		if sq, ok := layoutFor(t.view.State).square(col, row); ok {
			t.input(service.Input{Kind: ws.MessageTypeClick, Square: sq})
		}
	}
	return false
}

func (t *tutor) input(in service.Input) {
	view, err := t.sessions.HandleInput(t.id, localClient, in)
	if err != nil {
		log.WithError(err).WithField("input", in.Kind).Error("input rejected")
		t.errMsg = err.Error()
		return
	}
	t.view = view
	t.errMsg = ""
}
