// Package lesson runs the single-side practice boards: a small position, a
// goal, and feedback after every move.
package lesson

import (
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

var (
	ErrUnknownLesson   = errors.New("unknown lesson")
	ErrVariantMismatch = errors.New("lesson and ruleset variants differ")
)

type GoalKind string

const (
	GoalReach     GoalKind = "reach"
	GoalCapture   GoalKind = "capture"
	GoalLeaveFile GoalKind = "leave-file"
	GoalCastle    GoalKind = "castle"
	GoalPromote   GoalKind = "promote"
	GoalFree      GoalKind = "free"
	// GoalQuiz is answered by picking an option; the board is only shown.
	GoalQuiz GoalKind = "quiz"
)

// Goal is what the learner must do to finish a lesson. Only the fields the
// kind uses are set.
type Goal struct {
	Kind   GoalKind        `json:"kind"`
	Square *model.Position `json:"square,omitempty"`
	Piece  model.PieceType `json:"piece,omitempty"`
	File   int             `json:"file,omitempty"`
}

// QuizOption is one answer to a quiz lesson's question. Whether it is correct
// is not sent to clients.
type QuizOption struct {
	Text    string `json:"text"`
	Detail  string `json:"detail,omitempty"`
	Correct bool   `json:"-"`
}

type Lesson struct {
	ID           string            `json:"id"`
	Variant      model.Variant     `json:"variant"`
	Title        string            `json:"title"`
	Instructions string            `json:"instructions"`
	Color        model.Color       `json:"color"`
	Goal         Goal              `json:"goal"`
	Pieces       []model.Placement `json:"-"`
	// FullBoard starts from the ruleset's opening position instead of Pieces.
	FullBoard bool         `json:"-"`
	Question  string       `json:"question,omitempty"`
	Options   []QuizOption `json:"options,omitempty"`

	// Success is shown when the goal is met, Hint after any other move.
	Success string `json:"-"`
	Hint    string `json:"-"`
}

type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
	FeedbackInfo    FeedbackKind = "info"
)

type Feedback struct {
	Kind    FeedbackKind `json:"kind"`
	Message string       `json:"message"`
}

// Run is one attempt at a lesson. Like model.Game it is not safe for
// concurrent use.
type Run struct {
	lesson    Lesson
	game      *model.Game
	feedback  Feedback
	completed bool
	answer    *int
}

// Start sets up l on a board sized for rules. Only l.Color ever moves.
func Start(l Lesson, rules model.Rules, opts ...model.Option) (*Run, error) {
	if rules.Variant() != l.Variant {
		return nil, errors.Wrapf(ErrVariantMismatch, "lesson %s is %s, rules are %s", l.ID, l.Variant, rules.Variant())
	}
	b := rules.NewBoard()
	if !l.FullBoard {
		b = model.NewBoardWith(b.Width, b.Height, l.Pieces...)
	}
	opts = append([]model.Option{model.WithBoard(b, l.Color), model.WithPracticeColor(l.Color)}, opts...)
	r := &Run{
		lesson: l,
		game:   model.NewGame(rules, opts...),
	}
	r.feedback = r.instructions()
	return r, nil
}

func (r *Run) Lesson() Lesson { return r.lesson }

func (r *Run) Game() *model.Game { return r.game }

func (r *Run) Feedback() Feedback { return r.feedback }

func (r *Run) Completed() bool { return r.completed }

// Answer is the option picked in a quiz lesson, if any.
func (r *Run) Answer() (int, bool) {
	if r.answer == nil {
		return 0, false
	}
	return *r.answer, true
}

func (r *Run) IsQuiz() bool { return r.lesson.Goal.Kind == GoalQuiz }

func (r *Run) instructions() Feedback {
	return Feedback{Kind: FeedbackInfo, Message: r.lesson.Instructions}
}

// Click forwards p to the game and grades any move it produced. A completed
// lesson ignores clicks until Reset, and a quiz ignores them altogether.
func (r *Run) Click(p model.Position) {
	if r.completed || r.IsQuiz() {
		return
	}
	before := r.game.MoveCount()
	r.game.Click(p)
	s := r.game.State()

	if r.game.MoveCount() == before {
		if s.Selected != nil && len(s.LegalMoves) == 0 {
			r.feedback = Feedback{Kind: FeedbackError, Message: "This piece has no legal moves here."}
		}
		return
	}
	if s.Phase == model.PhaseAwaitingPromotion {
		r.feedback = Feedback{Kind: FeedbackInfo, Message: "Choose a piece to promote to."}
		return
	}
	r.grade(s, false)
}

// Promote answers a pending promotion and grades the finished move.
func (r *Run) Promote(t model.PieceType) {
	if r.completed {
		return
	}
	if r.game.State().Phase != model.PhaseAwaitingPromotion {
		return
	}
	r.game.Promote(t)
	s := r.game.State()
	if s.Phase == model.PhaseAwaitingPromotion {
		r.feedback = Feedback{Kind: FeedbackError, Message: s.Notice}
		return
	}
	r.grade(s, true)
}

func (r *Run) grade(s model.GameState, promoted bool) {
	if r.met(s, promoted) {
		r.completed = true
		r.feedback = Feedback{Kind: FeedbackSuccess, Message: r.lesson.Success}
		return
	}
	if r.lesson.Goal.Kind == GoalFree {
		r.feedback = Feedback{Kind: FeedbackInfo, Message: r.lesson.Hint}
		return
	}
	r.feedback = Feedback{Kind: FeedbackError, Message: r.lesson.Hint}
}

// met checks the goal against the move that produced s.
func (r *Run) met(s model.GameState, promoted bool) bool {
	last := s.LastMove
	if last == nil {
		return false
	}
	goal := r.lesson.Goal
	switch goal.Kind {
	case GoalReach:
		return goal.Square != nil && last.To == *goal.Square
	case GoalCapture:
		captured := s.Captured[model.Opponent(r.game.Rules(), r.lesson.Color)]
		return last.Capture && len(captured) > 0 && captured[len(captured)-1].Type == goal.Piece
	case GoalLeaveFile:
		pc := s.Board.At(last.To)
		return pc != nil && pc.Type.IsRoyal() && last.To.X != goal.File
	case GoalCastle:
		return last.Castle != nil
	case GoalPromote:
		return promoted
	}
	return false
}

// SelectAnswer answers a quiz. Only the first answer counts; Reset allows
// another try.
func (r *Run) SelectAnswer(option int) {
	if !r.IsQuiz() {
		r.feedback = Feedback{Kind: FeedbackError, Message: "This lesson has no question."}
		return
	}
	if r.answer != nil {
		return
	}
	if option < 0 || option >= len(r.lesson.Options) {
		r.feedback = Feedback{Kind: FeedbackError, Message: "There is no such answer."}
		return
	}
	picked := option
	r.answer = &picked
	if r.lesson.Options[option].Correct {
		r.completed = true
		r.feedback = Feedback{Kind: FeedbackSuccess, Message: r.lesson.Success}
		return
	}
	r.feedback = Feedback{Kind: FeedbackError, Message: r.lesson.Hint}
}

// Undo takes back the last move and reopens the lesson. A quiz has no moves,
// so its answer stays until Reset.
func (r *Run) Undo() {
	if r.IsQuiz() {
		return
	}
	r.game.Undo()
	r.completed = false
	r.feedback = r.instructions()
}

func (r *Run) Reset() {
	r.game.Reset()
	r.completed = false
	r.answer = nil
	r.feedback = r.instructions()
}

func (r *Run) Flip() { r.game.Flip() }
