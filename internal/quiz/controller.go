package quiz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNoChapter is returned by Start with an empty chapter identifier and
	// by Retake before any quiz was started.
	ErrNoChapter = errors.New("quiz: chapter identifier is required")

	// ErrNotActive is returned when an operation needs an answerable quiz.
	ErrNotActive = errors.New("quiz: no active quiz")
)

// State is the lifecycle phase of a quiz session.
type State int

const (
	StateIdle    State = iota // nothing loaded
	StateLoading              // request in flight
	StateActive               // form shown, answers being collected
	StateGraded               // results shown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateGraded:
		return "graded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the single live quiz of a controller.
type Session struct {
	ChapterID string
	Questions []Question
	Answers   Answers
	State     State
}

// Surface records which parts of the quiz modal are visible.
type Surface struct {
	Modal   bool
	Loading bool
	Form    bool
	Results bool
	Submit  bool
	Retake  bool

	// Error replaces the loading indicator when a load failed.
	Error string
}

// LoadingText is what the loading area shows.
func (s Surface) LoadingText() string {
	if s.Error != "" {
		return ErrorPrefix + s.Error
	}
	return ""
}

// Ticket identifies one question request. Only the ticket issued by the
// most recent Start or Retake is honoured by Resolve.
type Ticket struct {
	Token     string
	ChapterID string
}

// Snapshot is a read-only copy of the controller for rendering.
type Snapshot struct {
	Session Session
	Surface Surface
	Result  *Result
}

// Controller drives one quiz modal. It is not safe for concurrent use;
// hosts serialize calls (bubbletea's update loop or a mutex).
type Controller struct {
	session Session
	surface Surface
	result  *Result

	// chapterID survives resets so Retake can start the same chapter again.
	chapterID string
	token     string
}

// NewController returns a controller in the Idle state with the modal hidden.
func NewController() *Controller {
	return &Controller{session: Session{Answers: Answers{}}}
}

// Start discards any current session and begins loading questions for
// chapterID. The caller must perform the request and hand the outcome to
// Resolve together with the returned ticket.
func (c *Controller) Start(chapterID string) (Ticket, error) {
	if chapterID == "" {
		return Ticket{}, ErrNoChapter
	}
	c.reset()
	c.chapterID = chapterID
	c.token = uuid.NewString()

	c.session.ChapterID = chapterID
	c.session.State = StateLoading
	c.surface.Modal = true
	c.surface.Loading = true

	return Ticket{Token: c.token, ChapterID: chapterID}, nil
}

// Resolve applies the outcome of the request identified by t. It returns
// false when the ticket was superseded or no load is pending.
func (c *Controller) Resolve(t Ticket, r LoadResult) bool {
	if t.Token == "" || t.Token != c.token || c.session.State != StateLoading {
		return false
	}

	// Sources are expected to Check their payload; a Loaded that slips
	// through with bad questions is still a failed load.
	if loaded, ok := r.(Loaded); ok {
		r = Check(loaded.Questions)
	}

	switch r := r.(type) {
	case Loaded:
		c.session.Questions = r.Questions
		c.session.State = StateActive
		c.surface.Loading = false
		c.surface.Form = true
		c.surface.Submit = true
	case LoadFailed:
		c.fail(Failed(r.Message).Message)
	default:
		c.fail(FallbackMessage)
	}
	return true
}

// Select records the option picked for a question.
func (c *Controller) Select(question, option int) error {
	if c.session.State != StateActive {
		return ErrNotActive
	}
	if question < 0 || question >= len(c.session.Questions) {
		return fmt.Errorf("quiz: question %d out of range", question)
	}
	c.session.Answers[question] = option
	return nil
}

// Clear removes the selection for a question.
func (c *Controller) Clear(question int) {
	if c.session.State == StateActive {
		delete(c.session.Answers, question)
	}
}

// Submit grades the active quiz and shows the results.
func (c *Controller) Submit() (Result, error) {
	if c.session.State != StateActive {
		return Result{}, ErrNotActive
	}

	res := Grade(c.session.Questions, c.session.Answers)
	c.result = &res
	c.session.State = StateGraded

	c.surface.Form = false
	c.surface.Submit = false
	c.surface.Results = true
	c.surface.Retake = true

	return res, nil
}

// Retake clears the session and starts the remembered chapter again.
func (c *Controller) Retake() (Ticket, error) {
	chapterID := c.chapterID
	c.reset()
	if chapterID == "" {
		return Ticket{}, ErrNoChapter
	}
	return c.Start(chapterID)
}

// Close hides the modal; the session is left untouched.
func (c *Controller) Close() {
	c.surface.Modal = false
}

// ChapterID returns the chapter of the most recent Start.
func (c *Controller) ChapterID() string {
	return c.chapterID
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	return c.session.State
}

// Snapshot copies the controller state for rendering.
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	s.Questions = append([]Question(nil), c.session.Questions...)
	s.Answers = make(Answers, len(c.session.Answers))
	for k, v := range c.session.Answers {
		s.Answers[k] = v
	}

	snap := Snapshot{Session: s, Surface: c.surface}
	if c.result != nil {
		res := *c.result
		res.Review = append([]ReviewItem(nil), c.result.Review...)
		snap.Result = &res
	}
	return snap
}

// reset returns to Idle, keeping the modal visibility and chapterID.
func (c *Controller) reset() {
	modal := c.surface.Modal
	c.session = Session{Answers: Answers{}}
	c.surface = Surface{Modal: modal}
	c.result = nil
	c.token = ""
}

func (c *Controller) fail(msg string) {
	c.session.Questions = nil
	c.session.State = StateIdle
	c.surface.Loading = true
	c.surface.Error = msg
	c.surface.Form = false
	c.surface.Submit = false
}
