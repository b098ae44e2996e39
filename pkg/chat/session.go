package chat

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

// State is the observable submit-flow state of a session.
type State int

const (
	// StateIdle: nothing pending, submit disabled.
	StateIdle State = iota
	// StateComposing: text and/or image attached, submit enabled.
	StateComposing
	// StateSubmitting: a solver call is in flight, input disabled.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateComposing:
		return "composing"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

const defaultNoticeTTL = 3 * time.Second

type Solver interface {
	Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error)
}

type attachment struct {
	name     string
	data     []byte
	mimeType string
}

// Session holds one browser conversation: the pending submission, the
// in-flight flag and the append-only transcript. All state lives here
// explicitly so the submit flow is testable without any frontend. Safe for
// concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	solver    Solver
	text      string
	image     *attachment
	inFlight  bool
	messages  []domain.ChatMessage
	notice    string
	noticeExp time.Time
	noticeTTL time.Duration
	now       func() time.Time
}

type Option func(*Session)

// WithClock replaces the session clock, used by tests to control notice
// expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithNoticeTTL(ttl time.Duration) Option {
	return func(s *Session) { s.noticeTTL = ttl }
}

func NewSession(id string, solver Solver, opts ...Option) *Session {
	s := &Session{
		id:        id,
		solver:    solver,
		noticeTTL: defaultNoticeTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = strings.TrimSpace(text)
}

// AttachImage validates and stores a pending image. A payload that does not
// sniff as image/* is rejected with a ValidationError and the pending image
// stays unset.
func (s *Session) AttachImage(name string, data []byte) error {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ValidationError{Msg: "Please select an image file."}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = &attachment{name: name, data: data, mimeType: mimeType}
	return nil
}

func (s *Session) ClearImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = nil
}

func (s *Session) ImageName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return ""
	}
	return s.image.name
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.inFlight:
		return StateSubmitting
	case s.text != "" || s.image != nil:
		return StateComposing
	default:
		return StateIdle
	}
}

// Submit dispatches the pending submission to the solver. The user message is
// appended to the transcript before the call resolves, so the user's own
// input is always visible immediately; the assistant message is appended only
// on success. The pending submission is cleared once dispatched, success or
// failure. Only one request may be outstanding at a time.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return domain.ValidationError{Msg: "A request is already being processed."}
	}
	if s.text == "" && s.image == nil {
		s.mu.Unlock()
		return domain.ValidationError{Msg: "Please enter a problem or attach an image."}
	}

	problem := domain.Problem{Text: s.text}
	userMsg := domain.ChatMessage{Role: domain.MessageRoleUser, Text: s.text}
	if s.image != nil {
		problem.ImageData = base64.StdEncoding.EncodeToString(s.image.data)
		problem.MimeType = s.image.mimeType
		userMsg.ImageRef = s.image.name
	}
	s.messages = append(s.messages, userMsg)
	s.text = ""
	s.image = nil
	s.inFlight = true
	s.mu.Unlock()

	answer, err := s.solver.Solve(ctx, problem)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.setNotice(err.Error())
		return err
	}

	s.messages = append(s.messages, domain.ChatMessage{
		Role:     domain.MessageRoleAssistant,
		Sections: answer.Sections(),
		ImageRef: answer.ImageURL,
	})
	return nil
}

// Messages returns a copy of the transcript in insertion order.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Flash shows a transient user-visible message, used for validation errors
// surfaced outside the submit flow.
func (s *Session) Flash(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setNotice(text)
}

// Notice returns the current notification, or "" once it has expired.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice != "" && s.now().After(s.noticeExp) {
		s.notice = ""
	}
	return s.notice
}

func (s *Session) setNotice(text string) {
	s.notice = text
	s.noticeExp = s.now().Add(s.noticeTTL)
}
