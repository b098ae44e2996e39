package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

type fakeSolver struct {
	calls  int
	answer domain.Answer
	err    error
}

func (f *fakeSolver) Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error) {
	f.calls++
	return f.answer, f.err
}

// a 1x1 transparent PNG, enough for content sniffing
var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSubmitEmptyRejected(t *testing.T) {
	solver := &fakeSolver{}
	s := NewSession("s1", solver)

	err := s.Submit(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if solver.calls != 0 {
		t.Errorf("expected no solver calls, got %d", solver.calls)
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if got := len(s.Messages()); got != 0 {
		t.Errorf("transcript has %d messages, want 0", got)
	}
}

func TestSubmitSuccess(t *testing.T) {
	solver := &fakeSolver{answer: domain.Answer{Solution: "x=1"}}
	s := NewSession("s1", solver)
	s.SetText("solve x")

	if got := s.State(); got != StateComposing {
		t.Fatalf("state = %v, want composing", got)
	}
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("transcript has %d messages, want 2", len(messages))
	}
	if messages[0].Role != domain.MessageRoleUser || messages[0].Text != "solve x" {
		t.Errorf("unexpected user message: %+v", messages[0])
	}
	assistant := messages[1]
	if assistant.Role != domain.MessageRoleAssistant {
		t.Errorf("unexpected assistant role: %q", assistant.Role)
	}
	if len(assistant.Sections) != 1 {
		t.Fatalf("assistant has %d sections, want 1", len(assistant.Sections))
	}
	if assistant.Sections[0].Name != domain.SectionSolution || assistant.Sections[0].Markdown != "x=1" {
		t.Errorf("unexpected section: %+v", assistant.Sections[0])
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state after submit = %v, want idle", got)
	}
}

func TestSubmitAppErrorNotifies(t *testing.T) {
	solver := &fakeSolver{err: domain.AppError{Message: "Bad input", Details: "missing field"}}
	s := NewSession("s1", solver)
	s.SetText("x")

	if err := s.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Notice(); got != "Bad input: missing field" {
		t.Errorf("notice = %q, want %q", got, "Bad input: missing field")
	}

	// user message stays, no assistant message appended
	messages := s.Messages()
	if len(messages) != 1 || messages[0].Role != domain.MessageRoleUser {
		t.Errorf("unexpected transcript: %+v", messages)
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state after failure = %v, want idle", got)
	}
}

func TestSubmitTransportErrorRecovers(t *testing.T) {
	solver := &fakeSolver{err: errors.New("connection refused")}
	s := NewSession("s1", solver)
	s.SetText("x")

	if err := s.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Notice() == "" {
		t.Error("expected a notification")
	}

	// input is composable again after any failure
	s.SetText("retry")
	solver.err = nil
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
}

func TestNoticeExpires(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	s := NewSession("s1", &fakeSolver{}, WithClock(clock), WithNoticeTTL(3*time.Second))

	s.Flash("heads up")
	if got := s.Notice(); got != "heads up" {
		t.Fatalf("notice = %q", got)
	}

	now = now.Add(4 * time.Second)
	if got := s.Notice(); got != "" {
		t.Errorf("notice after expiry = %q, want empty", got)
	}
}

func TestAttachImageValidation(t *testing.T) {
	s := NewSession("s1", &fakeSolver{})

	err := s.AttachImage("notes.txt", []byte("just some text"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := s.ImageName(); got != "" {
		t.Errorf("pending image = %q, want unset", got)
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}

	if err := s.AttachImage("problem.png", pngData); err != nil {
		t.Fatalf("attach png: %v", err)
	}
	if got := s.ImageName(); got != "problem.png" {
		t.Errorf("pending image = %q, want problem.png", got)
	}
	if got := s.State(); got != StateComposing {
		t.Errorf("state = %v, want composing", got)
	}

	s.ClearImage()
	if got := s.State(); got != StateIdle {
		t.Errorf("state after clear = %v, want idle", got)
	}
}

func TestSubmitImageOnly(t *testing.T) {
	solver := &fakeSolver{answer: domain.Answer{Response: "looks like algebra"}}
	s := NewSession("s1", solver)
	if err := s.AttachImage("p.png", pngData); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if solver.calls != 1 {
		t.Fatalf("solver calls = %d, want 1", solver.calls)
	}

	messages := s.Messages()
	if messages[0].ImageRef != "p.png" {
		t.Errorf("user message image ref = %q", messages[0].ImageRef)
	}
	// pending submission cleared after dispatch
	if got := s.ImageName(); got != "" {
		t.Errorf("pending image after submit = %q, want unset", got)
	}
}
