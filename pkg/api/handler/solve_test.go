package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
)

type fakeSolver struct {
	calls   int
	problem domain.Problem
	answer  domain.Answer
	err     error
}

func (f *fakeSolver) Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error) {
	f.calls++
	f.problem = problem
	return f.answer, f.err
}

func postSolve(t *testing.T, s *solve, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.HandleSolve(rec, req)
	return rec
}

func TestHandleSolveSuccess(t *testing.T) {
	solver := &fakeSolver{answer: domain.Answer{Solution: "x=1"}}
	s := NewSolve(solver, 16*1024*1024)

	rec := postSolve(t, s, `{"text_problem":"solve 2x=2","image_data":null}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got["solution"] != "x=1" {
		t.Errorf("solution = %q", got["solution"])
	}
	if _, ok := got["explanation"]; ok {
		t.Error("unexpected explanation field in response")
	}
	if solver.problem.Text != "solve 2x=2" {
		t.Errorf("solver got text %q", solver.problem.Text)
	}
}

func TestHandleSolveNoInput(t *testing.T) {
	solver := &fakeSolver{}
	s := NewSolve(solver, 16*1024*1024)

	rec := postSolve(t, s, `{"text_problem":"","image_data":""}`, "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if solver.calls != 0 {
		t.Errorf("solver called %d times, want 0", solver.calls)
	}
	if !strings.Contains(rec.Body.String(), domain.ErrMsgNoInput) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleSolveRequiresJSON(t *testing.T) {
	s := NewSolve(&fakeSolver{}, 16*1024*1024)

	rec := postSolve(t, s, "text_problem=hi", "application/x-www-form-urlencoded")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Request must be JSON") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleSolveInvalidBase64(t *testing.T) {
	solver := &fakeSolver{}
	s := NewSolve(solver, 16*1024*1024)

	rec := postSolve(t, s, `{"image_data":"not-base64!!!"}`, "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.ErrMsgInvalidImageData) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if solver.calls != 0 {
		t.Errorf("solver called %d times, want 0", solver.calls)
	}
}

func TestHandleSolveStripsDataURLPrefix(t *testing.T) {
	solver := &fakeSolver{answer: domain.Answer{Response: "ok"}}
	s := NewSolve(solver, 16*1024*1024)

	encoded := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n12345678"))
	rec := postSolve(t, s, `{"image_data":"data:image/png;base64,`+encoded+`"}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if solver.problem.ImageData != encoded {
		t.Errorf("solver got image data %q, want prefix stripped", solver.problem.ImageData)
	}
	if !strings.HasPrefix(solver.problem.MimeType, "image/") {
		t.Errorf("solver got mime type %q", solver.problem.MimeType)
	}
}

func TestHandleSolveApplicationError(t *testing.T) {
	solver := &fakeSolver{err: domain.AppError{Message: "Bad input", Details: "missing field"}}
	s := NewSolve(solver, 16*1024*1024)

	rec := postSolve(t, s, `{"text_problem":"p"}`, "application/json")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got["error"] != "Bad input" || got["details"] != "missing field" {
		t.Errorf("error envelope = %v", got)
	}
}

func TestHandleSolveTransportError(t *testing.T) {
	solver := &fakeSolver{err: errors.New("dial tcp: connection refused")}
	s := NewSolve(solver, 16*1024*1024)

	rec := postSolve(t, s, `{"text_problem":"p"}`, "application/json")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "An internal server error occurred") {
		t.Errorf("body = %s", rec.Body.String())
	}
	// internals are not leaked to the client
	if strings.Contains(rec.Body.String(), "dial tcp") {
		t.Errorf("body leaks transport detail: %s", rec.Body.String())
	}
}

func TestHandleSolveBodyTooLarge(t *testing.T) {
	s := NewSolve(&fakeSolver{}, 64)

	rec := postSolve(t, s, `{"text_problem":"`+strings.Repeat("a", 200)+`"}`, "application/json")
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHealth()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
