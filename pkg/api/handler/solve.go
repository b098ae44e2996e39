package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ThisisBizness/Study-Buddy/pkg/api/response"
	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
	"github.com/ThisisBizness/Study-Buddy/pkg/logger"
)

type Solver interface {
	Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error)
}

type solve struct {
	solver       Solver
	maxBodyBytes int64
	writer       response.JSONResponseWriter
}

func NewSolve(solver Solver, maxBodyBytes int64) *solve {
	return &solve{
		solver:       solver,
		maxBodyBytes: maxBodyBytes,
	}
}

type solveRequest struct {
	TextProblem *string `json:"text_problem"`
	ImageData   *string `json:"image_data"`
}

// HandleSolve accepts a problem payload and returns the structured answer.
// Any subset of the answer fields may be present; error payloads carry an
// error message and optional details.
func (s *solve) HandleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Request must be JSON", "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writer.WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "Request failed",
				fmt.Sprintf("Input data too large. Maximum size is %dMB.", s.maxBodyBytes/(1024*1024)))
			return
		}
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON data received", "")
		return
	}
	if req.TextProblem == nil && req.ImageData == nil {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Request body cannot be empty JSON", "")
		return
	}

	var text, imageData string
	if req.TextProblem != nil {
		text = strings.TrimSpace(*req.TextProblem)
	}
	if req.ImageData != nil {
		imageData = strings.TrimSpace(*req.ImageData)
	}
	if text == "" && imageData == "" {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, domain.ErrMsgNoInput,
			"Please provide either text or image input")
		return
	}

	problem := domain.Problem{Text: text}
	if imageData != "" {
		// tolerate a data URL prefix even though the interface forbids it
		if i := strings.Index(imageData, ","); i >= 0 && strings.HasPrefix(imageData, "data:") {
			imageData = imageData[i+1:]
		}
		decoded, err := base64.StdEncoding.DecodeString(imageData)
		if err != nil {
			s.writer.WriteErrorResponse(w, http.StatusBadRequest, domain.ErrMsgInvalidImageData,
				"Could not decode image data. Please ensure it is valid Base64.")
			return
		}
		problem.ImageData = imageData
		problem.MimeType = http.DetectContentType(decoded)
	}

	slog.InfoContext(r.Context(), "handling solve request",
		"text", text != "", "image", imageData != "", "imageBytes", len(imageData)*3/4)

	answer, err := s.solver.Solve(r.Context(), problem)
	if err != nil {
		var appErr domain.AppError
		if errors.As(err, &appErr) {
			status := http.StatusInternalServerError
			if appErr.Message == domain.ErrMsgInvalidImageData || appErr.Message == domain.ErrMsgNoInput {
				status = http.StatusBadRequest
			}
			slog.ErrorContext(r.Context(), "solver returned error payload", logger.Err(appErr))
			s.writer.WriteErrorResponse(w, status, appErr.Message, appErr.Details)
			return
		}
		slog.ErrorContext(r.Context(), "solving problem", logger.Err(err))
		s.writer.WriteErrorResponse(w, http.StatusInternalServerError, "An internal server error occurred",
			"An unexpected error occurred while processing the request.")
		return
	}

	s.writer.WriteSuccessResponse(w, answer)
}
