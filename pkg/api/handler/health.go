package handler

import (
	"net/http"

	"github.com/ThisisBizness/Study-Buddy/pkg/api/response"
)

type health struct {
	writer response.JSONResponseWriter
}

func NewHealth() *health {
	return &health{}
}

func (h *health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, map[string]string{
		"status":  "ok",
		"message": "Study Buddy API is running",
	})
}
