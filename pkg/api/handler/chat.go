package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ThisisBizness/Study-Buddy/pkg/chat"
	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
	"github.com/ThisisBizness/Study-Buddy/pkg/logger"
	"github.com/ThisisBizness/Study-Buddy/pkg/markdown"
	"github.com/ThisisBizness/Study-Buddy/pkg/web"
)

const sessionCookieName = "study_buddy_session"

type SessionRepository interface {
	Save(session *chat.Session)
	GetByID(id string) (*chat.Session, bool)
}

// chatPage drives the server-rendered chat UI: GET / renders the session
// transcript, POST /chat runs one submit cycle of the session state machine
// and redirects back.
type chatPage struct {
	sessions       SessionRepository
	solver         chat.Solver
	renderer       markdown.Renderer
	maxUploadBytes int64
}

func NewChatPage(sessions SessionRepository, solver chat.Solver, renderer markdown.Renderer, maxUploadBytes int64) *chatPage {
	return &chatPage{
		sessions:       sessions,
		solver:         solver,
		renderer:       renderer,
		maxUploadBytes: maxUploadBytes,
	}
}

func (c *chatPage) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	session := c.session(w, r)
	web.WritePage(w, session, c.renderer)
}

func (c *chatPage) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session := c.session(w, r)

	if err := r.ParseMultipartForm(c.maxUploadBytes); err != nil {
		// an unreadable upload is surfaced the same way a network failure is
		slog.ErrorContext(r.Context(), "parsing submit form", logger.Err(err))
		session.Flash("Upload failed: " + err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session.SetText(r.FormValue("text"))

	file, header, err := r.FormFile("image")
	switch {
	case err == nil && header.Filename != "":
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			slog.ErrorContext(r.Context(), "reading uploaded image", logger.Err(readErr))
			session.Flash("Upload failed: " + readErr.Error())
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if attachErr := session.AttachImage(header.Filename, data); attachErr != nil {
			session.Flash(attachErr.Error())
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	case err == nil:
		// browsers submit an empty file part when nothing is selected
		file.Close()
	case !errors.Is(err, http.ErrMissingFile):
		slog.ErrorContext(r.Context(), "reading form file", logger.Err(err))
		session.Flash("Upload failed: " + err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := session.Submit(r.Context()); err != nil {
		// submit failures already raised a notification; validation
		// rejections have not, surface them the same way
		if domain.IsValidation(err) {
			session.Flash(err.Error())
		}
		slog.WarnContext(r.Context(), "submit rejected", logger.Err(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session finds the browser's session by cookie, creating a fresh one (and
// setting the cookie) when absent or expired.
func (c *chatPage) session(w http.ResponseWriter, r *http.Request) *chat.Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if session, ok := c.sessions.GetByID(cookie.Value); ok {
			return session
		}
	}

	session := chat.NewSession(uuid.NewString(), c.solver)
	c.sessions.Save(session)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID(),
		Path:     "/",
		HttpOnly: true,
	})
	return session
}
