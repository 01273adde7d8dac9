package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/hanzawa-dev/gobbs/internal/domain"
	"github.com/hanzawa-dev/gobbs/internal/logger"
)

// postView is a domain.Post with its message pre-rendered for templates.
type postView struct {
	domain.Post
	MessageHTML template.HTML
}

// formEcho carries a rejected submission back to the form so the user sees
// their input pre-filled next to the field-level violations.
type formEcho struct {
	Name          string
	Message       string
	NameError     string // EMPTY / TOO_LONG, empty string when valid
	MessageError  string
	NameMaxLen    int
	MessageMaxLen int
}

type listPageData struct {
	Board         *domain.Board
	BoardId       domain.BoardId
	Posts         []postView
	CurrentPage   int
	TotalPages    int
	Keyword       string
	HasOlderPosts bool
	CsrfToken     string
	MessageCode   string
	Form          formEcho
}

type historyPageData struct {
	Board       *domain.Board
	BoardId     domain.BoardId
	Posts       []postView
	CurrentPage int
	TotalPages  int
	Keyword     string
}

func (h *Handler) renderPosts(posts []domain.Post) []postView {
	views := make([]postView, len(posts))
	for i, p := range posts {
		views[i] = postView{Post: p, MessageHTML: h.text.ProcessMessage(p.Message)}
	}
	return views
}

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}
