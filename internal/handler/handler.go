package handler

import (
	"html/template"

	"github.com/hanzawa-dev/gobbs/internal/markdown"
	"github.com/hanzawa-dev/gobbs/internal/service"
	"github.com/hanzawa-dev/gobbs/internal/validation"
)

// Message codes handed to templates; the rendering layer maps them to copy.
const (
	msgCodeForbidden   = "M01-006" // CSRF check failed
	msgCodeSystemError = "M00-001" // unexpected failure during submission
)

type Handler struct {
	Templates map[string]*template.Template
	posts     service.PostService
	boards    service.BoardService
	validator *validation.PostValidator
	text      *markdown.TextProcessor
}

func New(templates map[string]*template.Template, posts service.PostService, boards service.BoardService, validator *validation.PostValidator, text *markdown.TextProcessor) *Handler {
	return &Handler{
		Templates: templates,
		posts:     posts,
		boards:    boards,
		validator: validator,
		text:      text,
	}
}
