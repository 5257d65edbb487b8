package ui

import (
	"fmt"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/gin-gonic/gin"
)

const notesPath = "docs/notes.md"

// renderNotes converts the embedded methodology notes to HTML once at
// startup. Parser instances are single-use, so one is built per call.
func (s *Server) renderNotes() error {
	src, err := embeddedFiles.ReadFile(notesPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", notesPath, err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	s.notesHTML = markdown.Render(p.Parse(src), renderer)

	return nil
}

// handleMethodologyNotes serves the rendered metric definitions page.
func (s *Server) handleMethodologyNotes(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.notesHTML)
}
