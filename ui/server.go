package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storekpi/app"
	"storekpi/models"
)

//go:embed templates/*.html docs/*.md
var embeddedFiles embed.FS

// Server hosts the dashboard page and its JSON API.
type Server struct {
	router    *gin.Engine
	service   *app.DashboardService
	templates *template.Template
	notesHTML []byte
}

// NewServer wires a dashboard service into a ready-to-run HTTP server.
func NewServer(service *app.DashboardService) (*Server, error) {
	s := &Server{
		router:  gin.Default(),
		service: service,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if err := s.renderNotes(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"currency": models.FormatCurrency,
		"count":    models.FormatCount,
		"percent":  models.FormatPercent,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return err
	}

	s.templates = templates
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(RequestID())
}

func (s *Server) setupRoutes() {
	// Dashboard page
	s.router.GET("/", s.handleIndex)

	// JSON API
	s.router.GET("/api/dashboard", s.handleDashboard)
	s.router.GET("/api/filters", s.handleFilterOptions)
	s.router.GET("/api/dataset/info", s.handleDatasetInfo)
	s.router.GET("/api/dataset/status", s.handleDatasetStatus)

	// Rendered documentation
	s.router.GET("/docs/notes", s.handleMethodologyNotes)
}

// Start runs the HTTP server on addr and blocks until it exits.
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Dashboard listening on %s", addr)
	return s.router.Run(addr)
}

// renderTemplate renders to a buffer first so a template error yields a
// clean 500 instead of a half-written page.
func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[Server] Template error for %s: %v", name, err)
		c.String(http.StatusInternalServerError, "Template error")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[Server] Error writing template response: %v", err)
	}
}
