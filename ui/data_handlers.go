package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleDatasetInfo returns provenance and summary statistics for the loaded
// dataset.
func (s *Server) handleDatasetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Info())
}

// handleDatasetStatus is a lightweight readiness probe for the UI.
func (s *Server) handleDatasetStatus(c *gin.Context) {
	info := s.service.Info()

	c.JSON(http.StatusOK, gin.H{
		"status":       "ready",
		"source":       info.Source,
		"rows_loaded":  info.RowsLoaded,
		"rows_dropped": info.RowsDropped,
		"loaded_at":    info.LoadedAt,
	})
}
