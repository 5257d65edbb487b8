package ui

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"storekpi/domain/retail"
	apperrors "storekpi/internal/errors"
	"storekpi/models"
)

// handleIndex renders the dashboard page. The filter form submits back here
// via GET, so the page works without any client-side code.
func (s *Server) handleIndex(c *gin.Context) {
	filters, err := filterStateFromQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	kpi, err := retail.ParseKPI(c.Query("kpi"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.service.BuildSnapshot(c.Request.Context(), filters, kpi)
	if err != nil {
		log.Printf("[Server] Failed to build snapshot: %v", err)
		c.String(http.StatusInternalServerError, "dashboard unavailable")
		return
	}

	s.renderTemplate(c, "index.html", gin.H{
		"Snapshot":  snap,
		"Info":      s.service.Info(),
		"Controls":  filterControls(snap.FilterOptions, filters),
		"KPIs":      retail.KPIs,
		"FromValue": dateInputValue(filters.From),
		"ToValue":   dateInputValue(filters.To),
		"DateMin":   dateInputValue(snap.FilterOptions.DateMin),
		"DateMax":   dateInputValue(snap.FilterOptions.DateMax),
	})
}

// filterControl is the view model for one cascading select.
type filterControl struct {
	Label    string
	Param    string
	Options  []string
	Selected string
}

var dimensionParams = map[string]string{
	retail.DimRegion.String():      "region",
	retail.DimState.String():       "state",
	retail.DimCategory.String():    "category",
	retail.DimSubCategory.String(): "sub_category",
	retail.DimSegment.String():     "segment",
}

// filterControls pairs each option set with the current selection. Cascade
// emits option sets in FilterOrder, so the two walk in lockstep.
func filterControls(opts models.FilterOptions, filters retail.FilterState) []filterControl {
	controls := make([]filterControl, 0, len(opts.Options))
	for i, set := range opts.Options {
		var selected string
		if i < len(retail.FilterOrder) {
			selected = filters.Selector(retail.FilterOrder[i])
		}
		if selected == "" {
			selected = retail.AllOption
		}

		controls = append(controls, filterControl{
			Label:    set.Dimension,
			Param:    dimensionParams[set.Dimension],
			Options:  set.Values,
			Selected: selected,
		})
	}
	return controls
}

func dateInputValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// handleDashboard builds a full snapshot for the filter state and KPI given
// in the query string.
func (s *Server) handleDashboard(c *gin.Context) {
	filters, err := filterStateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kpi, err := retail.ParseKPI(c.Query("kpi"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := s.service.BuildSnapshot(c.Request.Context(), filters, kpi)
	if err != nil {
		log.Printf("[API] Snapshot build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard snapshot"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// handleFilterOptions runs only the filter cascade, for widget refreshes that
// do not need chart payloads.
func (s *Server) handleFilterOptions(c *gin.Context) {
	filters, err := filterStateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.service.FilterOptions(filters))
}

func filterStateFromQuery(c *gin.Context) (retail.FilterState, error) {
	return filterStateFromValues(c.Request.URL.Query())
}

func filterStateFromValues(q url.Values) (retail.FilterState, error) {
	filters := retail.FilterState{
		Region:      q.Get("region"),
		State:       q.Get("state"),
		Category:    q.Get("category"),
		SubCategory: q.Get("sub_category"),
		Segment:     q.Get("segment"),
	}

	var err error
	if filters.From, err = parseQueryDate("from", q.Get("from")); err != nil {
		return retail.FilterState{}, err
	}
	if filters.To, err = parseQueryDate("to", q.Get("to")); err != nil {
		return retail.FilterState{}, err
	}

	return filters, nil
}

func parseQueryDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("invalid %s date %q, expected YYYY-MM-DD", name, value))
	}

	return t, nil
}
