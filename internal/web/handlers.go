package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/fr4nk3nst1ner/jobmap/internal/dashboard"
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
	"github.com/fr4nk3nst1ner/jobmap/internal/pagination"
)

type pageData struct {
	Title string
	View  dashboard.View
}

type listingsResponse struct {
	Window   models.PageWindow      `json:"window"`
	Controls []models.PageControl   `json:"controls"`
	Listings []models.JobListing    `json:"listings"`
	PageInfo string                 `json:"page_info"`
	Filtered int                    `json:"filtered"`
	Total    int                    `json:"total"`
	Filters  models.FilterSelection `json:"filters"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"listings":  s.dash.Total(),
		"variant":   s.dash.Variant(),
		"session":   s.cfg.Session.Backend,
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	var sel models.FilterSelection
	if err := c.ShouldBindQuery(&sel); err != nil {
		c.String(http.StatusBadRequest, "invalid filter: %v", err)
		return
	}

	ctx := c.Request.Context()
	sid := c.GetString(sessionIDKey)

	page, err := s.store.Page(ctx, sid)
	if err != nil {
		log.Warn().Err(err).Str("session", sid).Msg("load page failed, starting at page 1")
		page = 1
	}

	req := dashboard.Request{Selection: sel, Page: page}
	if action, ok := pagination.ParseAction(c.Query("nav")); ok {
		req.Action = &action
	}

	view, err := s.dash.Render(req)
	if err != nil {
		log.Error().Err(err).Msg("render dashboard")
		c.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}

	// unknown sessions already read as page 1, so only navigated ones are stored
	if page != 1 || view.Window.Current != 1 {
		if err := s.store.SetPage(ctx, sid, view.Window.Current); err != nil {
			log.Warn().Err(err).Str("session", sid).Msg("save page failed")
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", pageData{
		Title: "Pencarian Lowongan Pekerjaan di Indonesia",
		View:  view,
	})
}

func (s *Server) handleAPIListings(c *gin.Context) {
	var sel models.FilterSelection
	if err := c.ShouldBindQuery(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		page = n
	}

	req := dashboard.Request{Selection: sel, Page: page}
	if action, ok := pagination.ParseAction(c.Query("nav")); ok {
		req.Action = &action
	}

	view, err := s.dash.Render(req)
	if err != nil {
		log.Error().Err(err).Msg("render listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render listings"})
		return
	}

	c.JSON(http.StatusOK, listingsResponse{
		Window:   view.Window,
		Controls: view.Controls,
		Listings: view.Rows,
		PageInfo: view.PageInfo,
		Filtered: view.FilteredCount,
		Total:    view.TotalListings,
		Filters:  sel,
	})
}

func (s *Server) handleAPIFacets(c *gin.Context) {
	c.JSON(http.StatusOK, s.dash.Facets())
}
