package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/fr4nk3nst1ner/jobmap/internal/config"
	"github.com/fr4nk3nst1ner/jobmap/internal/dashboard"
	"github.com/fr4nk3nst1ner/jobmap/internal/filter"
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
	"github.com/fr4nk3nst1ner/jobmap/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the dashboard and its JSON API
type Server struct {
	cfg    *config.Config
	dash   *dashboard.Service
	store  session.Store
	router *gin.Engine
	http   *http.Server
}

// NewServer wires routes and middleware around a dashboard service
func NewServer(cfg *config.Config, dash *dashboard.Service, store session.Store) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{cfg: cfg, dash: dash, store: store}

	router := gin.New()
	router.Use(requestLogger())
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	// Public endpoints
	router.GET("/health", s.handleHealth)
	router.GET("/", sessionCookie(cfg.Session), s.handleIndex)

	// API endpoints require auth when WEB_USERNAME/WEB_PASSWORD are set
	api := router.Group("/api", basicAuth(cfg.Auth))
	{
		api.GET("/listings", s.handleAPIListings)
		api.GET("/facets", s.handleAPIFacets)
	}

	s.router = router
	s.http = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving HTTP until Shutdown is called
func (s *Server) Run() error {
	log.Info().Str("addr", s.http.Addr).Bool("api_auth", s.cfg.Auth.Enabled()).Msg("web server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

var templateFuncs = template.FuncMap{
	"selected": filter.Contains,
	"navHref":  navHref,
}

// navHref builds the link of a pagination control, keeping the current
// facet selection in the query
func navHref(sel models.FilterSelection, c models.PageControl) string {
	q := url.Values{}
	for _, v := range sel.Cities {
		q.Add("city", v)
	}
	for _, v := range sel.Types {
		q.Add("type", v)
	}
	for _, v := range sel.WorkHours {
		q.Add("hours", v)
	}

	switch c.Kind {
	case models.ControlFirst:
		q.Set("nav", "first")
	case models.ControlLast:
		q.Set("nav", "last")
	default:
		q.Set("nav", strconv.Itoa(c.Page))
	}
	return "/?" + q.Encode()
}
