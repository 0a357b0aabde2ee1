// Package dashboard serves the published season as HTML pages and a small
// JSON API.
//
// Routes:
//
//	GET /                   → team overview
//	GET /batting            → batting leaderboards (?min_innings=N, default 5)
//	GET /bowling            → bowling leaderboards
//	GET /fielding           → fielding leaderboards
//	GET /players/:name      → player profile
//	GET /api/players        → player names (JSON)
//	GET /api/players/:name  → player profile (JSON)
//
// Data is read once per process through a Loader; a table that was never
// published renders as an empty state rather than an error.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Config controls server startup.
type Config struct {
	Addr string
	// Mode is the gin mode; empty keeps gin's current mode.
	Mode string
	// Team is shown in the overview title.
	Team string
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg    Config
	data   *Loader
	log    logrus.FieldLogger
	engine *gin.Engine
}

// NewServer constructs a Server with its routes and embedded templates.
func NewServer(cfg Config, data *Loader, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))

	s := &Server{cfg: cfg, data: data, log: log, engine: engine}
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleOverview)
	s.engine.GET("/batting", s.handleBatting)
	s.engine.GET("/bowling", s.handleBowling)
	s.engine.GET("/fielding", s.handleFielding)
	s.engine.GET("/players/:name", s.handleProfile)

	api := s.engine.Group("/api")
	api.GET("/players", s.handleAPIPlayers)
	api.GET("/players/:name", s.handleAPIProfile)
}

// snapshot loads the data or writes a 500 and returns false.
func (s *Server) snapshot(c *gin.Context) (Snapshot, bool) {
	snap, err := s.data.Snapshot(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("load snapshot")
		c.String(http.StatusInternalServerError, "load data: %v", err)
		return Snapshot{}, false
	}
	return snap, true
}

func (s *Server) render(c *gin.Context, status int, p Page, err error) {
	if err != nil {
		s.log.WithError(err).WithField("page", p.Active).Error("build page")
		c.String(http.StatusInternalServerError, "render page: %v", err)
		return
	}
	c.HTML(status, "page.tmpl", p)
}

func (s *Server) handleOverview(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	p, err := overviewPage(s.cfg.Team, snap)
	s.render(c, http.StatusOK, p, err)
}

func (s *Server) handleBatting(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	minInnings, err := strconv.Atoi(c.DefaultQuery("min_innings", strconv.Itoa(DefaultMinInnings)))
	if err != nil || minInnings < 0 {
		minInnings = DefaultMinInnings
	}
	p, err := battingPage(snap, minInnings)
	s.render(c, http.StatusOK, p, err)
}

func (s *Server) handleBowling(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	p, err := bowlingPage(snap)
	s.render(c, http.StatusOK, p, err)
}

func (s *Server) handleFielding(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	p, err := fieldingPage(snap)
	s.render(c, http.StatusOK, p, err)
}

func (s *Server) handleProfile(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	prof := NewProfile(snap, c.Param("name"))
	status := http.StatusOK
	if !prof.Found() {
		status = http.StatusNotFound
	}
	p, err := profilePage(prof, PlayerNames(snap))
	s.render(c, status, p, err)
}

func (s *Server) handleAPIPlayers(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": PlayerNames(snap), "missing": snap.Missing})
}

func (s *Server) handleAPIProfile(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	prof := NewProfile(snap, c.Param("name"))
	if !prof.Found() {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found", "name": prof.Name})
		return
	}
	c.JSON(http.StatusOK, prof)
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("request")
	}
}
