// Package api exposes the dashboard state over a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/gin-gonic/gin"
)

// Dashboard is the state the API reads and drives.
type Dashboard interface {
	Picture() dashboard.PictureState
	LoadPicture(ctx context.Context, date string) (dashboard.PictureState, error)
	LoadToday(ctx context.Context) (dashboard.PictureState, error)
	Launches() dashboard.LaunchState
	LoadLaunches(ctx context.Context) (dashboard.LaunchState, error)
	Bodies() dashboard.BodiesState
	SelectBody(key domain.BodyKey) bool
	Snapshot() dashboard.Snapshot
}

type Server struct {
	dash   Dashboard
	logger *slog.Logger
}

func NewServer(d Dashboard, logger *slog.Logger) *Server {
	return &Server{dash: d, logger: logger}
}

// Handler builds a gin engine serving the /api/v1 routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", s.snapshot)

		v1.GET("/apod", s.getPicture)
		v1.POST("/apod", s.loadPicture)
		v1.POST("/apod/today", s.loadToday)

		v1.GET("/launches", s.getLaunches)
		v1.POST("/launches/refresh", s.refreshLaunches)

		v1.GET("/bodies", s.listBodies)
		v1.GET("/bodies/selected", s.selectedBody)
		v1.PUT("/bodies/selected/:key", s.selectBody)

		v1.GET("/date-display", s.dateDisplay)
	}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

func (s *Server) snapshot(c *gin.Context) {
	ok(c, s.dash.Snapshot())
}

func (s *Server) getPicture(c *gin.Context) {
	ok(c, s.dash.Picture())
}

type pictureRequest struct {
	Date string `json:"date"`
}

func (s *Server) loadPicture(c *gin.Context) {
	var req pictureRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid_request", "body must be {\"date\":\"YYYY-MM-DD\"}")
			return
		}
	}
	state, err := s.dash.LoadPicture(c.Request.Context(), req.Date)
	s.respondPicture(c, state, err)
}

func (s *Server) loadToday(c *gin.Context) {
	state, err := s.dash.LoadToday(c.Request.Context())
	s.respondPicture(c, state, err)
}

// respondPicture maps a picture load result. Date validation errors are the
// caller's fault; a failed or superseded fetch still returns the resulting
// panel state, which already carries the placeholder.
func (s *Server) respondPicture(c *gin.Context, state dashboard.PictureState, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		fail(c, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, domain.ErrFutureDate):
		fail(c, http.StatusBadRequest, "future_date", err.Error())
	default:
		if err != nil {
			s.logger.Debug("picture load degraded", "error", err)
		}
		ok(c, state)
	}
}

func (s *Server) getLaunches(c *gin.Context) {
	ok(c, s.dash.Launches())
}

func (s *Server) refreshLaunches(c *gin.Context) {
	state, err := s.dash.LoadLaunches(c.Request.Context())
	if err != nil {
		s.logger.Debug("launch refresh degraded", "error", err)
	}
	ok(c, state)
}

func (s *Server) listBodies(c *gin.Context) {
	state := s.dash.Bodies()
	ok(c, gin.H{
		"selected": state.Selected,
		"bodies":   state.Statuses,
	})
}

func (s *Server) selectedBody(c *gin.Context) {
	state := s.dash.Bodies()
	if state.Body == nil {
		fail(c, http.StatusNotFound, "not_loaded", "selected body has not loaded")
		return
	}
	ok(c, state.Body)
}

func (s *Server) selectBody(c *gin.Context) {
	key, err := domain.ParseBodyKey(c.Param("key"))
	if err != nil {
		fail(c, http.StatusNotFound, "unknown_body", err.Error())
		return
	}
	changed := s.dash.SelectBody(key)
	state := s.dash.Bodies()
	ok(c, gin.H{
		"changed":  changed,
		"selected": state.Selected,
		"body":     state.Body,
	})
}

func (s *Server) dateDisplay(c *gin.Context) {
	label, err := domain.FormatInputDate(c.Query("date"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_date", err.Error())
		return
	}
	ok(c, gin.H{"label": label})
}
