package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/david/civic-connect/internal/config"
	"github.com/david/civic-connect/internal/db"
	"github.com/david/civic-connect/internal/i18n"
	"github.com/david/civic-connect/internal/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Echo     *echo.Echo
	Config   *config.Config
	Log      *logrus.Logger
	Sessions *session.Manager
	Catalog  *i18n.Catalog
	// DB is nil when no store is configured.
	DB db.Pinger

	languages []language
	now       func() time.Time
}

func NewServer(cfg *config.Config, log *logrus.Logger, store db.Pinger) (*Server, error) {
	languages := make([]language, 0, len(cfg.Languages))
	codes := make([]string, 0, len(cfg.Languages))
	for code, name := range cfg.Languages {
		languages = append(languages, language{Code: code, Name: name})
		codes = append(codes, code)
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i].Code < languages[j].Code })

	catalog, err := i18n.Load(codes, cfg.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	sessions, err := session.NewManager(session.Options{
		SecretKey:     cfg.SecretKey,
		Languages:     cfg.Languages,
		DefaultLocale: cfg.DefaultLocale,
		Secure:        cfg.Env == config.EnvProduction,
	}, log)
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Renderer = renderer

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(sessions.Middleware)

	s := &Server{
		Echo:      e,
		Config:    cfg,
		Log:       log,
		Sessions:  sessions,
		Catalog:   catalog,
		DB:        store,
		languages: languages,
		now:       time.Now,
	}

	s.routes()
	return s, nil
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}

func (s *Server) routes() {
	s.Echo.GET("/", s.handleIndex)
	s.Echo.GET("/set-language/:lang", s.handleSetLanguage)
	s.Echo.GET("/health", s.handleHealth)

	citizen := s.Echo.Group("/citizen")
	citizen.GET("", s.handleCitizenDashboard)
	citizen.GET("/", s.handleCitizenDashboard)
	citizen.GET("/complaints", s.handleComplaints)
	citizen.POST("/complaints", s.handleComplaints)
	citizen.GET("/emergency", s.handleEmergency)

	government := s.Echo.Group("/government")
	government.GET("", s.handleGovernmentDashboard)
	government.GET("/", s.handleGovernmentDashboard)
	government.GET("/complaints", s.handleComplaintsQueue)

	politician := s.Echo.Group("/politician")
	politician.GET("", s.handlePoliticianDashboard)
	politician.GET("/", s.handlePoliticianDashboard)
	politician.GET("/analytics", s.handleAnalytics)

	api := s.Echo.Group("/api/v1")
	api.POST("/complaints/classify", s.handleClassify)
}

func (s *Server) render(c echo.Context, name string, data any) error {
	lang := session.Locale(c)
	if lang == "" {
		lang = s.Config.DefaultLocale
	}
	return c.Render(http.StatusOK, name, page{
		Lang:      lang,
		Languages: s.languages,
		Data:      data,
		catalog:   s.Catalog,
	})
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, "index.html", nil)
}

func (s *Server) handleSetLanguage(c echo.Context) error {
	lang := c.Param("lang")
	if s.Config.SupportsLanguage(lang) {
		if err := s.Sessions.SetLocale(c, lang); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"database": db.Status(c.Request().Context(), s.DB),
	})
}

func (s *Server) Start(addr string) error {
	err := s.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func trimmedForm(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}
