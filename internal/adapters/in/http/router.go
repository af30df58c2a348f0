package http

import (
	"context"
	"log/slog"
	"net/http"

	"connectfood/internal/adapters/in/http/identity"
	"connectfood/internal/adapters/in/http/openapi"
	"connectfood/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterConfig lists what the HTTP surface is assembled from. Events, Metrics,
// Docs and Health are optional.
type RouterConfig struct {
	Server   *Server
	Identity identity.Provider
	Events   http.Handler
	Metrics  http.Handler
	Docs     *openapi.Docs
	Health   func(ctx context.Context) error
	Logger   *slog.Logger
}

// NewRouter builds the echo instance serving the API under /api/v1 behind
// bearer authentication, plus the unauthenticated operational endpoints.
func NewRouter(cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(c.Request().Context()); err != nil {
				logger.WarnContext(c.Request().Context(), "health check failed", "error", err)
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}
	if cfg.Docs != nil {
		cfg.Docs.Register(e)
	}

	api := e.Group("", identity.Middleware(cfg.Identity))
	servers.RegisterHandlers(api, cfg.Server)
	if cfg.Events != nil {
		api.GET("/api/v1/events", echo.WrapHandler(cfg.Events))
	}

	return e
}
