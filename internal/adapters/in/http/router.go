package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"shipping/internal/adapters/in/http/openapi"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// HeaderUserID carries the authenticated owner, as a UUID, from the auth layer.
const HeaderUserID = "X-User-ID"

// HeaderAcceptLanguage picks the notice language when the form leaves it empty.
const HeaderAcceptLanguage = "Accept-Language"

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// NewRouter registers every route of the server on a fresh echo instance.
// Requests are validated against the embedded OpenAPI document before they
// reach the server.
func NewRouter(s *Server, checks map[string]HealthCheck) (*echo.Echo, error) {
	doc, err := openapi.Load(context.Background())
	if err != nil {
		return nil, err
	}
	validator, err := openapi.RequestValidator(doc, func(c echo.Context, status int, err error) error {
		return c.JSON(status, Error{Code: status, Message: err.Error()})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	e.Use(validator)

	e.GET("/health", health(checks))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/track/:code", s.TrackShipment)

	owned := api.Group("/shipments", RequireOwner)
	owned.POST("", s.CreateShipment)
	owned.GET("", s.ListShipments)
	owned.GET("/:code", s.GetShipment)
	owned.PUT("/:code", s.UpdateShipment)
	owned.PUT("/:code/route", s.AdvanceRoute)
	owned.DELETE("/:code", s.DeleteShipment)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

func health(checks map[string]HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		failed := map[string]string{}
		for name, check := range checks {
			if err := check(c.Request().Context()); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			return c.JSON(http.StatusServiceUnavailable, failed)
		}
		return c.String(http.StatusOK, "Healthy")
	}
}
