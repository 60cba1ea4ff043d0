package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP router: recovery, request logging, OpenAPI
// request validation, the API routes and the Swagger UI at /swagger/.
func NewEcho(si ServerInterface, logger *slog.Logger, debug bool) (*echo.Echo, error) {
	doc, err := LoadSwagger()
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}
	validate, err := OpenAPIRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if renderErr := ErrorHandler(c, err); renderErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to render error", "error", renderErr)
		}
	}

	requestLogger := logger.With("component", "http")
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			requestLogger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		validated := validate(next)
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, "/swagger/") {
				return next(c)
			}
			return validated(c)
		}
	})

	RegisterHandlers(e, si)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
