// Package webserver hosts the storefront HTTP API on echo. Handlers are
// registered through ApiGET/ApiPOST/ApiDELETE under /api/v1.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dame6k/beatstore/internal/app"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

const (
	ApiPrefix = "/api/v1"

	// AppContextKey is the echo context key holding the app.AppContext.
	AppContextKey = "appctx"
)

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	appCtx app.AppContext
}

// formValidator adapts go-playground/validator to echo.
type formValidator struct {
	validate *validator.Validate
}

func (v *formValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Init builds the global server for appCtx. Routes registered afterwards
// through the Api* helpers land on it.
func Init(appCtx app.AppContext) {
	server = NewWebServer(appCtx)
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()
	e := echo.New()
	e.HideBanner = true
	e.Validator = &formValidator{validate: validator.New()}
	if cfg.System.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("namespace", "http"),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				zap.L().Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zap.L().Debug("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit()))

	store := sessions.NewCookieStore([]byte(cfg.Web.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	return &WebServer{
		root:   e,
		api:    e.Group(ApiPrefix),
		appCtx: appCtx,
	}
}

func (s *WebServer) Start() error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("storefront api listening on %s", addr)
	err := s.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Start runs the global server until it is shut down.
func Start() error {
	return server.Start()
}

func Shutdown(ctx context.Context) error {
	return server.Shutdown(ctx)
}

// Handler exposes the global server, mostly for httptest.
func Handler() http.Handler {
	return server.root
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}
