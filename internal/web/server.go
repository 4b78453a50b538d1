// Package web provides the liveness HTTP server the hosting platform probes.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is a minimal Echo server answering port probes while the bot does
// its real work over long polling.
type Server struct {
	echo *echo.Echo
	addr string
}

func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Бот активен. Сервер работает.")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{echo: e, addr: fmt.Sprintf(":%d", port)}
}

// Start starts the HTTP server (blocks until shutdown).
func (s *Server) Start() error {
	slog.Info("liveness server listening", "addr", s.addr)
	return s.echo.Start(s.addr)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
