package ipc

import (
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"quotepaper"
)

// Start serves the status endpoint on the unix socket. It is expected
// to run in its own goroutine for the duration of a generation run;
// Shutdown tears the socket down afterwards.
func Start(t *Tracker) {
	sockPath := SocketPath()
	if _, err := os.Stat(sockPath); err == nil {
		_ = os.Remove(sockPath)
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		// Status is a convenience surface; a generation run proceeds
		// without it.
		log.Errorf("status socket unavailable: %v", err)
		return
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = listener

	e.Use(CharmLog())

	e.GET("/status", statusHandler(t))

	server := new(http.Server)
	if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
		log.Debugf("status server stopped: %v", err)
	}
}

// Shutdown removes the status socket after a run completes.
func Shutdown() {
	_ = os.Remove(SocketPath())
}

func statusHandler(t *Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:  "ok",
			Message: "quotepaper generation in progress",
			Version: strings.Trim(quotepaper.Version, "\n\r "),
			PID:     os.Getpid(),
			Socket:  SocketPath(),
			Stage:   t.Stage(),
			Input:   t.Input(),
		}, "  ")
	}
}
