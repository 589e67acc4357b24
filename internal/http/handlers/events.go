package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"kakasaku_backend/internal/realtime"
)

// allowOrigin applies the configured origin allowlist to the websocket
// handshake. Browsers do not enforce CORS on websocket upgrades, so the
// server has to. Requests without an Origin header (non-browser clients)
// pass.
func (a *App) allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range a.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Events upgrades the connection to a websocket and streams change events.
// Optional query parameters narrow the stream: ?collection=programs and
// ?record=<id> follow the same filter rules as a bus subscription.
func (a *App) Events(w http.ResponseWriter, r *http.Request) {
	if a.Hub == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", a.msgs(r).GenericError)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     a.allowOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake error response.
		a.Logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	q := r.URL.Query()
	client := realtime.NewClient(a.Hub, conn, q.Get("collection"), q.Get("record"))
	client.Register()

	go client.WritePump()
	client.ReadPump()
}
