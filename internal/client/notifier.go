package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"trip_tracker/internal/models"
)

// WebSocketURL turns a server base URL into its change feed URL.
func WebSocketURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws/trip"
}

// Subscribe listens on the change feed and calls fn for every change event
// until ctx is done or the connection drops. Messages of other types are
// ignored. It returns nil when ctx ends the subscription.
func Subscribe(ctx context.Context, wsURL string, fn func(models.TripEvent)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", wsURL, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var ev models.TripEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("change feed closed: %w", err)
		}
		if ev.Type != models.EventTripUpdated {
			logrus.WithField("type", ev.Type).Debug("Ignoring unknown change feed message.")
			continue
		}
		fn(ev)
	}
}
