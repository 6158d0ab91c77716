package controllers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"trip_tracker/internal/models"
)

const writeWait = 5 * time.Second

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local single-user tool; CORS middleware guards the API
	},
}

// TripHub fans "trip data changed" events out to every open view. Delivery is
// best effort: a full queue drops the event and a closed view misses it.
type TripHub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan models.TripEvent
	done      chan struct{}
	stopOnce  sync.Once
	mu        sync.Mutex
}

// NewTripHub creates a hub and starts its broadcasting goroutine.
func NewTripHub() *TripHub {
	hub := &TripHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.TripEvent, 100),
		done:      make(chan struct{}),
	}
	go hub.run()
	return hub
}

// run is the only writer on every registered connection.
func (h *TripHub) run() {
	for {
		select {
		case ev := <-h.broadcast:
			h.mu.Lock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.Unlock()

			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Dropping view after failed broadcast.")
					h.UnregisterClient(conn)
					conn.Close()
				}
			}
		case <-h.done:
			return
		}
	}
}

// RegisterClient adds a view connection to the hub.
func (h *TripHub) RegisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithFields(logrus.Fields{
		"conn_ptr": fmt.Sprintf("%p", conn),
		"clients":  len(h.clients),
	}).Info("View registered with TripHub.")
}

// UnregisterClient removes a view connection from the hub.
func (h *TripHub) UnregisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	logrus.WithFields(logrus.Fields{
		"conn_ptr": fmt.Sprintf("%p", conn),
		"clients":  len(h.clients),
	}).Info("View unregistered from TripHub.")
}

// ClientCount reports how many views are connected.
func (h *TripHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues ev for broadcast without blocking.
func (h *TripHub) Publish(ev models.TripEvent) {
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithField("action", ev.Action).Warn("Trip broadcast channel full, dropping message.")
	}
}

// PublishTripUpdate announces a committed write.
func (h *TripHub) PublishTripUpdate(action, dayID string) {
	h.Publish(models.TripEvent{
		Type:      models.EventTripUpdated,
		Action:    action,
		DayID:     dayID,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Stop ends the broadcasting goroutine. Queued events are discarded.
func (h *TripHub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// HandleTripWebSocket upgrades the request and keeps the view registered until
// it disconnects. Messages sent by the view are ignored.
// @Router /ws/trip [get]
func (h *TripHub) HandleTripWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	h.RegisterClient(conn)
	defer h.UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Debug("View WebSocket closed normally.")
			} else {
				logrus.WithError(err).Debug("View WebSocket read ended.")
			}
			return
		}
	}
}
