package controller

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/appadook/appadook-portfolio-next/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SubscribeController streams collection change events to dashboard
// clients over a websocket. Events carry only the collection name; the
// client refetches the data it cares about.
type SubscribeController struct {
	hub *service.WatchHub
}

// NewSubscribeController creates a new SubscribeController
func NewSubscribeController(hub *service.WatchHub) *SubscribeController {
	return &SubscribeController{hub: hub}
}

// Subscribe handles GET /admin/subscribe
func (c *SubscribeController) Subscribe(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Subscribe: websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	events := c.hub.Subscribe()
	defer c.hub.Unsubscribe(events)

	// Reader goroutine: we never expect client messages, but reading is how
	// websocket close frames are noticed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := ws.WriteJSON(event); err != nil {
				log.Printf("❌ Subscribe: failed to write event: %v", err)
				return
			}
		}
	}
}
