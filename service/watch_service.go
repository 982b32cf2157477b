package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Collection identifies one managed entity collection in a change event.
type Collection string

const (
	CollectionProfile      Collection = "profile"
	CollectionExperiences  Collection = "experiences"
	CollectionProjects     Collection = "projects"
	CollectionTechnologies Collection = "technologies"
)

// ChangeEvent notifies subscribers that a collection's canonical data
// changed and should be refetched.
type ChangeEvent struct {
	Collection Collection `json:"collection"`
}

const watchChannel = "portfolio:changes"

// WatchHub fans collection change events out to subscribers: draft
// controllers reconciling against fresh canonical data, and websocket
// clients refreshing the dashboard. When a Redis client is provided, events
// are routed through a pub/sub channel so every instance behind a load
// balancer sees writes made on any of them; without Redis the hub is a
// purely in-process broadcaster.
type WatchHub struct {
	mu   sync.Mutex
	subs map[chan ChangeEvent]bool
	rdb  *redis.Client
	done chan struct{}
}

// NewWatchHub creates a hub. rdb may be nil for single-instance deployments.
func NewWatchHub(rdb *redis.Client) *WatchHub {
	h := &WatchHub{
		subs: make(map[chan ChangeEvent]bool),
		rdb:  rdb,
		done: make(chan struct{}),
	}
	if rdb != nil {
		go h.relay()
	}
	return h
}

// relay forwards events published to the Redis channel into the local
// subscriber set, including events this instance published itself.
func (h *WatchHub) relay() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, watchChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-h.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("❌ WatchHub: bad change event payload: %v", err)
				continue
			}
			h.deliver(event)
		}
	}
}

// Publish announces that a collection changed. With Redis configured the
// event round-trips through pub/sub; otherwise it is delivered directly.
func (h *WatchHub) Publish(collection Collection) {
	event := ChangeEvent{Collection: collection}
	if h.rdb != nil {
		payload, _ := json.Marshal(event)
		if err := h.rdb.Publish(context.Background(), watchChannel, payload).Err(); err != nil {
			log.Printf("❌ WatchHub: failed to publish to Redis, delivering locally: %v", err)
			h.deliver(event)
		}
		return
	}
	h.deliver(event)
}

func (h *WatchHub) deliver(event ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		// Non-blocking: a slow subscriber drops the event rather than
		// stalling every other one; events carry no payload, so the next
		// refetch catches it up
		select {
		case sub <- event:
		default:
		}
	}
}

// Subscribe registers a new subscriber channel.
func (h *WatchHub) Subscribe() chan ChangeEvent {
	ch := make(chan ChangeEvent, 8)
	h.mu.Lock()
	h.subs[ch] = true
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *WatchHub) Unsubscribe(ch chan ChangeEvent) {
	h.mu.Lock()
	if h.subs[ch] {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Close stops the Redis relay and drops all subscribers.
func (h *WatchHub) Close() {
	close(h.done)
	h.mu.Lock()
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub)
	}
	h.mu.Unlock()
}
