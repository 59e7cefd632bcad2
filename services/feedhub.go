// Package services provides business logic services
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/nats-io/nats.go"
)

// FeedEvent is the envelope relayed to dashboard clients
type FeedEvent struct {
	Type string          `json:"type"` // reading, alert
	Data json.RawMessage `json:"data"`
}

// FeedBus is the messaging fabric the hub relays over. Satisfied by
// natsserver.EmbeddedNATS.
type FeedBus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// FeedHub bridges per-user NATS subjects to WebSocket dashboard clients, so
// new readings and alerts show up without polling
type FeedHub struct {
	bus FeedBus

	// WebSocket connections
	clients   map[*FeedClient]bool
	clientsMu sync.RWMutex

	// Per-user NATS subscriptions (userID -> subscription)
	subscriptions   map[uint]*userSubscription
	subscriptionsMu sync.Mutex

	register   chan *FeedClient
	unregister chan *FeedClient
}

// userSubscription tracks the NATS subscriptions backing one user's feed
type userSubscription struct {
	readingSub *nats.Subscription
	alertSub   *nats.Subscription
	viewers    int
}

// NewFeedHub creates a new feed hub
func NewFeedHub(bus FeedBus) *FeedHub {
	return &FeedHub{
		bus:           bus,
		clients:       make(map[*FeedClient]bool),
		subscriptions: make(map[uint]*userSubscription),
		register:      make(chan *FeedClient),
		unregister:    make(chan *FeedClient),
	}
}

// Run starts the hub's main loop
func (h *FeedHub) Run() {
	log.Println("📺 Feed hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()

			if err := h.subscribeUser(client.userID); err != nil {
				log.Printf("⚠️ Feed subscription failed for user %d: %v", client.userID, err)
			}
			log.Printf("📺 Client connected: %s (user %d)", client.remoteAddr, client.userID)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()

			h.unsubscribeUser(client.userID)
			log.Printf("📺 Client disconnected: %s", client.remoteAddr)
		}
	}
}

// Register adds a client to the hub
func (h *FeedHub) Register(client *FeedClient) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *FeedHub) Unregister(client *FeedClient) {
	h.unregister <- client
}

// subscribeUser creates the NATS subscriptions for a user's feed, reusing
// them when another client for the same user is already connected
func (h *FeedHub) subscribeUser(userID uint) error {
	h.subscriptionsMu.Lock()
	defer h.subscriptionsMu.Unlock()

	if sub, exists := h.subscriptions[userID]; exists {
		sub.viewers++
		return nil
	}

	sub := &userSubscription{viewers: 1}

	readingSub, err := h.bus.Subscribe(ReadingSubject(userID), func(msg *nats.Msg) {
		h.broadcast(userID, "reading", msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to readings: %w", err)
	}
	sub.readingSub = readingSub

	alertSub, err := h.bus.Subscribe(AlertSubject(userID), func(msg *nats.Msg) {
		h.broadcast(userID, "alert", msg.Data)
	})
	if err != nil {
		readingSub.Unsubscribe()
		return fmt.Errorf("failed to subscribe to alerts: %w", err)
	}
	sub.alertSub = alertSub

	h.subscriptions[userID] = sub
	return nil
}

func (h *FeedHub) unsubscribeUser(userID uint) {
	h.subscriptionsMu.Lock()
	defer h.subscriptionsMu.Unlock()

	sub, exists := h.subscriptions[userID]
	if !exists {
		return
	}

	sub.viewers--
	if sub.viewers > 0 {
		return
	}

	if sub.readingSub != nil {
		sub.readingSub.Unsubscribe()
	}
	if sub.alertSub != nil {
		sub.alertSub.Unsubscribe()
	}
	delete(h.subscriptions, userID)
}

// broadcast sends an event to every connected client of the user. Slow
// clients get the message dropped rather than stalling the hub.
func (h *FeedHub) broadcast(userID uint, eventType string, data []byte) {
	event := FeedEvent{Type: eventType, Data: data}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for client := range h.clients {
		if client.userID != userID {
			continue
		}
		select {
		case client.send <- payload:
		default:
		}
	}
}

// PublishReading publishes a stored reading to the user's feed subject
func (h *FeedHub) PublishReading(userID uint, reading interface{}) {
	h.publish(ReadingSubject(userID), reading)
}

// PublishAlert publishes a created alert to the user's feed subject
func (h *FeedHub) PublishAlert(userID uint, alert interface{}) {
	h.publish(AlertSubject(userID), alert)
}

func (h *FeedHub) publish(subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ Feed publish marshal failed: %v", err)
		return
	}
	if err := h.bus.Publish(subject, data); err != nil {
		log.Printf("⚠️ Feed publish failed on %s: %v", subject, err)
	}
}

// ReadingSubject is the NATS subject carrying a user's readings
func ReadingSubject(userID uint) string {
	return fmt.Sprintf("energy.readings.%d", userID)
}

// AlertSubject is the NATS subject carrying a user's alerts
func AlertSubject(userID uint) string {
	return fmt.Sprintf("energy.alerts.%d", userID)
}

// HubStats holds feed hub statistics
type HubStats struct {
	Clients       int `json:"clients"`
	Subscriptions int `json:"subscriptions"`
}

// Stats returns current hub statistics
func (h *FeedHub) Stats() HubStats {
	h.clientsMu.RLock()
	clients := len(h.clients)
	h.clientsMu.RUnlock()

	h.subscriptionsMu.Lock()
	subs := len(h.subscriptions)
	h.subscriptionsMu.Unlock()

	return HubStats{Clients: clients, Subscriptions: subs}
}
