package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/Jamuna1221/WattLab/natsserver"
	"github.com/nats-io/nats.go"
)

func startFeed(t *testing.T) (*natsserver.EmbeddedNATS, *FeedHub) {
	t.Helper()

	cfg := natsserver.DefaultConfig()
	cfg.Port = -1 // pick a free port
	srv, err := natsserver.New(cfg)
	if err != nil {
		t.Fatalf("failed to start embedded NATS: %v", err)
	}
	t.Cleanup(srv.Shutdown)

	hub := NewFeedHub(srv)
	go hub.Run()
	return srv, hub
}

func connectFeedClient(t *testing.T, hub *FeedHub, userID uint) *FeedClient {
	t.Helper()

	client := NewFeedClient(hub, nil, userID, "test")
	hub.Register(client)
	return client
}

// eventually polls cond until it holds or the deadline passes
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func receiveEvent(t *testing.T, client *FeedClient) FeedEvent {
	t.Helper()

	select {
	case payload := <-client.send:
		var event FeedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("failed to decode feed event: %v", err)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event relayed to the client")
		return FeedEvent{}
	}
}

func TestFeedHub_RelaysReadingToClient(t *testing.T) {
	srv, hub := startFeed(t)
	client := connectFeedClient(t, hub, 7)
	eventually(t, "subscription", func() bool { return hub.Stats().Subscriptions == 1 })

	hub.PublishReading(7, models.EnergyReading{ApplianceID: "app_1", Consumption: 3.2})
	srv.Conn().Flush()

	event := receiveEvent(t, client)
	if event.Type != "reading" {
		t.Errorf("expected event type reading, got %s", event.Type)
	}
	var reading models.EnergyReading
	if err := json.Unmarshal(event.Data, &reading); err != nil {
		t.Fatalf("failed to decode reading: %v", err)
	}
	if reading.Consumption != 3.2 || reading.ApplianceID != "app_1" {
		t.Errorf("unexpected reading payload: %+v", reading)
	}
}

func TestFeedHub_RelaysExternalAlertPublishes(t *testing.T) {
	srv, hub := startFeed(t)
	client := connectFeedClient(t, hub, 9)
	eventually(t, "subscription", func() bool { return hub.Stats().Subscriptions == 1 })

	// External producers publish straight to the user's alert subject
	nc, err := nats.Connect(srv.Address())
	if err != nil {
		t.Fatalf("failed to connect external client: %v", err)
	}
	defer nc.Close()

	if err := nc.Publish(AlertSubject(9), []byte(`{"message":"spike on heater"}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	nc.Flush()

	event := receiveEvent(t, client)
	if event.Type != "alert" {
		t.Errorf("expected event type alert, got %s", event.Type)
	}
}

func TestFeedHub_IgnoresOtherUsersEvents(t *testing.T) {
	srv, hub := startFeed(t)
	mine := connectFeedClient(t, hub, 1)
	theirs := connectFeedClient(t, hub, 2)
	eventually(t, "subscriptions", func() bool { return hub.Stats().Subscriptions == 2 })

	hub.PublishReading(1, models.EnergyReading{Consumption: 5})
	srv.Conn().Flush()

	receiveEvent(t, mine)

	select {
	case payload := <-theirs.send:
		t.Errorf("user 2 must not receive user 1's events, got %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFeedHub_SharedSubscriptionRefcount(t *testing.T) {
	srv, hub := startFeed(t)
	first := connectFeedClient(t, hub, 11)
	second := connectFeedClient(t, hub, 11)
	eventually(t, "clients", func() bool { return hub.Stats().Clients == 2 })

	// Two viewers of the same user share one pair of subject subscriptions
	if got := hub.Stats().Subscriptions; got != 1 {
		t.Fatalf("expected a single shared subscription, got %d", got)
	}

	hub.Unregister(first)
	eventually(t, "disconnect", func() bool { return hub.Stats().Clients == 1 })
	if got := hub.Stats().Subscriptions; got != 1 {
		t.Errorf("subscription must survive while a viewer remains, got %d", got)
	}

	hub.PublishReading(11, models.EnergyReading{Consumption: 1.5})
	srv.Conn().Flush()
	receiveEvent(t, second)

	hub.Unregister(second)
	eventually(t, "unsubscribe", func() bool { return hub.Stats().Subscriptions == 0 })
}
