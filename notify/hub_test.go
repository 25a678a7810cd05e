package notify

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterPublishUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.register <- client

	hub.Publish(OrderEvent{Action: "created", OrderID: "ord123", Status: "pending", TotalPaid: 50050})

	select {
	case got := <-client.Send:
		var ev OrderEvent
		if err := json.Unmarshal(got, &ev); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if ev.OrderID != "ord123" || ev.Status != "pending" || ev.TotalPaid != 50050 {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	hub.unregister <- client
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// no buffer and no reader: the first undelivered event evicts the client
	slow := &Client{Send: make(chan []byte)}
	hub.register <- slow

	hub.Publish(OrderEvent{Action: "created", OrderID: "ord1"})

	// let the hub process the broadcast before looking at the channel
	time.Sleep(200 * time.Millisecond)

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected closed channel for slow subscriber")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for eviction")
	}
}

func TestHubDropAfterStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	hub.register <- client

	hub.Stop()

	// a connection goroutine leaving after shutdown must not hang
	finished := make(chan struct{})
	go func() {
		hub.drop(client)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("drop blocked after hub stopped")
	}
}
