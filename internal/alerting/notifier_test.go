package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWebhookNotifierSuccess(t *testing.T) {
	var received Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, time.Second, testLogger())
	note := Notification{Building: "plant-3", Event: EventPairsDiscovered, PairCount: 4, InstanceCol: "IMU_I"}

	if err := notifier.Notify(context.Background(), note); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if received.Building != "plant-3" || received.PairCount != 4 {
		t.Fatalf("payload wrong: %+v", received)
	}
	if !strings.Contains(received.Message, "4 sensor pair(s)") {
		t.Errorf("message not rendered: %q", received.Message)
	}
	if received.Timestamp.IsZero() {
		t.Error("timestamp should be filled in")
	}
}

func TestWebhookNotifierConfigureManually(t *testing.T) {
	var received Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, time.Second, testLogger())
	note := Notification{Building: "plant-3", Event: EventNoPairsFound}

	if err := notifier.Notify(context.Background(), note); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if !strings.Contains(received.Message, "configure pairs manually") {
		t.Errorf("expected configure-manually message, got %q", received.Message)
	}
}

func TestWebhookNotifierHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, time.Second, testLogger())
	if err := notifier.Notify(context.Background(), Notification{Building: "b"}); err == nil {
		t.Fatal("5xx response should error")
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
