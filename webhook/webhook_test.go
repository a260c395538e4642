package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDeliver_SignsBody(t *testing.T) {
	var gotSig string
	var gotEvent Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotSig = r.Header.Get(SignatureHeader)
		if want := "sha256=" + Sign("s3cret", body); gotSig != want {
			t.Errorf("signature = %q, want %q", gotSig, want)
		}
		_ = json.Unmarshal(body, &gotEvent)
	}))
	defer srv.Close()

	err := Deliver(context.Background(), srv.Client(), srv.URL, "s3cret", &Event{
		Type: "snapshot.refreshed",
		Data: map[string]any{"records": 3},
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if gotEvent.Type != "snapshot.refreshed" {
		t.Errorf("event type = %q", gotEvent.Type)
	}
}

func TestDeliver_NoSecretNoSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if sig := r.Header.Get(SignatureHeader); sig != "" {
			t.Errorf("unexpected signature %q", sig)
		}
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.Client(), srv.URL, "", &Event{Type: "x"}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
}

func TestDeliver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.Client(), srv.URL, "", &Event{Type: "x"}); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}

func TestNotifier_DeliversInBackground(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		var e Event
		_ = json.NewDecoder(r.Body).Decode(&e)
		got <- e.Type
	}))
	defer srv.Close()

	NewNotifier(srv.URL, "").Notify("snapshot.refresh_failed", nil)

	select {
	case typ := <-got:
		if typ != "snapshot.refresh_failed" {
			t.Errorf("event type = %q", typ)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was never delivered")
	}
}

func TestNewNotifier_EmptyURL(t *testing.T) {
	if NewNotifier("", "secret") != nil {
		t.Error("expected nil notifier for empty URL")
	}
}
