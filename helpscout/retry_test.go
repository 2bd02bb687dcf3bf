package helpscout

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", config.MaxAttempts)
	}
	if config.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms", config.Delay)
	}
}

func TestDo_TransientFailureIsRetried(t *testing.T) {
	var requests atomic.Int32
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"collections":{"page":1,"pages":1,"items":[{"id":"1","name":"FAQ"}]}}`))
	}))

	collections, err := api.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(collections) != 1 {
		t.Errorf("got %d collections, want 1", len(collections))
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestDo_RetriesAreExhausted(t *testing.T) {
	var requests atomic.Int32
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := api.ListCollections(context.Background())
	if err == nil {
		t.Fatal("expected an error once retries are exhausted")
	}
	if got := KindOf(err); got != KindTransient {
		t.Errorf("KindOf(err) = %q, want %q", got, KindTransient)
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	var requests atomic.Int32
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := api.ListCollections(context.Background())
	if err == nil {
		t.Fatal("expected an auth error")
	}
	if got := KindOf(err); got != KindAuth {
		t.Errorf("KindOf(err) = %q, want %q", got, KindAuth)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1 (no retries)", got)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	api.Retry.Delay = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := api.ListCollections(ctx)
		done <- err
	}()

	// Give the first attempt time to fail, then cancel mid-backoff.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop didn't notice the cancelled context")
	}
}
