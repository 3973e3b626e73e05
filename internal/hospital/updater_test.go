package hospital

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUpdaterRefreshOnceJoinsCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	dir := NewDirectory()
	for name, c := range SeedCoordinates {
		dir.Set(name, c)
	}

	u := NewUpdater(NewFeedClient(srv.URL, 0), dir, nil, time.Minute, nil)
	if err := u.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("RefreshOnce: %v", err)
	}
}

func TestUpdaterRefreshOnceFeedDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	u := NewUpdater(NewFeedClient(srv.URL, 0), NewDirectory(), nil, time.Minute, nil)
	if err := u.RefreshOnce(context.Background()); err == nil {
		t.Error("expected an error when the feed is down")
	}
}

func TestUpdaterRunStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	u := NewUpdater(NewFeedClient(srv.URL, 0), NewDirectory(), nil, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- u.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
