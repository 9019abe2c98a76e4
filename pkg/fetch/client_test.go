package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const feed = "STARTDATA+\n2022-08-03; 5:29;H\n2022-08-03;17:40;H\nENDDATA+\nPegel/Date 675P at 2022-08-03\n"

func TestTideFeedURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		fmt.Fprint(w, feed)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/widget/%s/%s", server.URL+"/locations", time.Second, 0)
	got, err := c.TideFeed(context.Background(), "675P", "2022-08-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != feed {
		t.Errorf("got body %q, want %q", got, feed)
	}
	if want := "/widget/675P/2022-08-03"; gotPath != want {
		t.Errorf("got path %q, want %q", gotPath, want)
	}
}

func TestRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "Husum;675P\n")
	}))
	defer server.Close()

	c := NewClient("", server.URL, time.Second, 1)
	c.Backoff = time.Millisecond
	got, err := c.LocationsCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Husum;675P\n" {
		t.Errorf("got %q", got)
	}
	if calls := atomic.LoadInt32(&calls); calls != 2 {
		t.Errorf("got %d calls, want 2", calls)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/%s/%s", "", time.Second, 3)
	c.Backoff = time.Millisecond
	_, err := c.TideFeed(context.Background(), "nope", "2022-08-03")

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("got error %v, want a *TransportError", err)
	}
	if terr.StatusCode != http.StatusNotFound {
		t.Errorf("got status %d, want %d", terr.StatusCode, http.StatusNotFound)
	}
	if calls := atomic.LoadInt32(&calls); calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}

func TestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c := NewClient(addr+"/%s/%s", "", time.Second, 1)
	c.Backoff = time.Millisecond
	_, err := c.TideFeed(context.Background(), "675P", "2022-08-03")

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("got error %v, want a *TransportError", err)
	}
	if terr.StatusCode != 0 {
		t.Errorf("got status %d, want 0", terr.StatusCode)
	}
}
