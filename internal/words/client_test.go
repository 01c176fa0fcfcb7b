package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"spelltutor/internal/state"
)

func TestClient_AgainstServer(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL+"/", 5*time.Second)
	ctx := context.Background()

	e, err := client.RandomWord(ctx, state.Medium)
	if err != nil {
		t.Fatalf("RandomWord failed: %v", err)
	}
	if e.Word == "" || e.Hint == "" {
		t.Errorf("Incomplete entry %+v", e)
	}

	lw, err := client.LetterWords(ctx, "z")
	if err != nil {
		t.Fatalf("LetterWords failed: %v", err)
	}
	if lw.Letter != "Z" || len(lw.Words) == 0 || lw.Random == "" {
		t.Errorf("Unexpected letter words %+v", lw)
	}
}

func TestClient_ErrorsAreTransportErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := client.RandomWord(ctx, state.Difficulty("extreme"))
	if !state.IsTransport(err) {
		t.Errorf("Expected TransportError for 400, got %v", err)
	}

	down := NewClient("http://127.0.0.1:1", time.Second)
	if _, err := down.LetterWords(ctx, "A"); !state.IsTransport(err) {
		t.Errorf("Expected TransportError for refused connection, got %v", err)
	}
}

func TestClient_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).RandomWord(context.Background(), state.Easy)
	if !state.IsTransport(err) {
		t.Errorf("Expected TransportError for undecodable body, got %v", err)
	}
}

func TestClient_SharesConcurrentLetterLookups(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(`{"letter":"B","words":["bat","ball"],"random":"bat"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	var wg sync.WaitGroup
	results := make([]LetterWords, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = client.LetterWords(context.Background(), "B")
		}(i)
	}

	// Give the goroutines time to join the in-flight request.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n < 1 || n > 5 {
		t.Errorf("Unexpected request count %d", n)
	}
	for i, lw := range results {
		if len(lw.Words) != 2 {
			t.Errorf("Result %d missing words: %+v", i, lw)
		}
	}
	// Results are independent copies.
	results[0].Words[0] = "changed"
	if results[1].Words[0] == "changed" {
		t.Error("Callers share the same word slice")
	}
}
