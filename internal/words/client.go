package words

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"spelltutor/internal/state"
)

// Client fetches word data from a word service over HTTP.
// Failures are returned as *state.TransportError. There are no retries.
type Client struct {
	baseURL string
	http    *http.Client
	sf      singleflight.Group
}

// NewClient returns a client for the service at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// RandomWord calls GET /api/word/random?difficulty=d.
func (c *Client) RandomWord(ctx context.Context, d state.Difficulty) (Entry, error) {
	var e Entry
	q := url.Values{"difficulty": {string(d)}}
	if err := c.get(ctx, "/api/word/random", q, &e); err != nil {
		return Entry{}, &state.TransportError{Op: "random word", Err: err}
	}
	if e.Word == "" {
		return Entry{}, &state.TransportError{Op: "random word", Err: fmt.Errorf("empty word in response")}
	}
	return e, nil
}

// LetterWords calls GET /api/word/letter?letter=L. Concurrent lookups of
// the same letter share one request.
func (c *Client) LetterWords(ctx context.Context, letter string) (LetterWords, error) {
	key := strings.ToUpper(strings.TrimSpace(letter))
	v, err, _ := c.sf.Do("letter:"+key, func() (interface{}, error) {
		var lw LetterWords
		q := url.Values{"letter": {key}}
		if err := c.get(ctx, "/api/word/letter", q, &lw); err != nil {
			return LetterWords{}, err
		}
		return lw, nil
	})
	if err != nil {
		return LetterWords{}, &state.TransportError{Op: "letter words", Err: err}
	}

	lw := v.(LetterWords)
	if lw.Letter == "" {
		lw.Letter = key
	}
	// Shared results must not be aliased between callers.
	words := make([]string, len(lw.Words))
	copy(words, lw.Words)
	lw.Words = words
	return lw, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
