package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	ErrFeedBadStatus   = errors.New("feed bad status")
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// feedProduct is the wire shape of the upstream product feed. The feed
// carries more fields than these; unknown ones are ignored.
type feedProduct struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type FeedClient struct {
	URL    string
	Client *http.Client
}

func NewFeedClient(url string) *FeedClient {
	return &FeedClient{
		URL:    url,
		Client: &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *FeedClient) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrFeedUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, ErrFeedUnavailable
		}
		return nil, ErrFeedUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrFeedBadStatus, resp.StatusCode)
	}

	var raw []feedProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(raw))
	for _, fp := range raw {
		out = append(out, Product{ID: fp.ID, Name: fp.Title, Price: fp.Price})
	}
	return out, nil
}
