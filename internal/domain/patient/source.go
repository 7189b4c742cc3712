package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SourceUser is the raw record served by the upstream user API.
type SourceUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
	} `json:"address"`
}

type usersResponse struct {
	Users []SourceUser `json:"users"`
}

// Client reads user records from the upstream source over HTTP. The source
// is read-only and unauthenticated.
type Client struct {
	baseURL string
	limit   int
	http    *http.Client
}

func NewClient(baseURL string, limit int) *Client {
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetHTTPClient overrides the underlying HTTP client, for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// FetchUsers performs a single GET against the source endpoint and decodes
// up to limit user records.
func (c *Client) FetchUsers(ctx context.Context) ([]SourceUser, error) {
	url := fmt.Sprintf("%s/users?limit=%d", c.baseURL, c.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build source request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch users: unexpected status %d", resp.StatusCode)
	}

	var body usersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return body.Users, nil
}

// Feed produces Patient records from the upstream source: one fetch, then a
// transform per record. Transport and decode failures propagate so callers
// can distinguish a failed fetch from a source with zero records.
type Feed struct {
	client *Client
	gen    *Generator
}

func NewFeed(client *Client, gen *Generator) *Feed {
	return &Feed{client: client, gen: gen}
}

func (f *Feed) Fetch(ctx context.Context) ([]Patient, error) {
	users, err := f.client.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	patients := make([]Patient, len(users))
	for i, u := range users {
		patients[i] = f.gen.Transform(u)
	}
	return patients, nil
}
