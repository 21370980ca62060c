// Package remote is the guestbook strategy backed by the hosted HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	hc      *http.Client
}

// listResponse is the wire shape of GET /guestbook.
type listResponse struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

type createRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Password string `json:"password"`
}

type deleteRequest struct {
	ID       int64  `json:"id"`
	Password string `json:"password"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
	}
}

// Authenticate is a no-op: the hosted API needs no session.
func (c *Client) Authenticate(ctx context.Context) error {
	return nil
}

func (c *Client) ListRecent(ctx context.Context, n int) ([]models.Post, error) {
	resp, err := c.list(ctx, 0, n)
	if err != nil {
		return nil, err
	}
	if resp.Posts == nil {
		return []models.Post{}, nil
	}
	return resp.Posts, nil
}

func (c *Client) ListPage(ctx context.Context, page, size int) (models.Page, error) {
	if page < 0 {
		page = 0
	}
	resp, err := c.list(ctx, page*size, size)
	if err != nil {
		return models.Page{}, err
	}

	numPages := 1
	if size > 0 {
		numPages = (resp.Total + size - 1) / size
		if numPages < 1 {
			numPages = 1
		}
	}

	posts := resp.Posts
	if posts == nil {
		posts = []models.Post{}
	}

	return models.Page{Posts: posts, TotalPages: numPages}, nil
}

func (c *Client) list(ctx context.Context, offset, limit int) (listResponse, error) {
	targetURL := fmt.Sprintf("%s/guestbook?offset=%d&limit=%d", c.baseURL, offset, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return listResponse{}, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return listResponse{}, fmt.Errorf("error calling guestbook API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return listResponse{}, fmt.Errorf("guestbook API returned status %d", resp.StatusCode)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return listResponse{}, fmt.Errorf("error decoding guestbook API response: %w", err)
	}

	return out, nil
}

func (c *Client) Create(ctx context.Context, name, content, password string) error {
	body := createRequest{Name: name, Content: content, Password: password}

	resp, err := c.send(ctx, http.MethodPost, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("guestbook API returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, id int64, password string) error {
	body := deleteRequest{ID: id, Password: password}

	resp, err := c.send(ctx, http.MethodPut, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusForbidden:
		return storage.ErrWrongPassword
	case resp.StatusCode == http.StatusNotFound:
		return storage.ErrNotFound
	default:
		log.Debugf("[remote] delete id:%d returned status %d", id, resp.StatusCode)
		return fmt.Errorf("guestbook API returned status %d", resp.StatusCode)
	}
}

func (c *Client) send(ctx context.Context, method string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/guestbook", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling guestbook API: %w", err)
	}

	return resp, nil
}
