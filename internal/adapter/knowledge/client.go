// Package knowledge implements the page source against the knowledge-base
// HTTP API.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/repository"
)

const defaultTimeout = 15 * time.Second

// Config carries the connection settings for the knowledge base.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a PageSource talking to the knowledge-base REST API.
func NewClient(cfg Config) (repository.PageSource, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("knowledge: base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type pageRefPayload struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	LastEdited time.Time `json:"last_edited"`
}

type searchResponse struct {
	Pages []pageRefPayload `json:"pages"`
}

type pageResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *client) SearchPages(ctx context.Context, keywords []string) ([]entity.PageRef, error) {
	endpoint := fmt.Sprintf("%s/api/v1/pages/search?q=%s",
		c.baseURL, url.QueryEscape(strings.Join(keywords, ",")))

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, errors.Wrap(err, "search pages")
	}

	refs := make([]entity.PageRef, 0, len(payload.Pages))
	for _, p := range payload.Pages {
		refs = append(refs, entity.PageRef{ID: p.ID, Title: p.Title, LastEdited: p.LastEdited})
	}
	return refs, nil
}

func (c *client) GetPageContent(ctx context.Context, pageID string) (*entity.PageContent, error) {
	endpoint := fmt.Sprintf("%s/api/v1/pages/%s", c.baseURL, url.PathEscape(pageID))

	var payload pageResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, errors.Wrapf(err, "get page %s", pageID)
	}
	return &entity.PageContent{ID: payload.ID, Title: payload.Title, RawText: payload.Content}, nil
}

func (c *client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
