// Package catalog reads product listings from the external product API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"vibecart/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

// ErrProductNotFound is returned when the upstream has no such product.
var ErrProductNotFound = errors.New("product not found")

// Config holds catalog client settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	CacheSize int
}

// Client fetches products through a circuit breaker and a short-lived response cache.
type Client struct {
	baseURL string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
	cache   *expirable.LRU[string, []byte]
	group   singleflight.Group
}

// NewClient creates a catalog client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("catalog circuit breaker state changed")
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		breaker: breaker,
		cache:   expirable.NewLRU[string, []byte](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// ListProducts returns every product in the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	body, err := c.fetch(ctx, "/products")
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct returns a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductNotFound
	}
	body, err := c.fetch(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	return &product, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if body, ok := c.cache.Get(path); ok {
		return body, nil
	}

	// The shared call outlives any single caller; only the client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(path, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(shared, c.timeout)
		defer cancel()
		body, err := c.breaker.Execute(func() ([]byte, error) {
			return c.get(fetchCtx, path)
		})
		if err != nil {
			return nil, err
		}
		c.cache.Add(path, body)
		return body, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	return res.Val.([]byte), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Get(c.baseURL + path)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("catalog request %s: %w", path, err)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog request %s failed: %w", path, errors.Join(errs...))
	}

	switch {
	case code == fiber.StatusNotFound:
		return nil, ErrProductNotFound
	case code < 200 || code >= 300:
		return nil, fmt.Errorf("catalog request %s: unexpected status %d", path, code)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, ErrProductNotFound
	}
	return body, nil
}
