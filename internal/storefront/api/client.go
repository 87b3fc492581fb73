// Package api is the storefront's HTTP client for the backend: product
// catalog fetch and order submission.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nazeru/larek-storefront-go/internal/storefront/domain"
	"github.com/nazeru/larek-storefront-go/pkg/logging"
)

// IdempotencyHeader lets the backend de-duplicate resubmissions of the same
// checkout attempt.
const IdempotencyHeader = "Idempotency-Key"

type listResponse struct {
	Items json.RawMessage `json:"items"`
}

type Client struct {
	http    *http.Client
	baseURL string
	cdnURL  string
}

// New wires a client against the API base; image paths in fetched products
// get prefixed with cdnURL.
func New(httpClient *http.Client, baseURL, cdnURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		cdnURL:  strings.TrimRight(cdnURL, "/"),
	}
}

// GetProducts fetches the catalog. A response without a well-formed "items"
// array is treated as an empty catalog (logged), not as an error; transport
// and HTTP-status failures are errors.
func (c *Client) GetProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		c.logBadShape("product list is not an object")
		return []domain.Product{}, nil
	}
	if len(list.Items) == 0 {
		c.logBadShape("product list has no items field")
		return []domain.Product{}, nil
	}
	var items []domain.Product
	if err := json.Unmarshal(list.Items, &items); err != nil {
		c.logBadShape("items is not a product array")
		return []domain.Product{}, nil
	}
	for i := range items {
		items[i].Image = c.cdnURL + items[i].Image
	}
	return items, nil
}

// PostOrder submits the order under the given idempotency key (one key per
// checkout attempt, reused on resubmission of that attempt).
func (c *Client) PostOrder(ctx context.Context, order domain.Order, idemKey string) (domain.OrderResult, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return domain.OrderResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(data))
	if err != nil {
		return domain.OrderResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set(IdempotencyHeader, idemKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.OrderResult{}, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.OrderResult{}, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var result domain.OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("decode order result: %w", err)
	}
	return result, nil
}

func (c *Client) logBadShape(msg string) {
	logging.Log(logging.Fields{
		Component: "api",
		Status:    "bad_shape",
		Message:   msg,
	})
}
