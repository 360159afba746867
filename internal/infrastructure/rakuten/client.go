// Package rakuten implements the marketplace item search API client and the
// listing-URL conventions of the marketplace.
package rakuten

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/janscope/backend/internal/domain"
)

// Client handles communication with the marketplace item search API.
type Client struct {
	httpClient    *http.Client
	applicationID string
	baseURL       string
}

// NewClient creates a new search API client. The application ID is an
// explicit dependency; the client never reads the environment. Search calls
// carry no client-side timeout and block until the transport resolves.
func NewClient(applicationID, baseURL string) *Client {
	return &Client{
		httpClient:    &http.Client{},
		applicationID: applicationID,
		baseURL:       baseURL,
	}
}

// SearchShopKeyword runs a keyword search scoped to a single shop.
func (c *Client) SearchShopKeyword(ctx context.Context, shopCode, keyword string, hits int) ([]domain.MarketItem, error) {
	params := url.Values{}
	params.Set("applicationId", c.applicationID)
	params.Set("shopCode", shopCode)
	params.Set("keyword", keyword)
	params.Set("hits", strconv.Itoa(hits))

	return c.search(ctx, params)
}

// SearchGenre runs a category search bounded by an inclusive price band.
func (c *Client) SearchGenre(ctx context.Context, genreID string, band domain.PriceBand, hits int) ([]domain.MarketItem, error) {
	params := url.Values{}
	params.Set("applicationId", c.applicationID)
	params.Set("genreId", genreID)
	params.Set("minPrice", strconv.Itoa(band.Min))
	params.Set("maxPrice", strconv.Itoa(band.Max))
	params.Set("hits", strconv.Itoa(hits))

	return c.search(ctx, params)
}

// search executes one API call and maps the response envelope.
func (c *Client) search(ctx context.Context, params url.Values) ([]domain.MarketItem, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMarketAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrMarketAPIFailure, resp.StatusCode)
	}

	var envelope searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMarketAPIFailure, err)
	}

	return mapItems(envelope), nil
}
