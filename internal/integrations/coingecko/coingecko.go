// Package coingecko is the price oracle client for the CoinGecko public API.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/PaesslerAG/jsonpath"
	"github.com/sirupsen/logrus"
)

// VsCurrency is the reference currency every price is quoted in
const VsCurrency = "usd"

// MarketsPageSize is the number of coins requested from /coins/markets
const MarketsPageSize = 250

// ErrCoinNotFound is returned when a search yields no coin
var ErrCoinNotFound = errors.New("coin not found")

// Client handles integration with CoinGecko
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new CoinGecko client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.CoinGeckoURL, "/"),
		apiKey:  cfg.CoinGeckoAPIKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// get sends a GET request and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	addr := c.baseURL + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	c.log.Debugf("CoinGecko request: %s", addr)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Markets returns the first page of coins ordered by market cap
func (c *Client) Markets(ctx context.Context) ([]models.Quote, error) {
	query := url.Values{}
	query.Set("vs_currency", VsCurrency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", fmt.Sprint(MarketsPageSize))
	query.Set("page", "1")

	var quotes []models.Quote
	if err := c.get(ctx, "/coins/markets", query, &quotes); err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}

	c.log.Debugf("Fetched %d market quotes", len(quotes))
	return quotes, nil
}

// SimplePrices returns the current price of each known id. Ids CoinGecko
// does not know are absent from the result.
func (c *Client) SimplePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	prices := make(map[string]float64)
	if len(ids) == 0 {
		return prices, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", VsCurrency)

	var raw map[string]map[string]float64
	if err := c.get(ctx, "/simple/price", query, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	for id, byCurrency := range raw {
		if price, ok := byCurrency[VsCurrency]; ok {
			prices[id] = price
		}
	}
	return prices, nil
}

// SearchResult is one coin returned by /search
type SearchResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Search looks coins up by free text
func (c *Client) Search(ctx context.Context, text string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("query", text)

	var result struct {
		Coins []SearchResult `json:"coins"`
	}
	if err := c.get(ctx, "/search", query, &result); err != nil {
		return nil, fmt.Errorf("failed to search coins: %w", err)
	}
	return result.Coins, nil
}

// Coin returns the name, symbol and current price of a coin id
func (c *Client) Coin(ctx context.Context, id string) (*models.Quote, error) {
	var doc any
	if err := c.get(ctx, "/coins/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, fmt.Errorf("failed to fetch coin %q: %w", id, err)
	}

	price, err := jsonFloat(doc, "$.market_data.current_price."+VsCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coin %q: %w", id, err)
	}
	name, _ := jsonString(doc, "$.name")
	symbol, _ := jsonString(doc, "$.symbol")

	return &models.Quote{ID: id, Name: name, Symbol: symbol, Price: price}, nil
}

// Lookup resolves a free-text coin name to the best search hit and its price
func (c *Client) Lookup(ctx context.Context, name string) (*models.Quote, error) {
	hits, err := c.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 || hits[0].ID == "" {
		return nil, fmt.Errorf("%w: %q", ErrCoinNotFound, name)
	}

	quote, err := c.Coin(ctx, hits[0].ID)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Resolved coin %q to %s at %.8f %s", name, quote.ID, quote.Price, VsCurrency)
	return quote, nil
}

func jsonFloat(doc any, path string) (float64, error) {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, err
	}
	f, ok := val.(float64)
	if !ok {
		return 0, fmt.Errorf("%s is not a number: %v", path, val)
	}
	return f, nil
}

func jsonString(doc any, path string) (string, error) {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string: %v", path, val)
	}
	return s, nil
}
