package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"peerlend-backend/internal/domain/oracle"
)

const requestTimeout = 5 * time.Second

// Client implements oracle.PriceOracle over a price-feed HTTP API:
//
//	GET /version                 -> {"version": n}
//	GET /decimals                -> {"decimals": n}
//	GET /price?code=&issuer=     -> {"price": p, "timestamp": t} | 404
//	GET /price/cross?base_code=&base_issuer=&quote_code=&quote_issuer=
//
// A 404 means the feed has no quote for the asset; anything else non-200
// reads as the feed being unavailable.
type Client struct {
	base string
	http *http.Client
}

func NewClient(address string) *Client {
	return &Client{
		base: strings.TrimRight(address, "/"),
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Dial is the oracle.Dialer used by admin rotation.
func Dial(address string) oracle.PriceOracle { return NewClient(address) }

func (c *Client) Version(ctx context.Context) (uint32, error) {
	var out struct {
		Version uint32 `json:"version"`
	}
	if err := c.get(ctx, "/version", nil, &out); err != nil {
		return 0, err
	}
	return out.Version, nil
}

func (c *Client) Decimals(ctx context.Context) (uint32, error) {
	var out struct {
		Decimals uint32 `json:"decimals"`
	}
	if err := c.get(ctx, "/decimals", nil, &out); err != nil {
		return 0, err
	}
	return out.Decimals, nil
}

func (c *Client) LastPrice(ctx context.Context, asset oracle.Asset) (*oracle.PriceData, error) {
	q := url.Values{}
	q.Set("code", asset.Code)
	q.Set("issuer", asset.Issuer)
	var out oracle.PriceData
	if err := c.get(ctx, "/price", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CrossPrice(ctx context.Context, base, quote oracle.Asset) (*oracle.PriceData, error) {
	q := url.Values{}
	q.Set("base_code", base.Code)
	q.Set("base_issuer", base.Issuer)
	q.Set("quote_code", quote.Code)
	q.Set("quote_issuer", quote.Issuer)
	var out oracle.PriceData
	if err := c.get(ctx, "/price/cross", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return oracle.ErrPriceUnavailable
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: feed returned %d", oracle.ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}
	return nil
}
