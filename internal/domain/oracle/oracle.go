package oracle

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable: the feed could not be reached or returned garbage.
	ErrUnavailable = errors.New("oracle: price feed unavailable")
	// ErrPriceUnavailable: the feed is up but has no quote for the asset.
	ErrPriceUnavailable = errors.New("oracle: no quote for asset")
	// ErrNotInitialized: the feed reports version 0 on the liveness probe.
	ErrNotInitialized = errors.New("oracle: feed not initialized")
)

// Asset identifies a priceable asset: a code plus the issuing authority.
// An empty code denotes the native asset, keyed by issuer only.
type Asset struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer"`
}

func (a Asset) Native() bool { return a.Code == "" }

// PriceData is a single quote: fixed-point price (scaled by the feed's
// Decimals) and the unix timestamp it was observed at.
type PriceData struct {
	Price     int64 `json:"price"`
	Timestamp int64 `json:"timestamp"`
}

// PriceOracle is the narrow surface the ledger needs from an external
// price feed. Implementations must be safe for concurrent use.
type PriceOracle interface {
	// Version returns the feed's version counter; 0 means uninitialized/dead.
	Version(ctx context.Context) (uint32, error)
	// Decimals returns the fixed-point scale of every price the feed quotes.
	Decimals(ctx context.Context) (uint32, error)
	// LastPrice returns the most recent quote for the asset, or
	// ErrPriceUnavailable when the feed has none.
	LastPrice(ctx context.Context, asset Asset) (*PriceData, error)
	// CrossPrice returns the base/quote cross rate.
	CrossPrice(ctx context.Context, base, quote Asset) (*PriceData, error)
}

// Dialer builds a PriceOracle client for a feed address. Admin rotation
// probes a candidate through a Dialer before swapping it in.
type Dialer func(address string) PriceOracle
