package oraclemock

import (
	"context"

	"peerlend-backend/internal/domain/oracle"
)

// Ensure compile-time compliance
var _ oracle.PriceOracle = (*Feed)(nil)

// Feed is a function-backed mock that satisfies oracle.PriceOracle.
// Unfilled fields fall back to a healthy feed quoting StaticPrice with
// StaticDecimals, which keeps happy-path tests short.
type Feed struct {
	VersionFn    func(ctx context.Context) (uint32, error)
	DecimalsFn   func(ctx context.Context) (uint32, error)
	LastPriceFn  func(ctx context.Context, asset oracle.Asset) (*oracle.PriceData, error)
	CrossPriceFn func(ctx context.Context, base, quote oracle.Asset) (*oracle.PriceData, error)

	StaticPrice    int64
	StaticDecimals uint32
}

func (m *Feed) Version(ctx context.Context) (uint32, error) {
	if m.VersionFn != nil {
		return m.VersionFn(ctx)
	}
	return 1, nil
}

func (m *Feed) Decimals(ctx context.Context) (uint32, error) {
	if m.DecimalsFn != nil {
		return m.DecimalsFn(ctx)
	}
	return m.StaticDecimals, nil
}

func (m *Feed) LastPrice(ctx context.Context, asset oracle.Asset) (*oracle.PriceData, error) {
	if m.LastPriceFn != nil {
		return m.LastPriceFn(ctx, asset)
	}
	return &oracle.PriceData{Price: m.StaticPrice, Timestamp: 1}, nil
}

func (m *Feed) CrossPrice(ctx context.Context, base, quote oracle.Asset) (*oracle.PriceData, error) {
	if m.CrossPriceFn != nil {
		return m.CrossPriceFn(ctx, base, quote)
	}
	return &oracle.PriceData{Price: m.StaticPrice, Timestamp: 1}, nil
}
