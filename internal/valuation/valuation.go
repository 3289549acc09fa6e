package valuation

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
)

// Collateralization thresholds, in percent of principal. Creation requires
// at least 150%; liquidation triggers strictly below 120%.
const (
	minCollateralizationPct = 150
	liquidationThresholdPct = 120
)

// Valuer prices collateral against the active oracle feed and applies the
// collateralization policy. All division truncates, so a valuation always
// rounds down — the conservative direction for the lender.
type Valuer struct {
	feed *oracle.Holder
}

func New(feed *oracle.Holder) *Valuer { return &Valuer{feed: feed} }

// Value returns amount * price / 10^decimals for the asset, truncated.
// Values beyond int64 saturate at math.MaxInt64; the threshold comparisons
// below work on the unclamped big value, so saturation never flips a check.
func (v *Valuer) Value(ctx context.Context, asset oracle.Asset, amount int64) (int64, error) {
	val, err := v.value(ctx, asset, amount)
	if err != nil {
		return 0, err
	}
	if !val.IsInt64() {
		return math.MaxInt64, nil
	}
	return val.Int64(), nil
}

// CheckCreation enforces the 150%-minimum rule evaluated at creation time:
// value(collateral) >= principal * 150 / 100, truncating.
func (v *Valuer) CheckCreation(ctx context.Context, asset oracle.Asset, collateralAmount, principal int64) error {
	val, err := v.value(ctx, asset, collateralAmount)
	if err != nil {
		return err
	}
	if val.Cmp(pctOf(principal, minCollateralizationPct)) < 0 {
		return loan.ErrInsufficientCollateral
	}
	return nil
}

// CheckLiquidation permits liquidation only when the current collateral
// value has fallen strictly below 120% of principal.
func (v *Valuer) CheckLiquidation(ctx context.Context, asset oracle.Asset, collateralAmount, principal int64) error {
	val, err := v.value(ctx, asset, collateralAmount)
	if err != nil {
		return err
	}
	if val.Cmp(pctOf(principal, liquidationThresholdPct)) >= 0 {
		return loan.ErrCannotLiquidate
	}
	return nil
}

func (v *Valuer) value(ctx context.Context, asset oracle.Asset, amount int64) (*big.Int, error) {
	oc := v.feed.Load()
	if oc == nil {
		return nil, oracle.ErrUnavailable
	}

	version, err := oc.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}
	if version == 0 {
		return nil, oracle.ErrNotInitialized
	}

	quote, err := oc.LastPrice(ctx, asset)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, oracle.ErrPriceUnavailable
	}

	decimals, err := oc.Decimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}

	// amount * price can overflow int64 for large positions; the product is
	// taken in big.Int and only the final quotient is narrowed.
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	val := new(big.Int).Mul(big.NewInt(amount), big.NewInt(quote.Price))
	return val.Quo(val, scale), nil
}

// pctOf returns principal * pct / 100, truncating, without int64 overflow.
func pctOf(principal int64, pct int64) *big.Int {
	out := new(big.Int).Mul(big.NewInt(principal), big.NewInt(pct))
	return out.Quo(out, big.NewInt(100))
}
