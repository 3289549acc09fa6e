package admin

import (
	"context"
	"errors"
	"fmt"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
	"peerlend-backend/internal/domain/settings"
	"peerlend-backend/internal/domain/token"
)

// Usecase gates the two privileged surfaces: oracle rotation and balance
// seeding. Both require the caller to match the admin identity stored in
// the settings record.
type Usecase struct {
	settings settings.Repository
	dial     oracle.Dialer
	feed     *oracle.Holder
	balances token.Ledger
}

func NewUsecase(cfg settings.Repository, dial oracle.Dialer, feed *oracle.Holder, balances token.Ledger) *Usecase {
	return &Usecase{settings: cfg, dial: dial, feed: feed, balances: balances}
}

// Initialize seeds the settings record on first boot. The configured feed
// is probed before anything is written; a dead feed aborts startup. On
// later boots the stored record wins (an admin rotation must survive a
// restart), and only the live client is refreshed from the stored address.
func (u *Usecase) Initialize(ctx context.Context, desired settings.Settings) (*settings.Settings, error) {
	stored, err := u.settings.Get(ctx)
	switch {
	case err == nil:
		// already initialized — reconnect to the stored oracle
		if err := u.probeAndActivate(ctx, stored.OracleAddress); err != nil {
			return nil, err
		}
		return stored, nil
	case !errors.Is(err, settings.ErrNotInitialized):
		return nil, err
	}

	if err := desired.Validate(); err != nil {
		return nil, err
	}
	if err := u.probeAndActivate(ctx, desired.OracleAddress); err != nil {
		return nil, err
	}
	if err := u.settings.Save(ctx, &desired); err != nil {
		return nil, err
	}
	return &desired, nil
}

type UpdateOracleInput struct {
	OracleAddress string `json:"oracle_address"`
	Updater       string `json:"updater"`
}

// UpdateOracle rotates the price feed. The candidate must answer the
// liveness probe before the stored address or the live client change;
// OracleAddress is the only settings field mutable after initialization.
func (u *Usecase) UpdateOracle(ctx context.Context, in UpdateOracleInput) error {
	cfg, err := u.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrNotInitialized) {
			return loan.ErrUnauthorized
		}
		return err
	}
	if in.Updater != cfg.Admin {
		return loan.ErrUnauthorized
	}

	if err := u.probeAndActivate(ctx, in.OracleAddress); err != nil {
		return err
	}

	cfg.OracleAddress = in.OracleAddress
	return u.settings.Save(ctx, cfg)
}

type CreditInput struct {
	Updater string `json:"updater"`
	Party   string `json:"party"`
	Token   string `json:"token"`
	Amount  int64  `json:"amount"`
}

// Credit seeds a party balance in the built-in transfer ledger. Dev/ops
// faucet; admin only.
func (u *Usecase) Credit(ctx context.Context, in CreditInput) error {
	cfg, err := u.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrNotInitialized) {
			return loan.ErrUnauthorized
		}
		return err
	}
	if in.Updater != cfg.Admin {
		return loan.ErrUnauthorized
	}
	return u.balances.Credit(ctx, in.Token, in.Party, in.Amount)
}

func (u *Usecase) Balance(ctx context.Context, tokenID, party string) (int64, error) {
	return u.balances.Balance(ctx, tokenID, party)
}

func (u *Usecase) probeAndActivate(ctx context.Context, address string) error {
	oc := u.dial(address)
	version, err := oc.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}
	if version == 0 {
		return oracle.ErrNotInitialized
	}
	u.feed.Store(oc)
	return nil
}
