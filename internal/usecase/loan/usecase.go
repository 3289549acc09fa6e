package loan

import (
	"context"
	"errors"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
	"peerlend-backend/internal/domain/settings"
	"peerlend-backend/internal/valuation"

	"gorm.io/gorm"
)

// fundingWindow is how long a created loan stays open for a lender.
const fundingWindow = 24 * time.Hour

const (
	minInterestRate = 1
	maxInterestRate = 10
)

type Usecase struct {
	loans    domain.Repository
	settings settings.Repository
	valuer   *valuation.Valuer
	feed     *oracle.Holder

	now func() time.Time
}

func NewUsecase(loans domain.Repository, cfg settings.Repository, v *valuation.Valuer, feed *oracle.Holder) *Usecase {
	return &Usecase{loans: loans, settings: cfg, valuer: v, feed: feed, now: time.Now}
}

// Create validates the request and appends a new created-state record.
// Validation order: principal bounds, interest, duration, collateral value.
// No funds move here.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	cfg, err := u.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.Amount < cfg.MinLoan {
		return nil, domain.ErrLoanTooSmall
	}
	if in.Amount > cfg.MaxLoan {
		return nil, domain.ErrLoanTooLarge
	}
	if in.InterestRate < minInterestRate || in.InterestRate > maxInterestRate {
		return nil, domain.ErrInvalidInterest
	}
	if in.Duration == 0 {
		return nil, domain.ErrInvalidDuration
	}

	collateral := oracle.Asset{Code: in.CollateralCode, Issuer: in.CollateralIssuer}
	if err := u.valuer.CheckCreation(ctx, collateral, in.CollateralAmount, in.Amount); err != nil {
		return nil, err
	}

	now := u.now().UTC()
	l := &domain.Loan{
		Amount:       in.Amount,
		InterestRate: in.InterestRate,
		Duration:     in.Duration,
		// Fixed at creation, never recomputed.
		RepaymentAmount:  in.Amount + in.Amount*int64(in.InterestRate)/100,
		FundingDeadline:  now.Add(fundingWindow),
		Borrower:         in.Borrower,
		CollateralCode:   in.CollateralCode,
		CollateralIssuer: in.CollateralIssuer,
		CollateralAmount: in.CollateralAmount,
		Token:            in.Token,
		State:            domain.StateCreated,
		StateUpdatedAt:   now,
	}

	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// ListActive returns every loan still awaiting funding, ascending by id.
func (u *Usecase) ListActive(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// CrossPrice is a pure passthrough to the oracle; no ledger interaction.
func (u *Usecase) CrossPrice(ctx context.Context, base, quote oracle.Asset) (*oracle.PriceData, error) {
	oc := u.feed.Load()
	if oc == nil {
		return nil, oracle.ErrUnavailable
	}
	pd, err := oc.CrossPrice(ctx, base, quote)
	if err != nil {
		return nil, err
	}
	if pd == nil {
		return nil, oracle.ErrPriceUnavailable
	}
	return pd, nil
}

// Stats reads the ledger sequence position and the active count without
// advancing anything.
func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	total, err := u.loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := u.loans.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsDTO{TotalLoans: total, ActiveLoans: len(active)}, nil
}
