package settlement

import (
	"context"
	"errors"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/valuation"

	"gorm.io/gorm"
)

// Usecase drives the funded/repaid/liquidated transitions. Every operation
// runs inside one unit of work with the loan row locked up-front, so the
// value transfer and the state flip commit or roll back together.
type Usecase struct {
	uow    uow.UnitOfWork
	valuer *valuation.Valuer

	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, v *valuation.Valuer) *Usecase {
	return &Usecase{uow: tx, valuer: v, now: time.Now}
}

type FundInput struct {
	LoanID uint64 `json:"loan_id"`
	Token  string `json:"token"`
	Lender string `json:"lender"`
	Amount int64  `json:"amount"`
}

type RepayInput struct {
	LoanID   uint64 `json:"loan_id"`
	Token    string `json:"token"`
	Borrower string `json:"borrower"`
	Amount   int64  `json:"amount"`
}

type SettlementDTO struct {
	LoanID         uint64    `json:"loan_id"`
	State          string    `json:"state"`
	Lender         string    `json:"lender,omitempty"`
	StateUpdatedAt time.Time `json:"state_updated_at"`
}

func toDTO(l *domain.Loan) *SettlementDTO {
	return &SettlementDTO{
		LoanID:         l.ID,
		State:          string(l.State),
		Lender:         l.Lender,
		StateUpdatedAt: l.StateUpdatedAt,
	}
}

// Fund moves the principal from the lender to the borrower and flips the
// loan to funded. Funding at exactly the deadline still succeeds.
func (u *Usecase) Fund(ctx context.Context, in FundInput) (*SettlementDTO, error) {
	var dto *SettlementDTO

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StateCreated {
			return domain.ErrInactiveLoan
		}
		if u.now().UTC().After(l.FundingDeadline) {
			return domain.ErrDeadlinePassed
		}
		if in.Amount != l.Amount {
			return domain.ErrInvalidAmount
		}

		if err := r.Transfers.Transfer(ctx, in.Token, in.Lender, l.Borrower, in.Amount); err != nil {
			return err
		}

		l.Lender = in.Lender
		l.SetState(domain.StateFunded, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Repay moves principal plus interest back to the lender and closes the
// loan. Only the original borrower may repay, and only in full.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*SettlementDTO, error) {
	var dto *SettlementDTO

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if in.Borrower != l.Borrower {
			return domain.ErrUnauthorized
		}
		if in.Amount != l.RepaymentAmount {
			return domain.ErrInvalidRepaymentAmount
		}
		// Covers both "never funded" (no lender yet) and "already settled".
		if l.State != domain.StateFunded || l.Lender == "" {
			return domain.ErrInactiveLoan
		}

		if err := r.Transfers.Transfer(ctx, in.Token, l.Borrower, l.Lender, in.Amount); err != nil {
			return err
		}

		l.SetState(domain.StateRepaid, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Liquidate re-prices the collateral and, when its value sits strictly
// below 120% of principal, marks the loan liquidated. The protocol never
// escrows collateral at creation, so there is nothing held to seize here;
// the transition is record-only.
func (u *Usecase) Liquidate(ctx context.Context, loanID uint64) (*SettlementDTO, error) {
	var dto *SettlementDTO

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Terminal() {
			return domain.ErrInactiveLoan
		}
		if err := u.valuer.CheckLiquidation(ctx, l.CollateralAsset(), l.CollateralAmount, l.Amount); err != nil {
			return err
		}

		l.SetState(domain.StateLiquidated, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// A settlement against a missing record reads as "inactive loan" to the
// caller, matching the lifecycle error taxonomy.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrInactiveLoan
	}
	return err
}
