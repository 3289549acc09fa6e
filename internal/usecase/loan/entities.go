package loan

import (
	"time"

	domain "peerlend-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	Amount           int64  `json:"amount"`
	Token            string `json:"token"`
	InterestRate     uint32 `json:"interest_rate"`
	Duration         uint32 `json:"duration"`
	Borrower         string `json:"borrower"`
	CollateralCode   string `json:"collateral_code"`
	CollateralIssuer string `json:"collateral_issuer"`
	CollateralAmount int64  `json:"collateral_amount"`
}

type LoanDTO struct {
	LoanID           uint64    `json:"loan_id"`
	Amount           int64     `json:"amount"`
	InterestRate     uint32    `json:"interest_rate"`
	Duration         uint32    `json:"duration"`
	RepaymentAmount  int64     `json:"repayment_amount"`
	FundingDeadline  time.Time `json:"funding_deadline"`
	Borrower         string    `json:"borrower"`
	Lender           string    `json:"lender,omitempty"`
	CollateralCode   string    `json:"collateral_code"`
	CollateralIssuer string    `json:"collateral_issuer"`
	CollateralAmount int64     `json:"collateral_amount"`
	Token            string    `json:"token"`
	State            string    `json:"state"`
	CreatedAt        time.Time `json:"created_at"`
}

type StatsDTO struct {
	TotalLoans  int64 `json:"total_loans"`
	ActiveLoans int   `json:"active_loans"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.ID,
		Amount:           l.Amount,
		InterestRate:     l.InterestRate,
		Duration:         l.Duration,
		RepaymentAmount:  l.RepaymentAmount,
		FundingDeadline:  l.FundingDeadline,
		Borrower:         l.Borrower,
		Lender:           l.Lender,
		CollateralCode:   l.CollateralCode,
		CollateralIssuer: l.CollateralIssuer,
		CollateralAmount: l.CollateralAmount,
		Token:            l.Token,
		State:            string(l.State),
		CreatedAt:        l.CreatedAt,
	}
}
