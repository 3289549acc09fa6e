package loan

import (
	"time"

	"peerlend-backend/internal/domain/oracle"
)

type State string

const (
	// StateCreated: posted by the borrower, waiting for a lender.
	StateCreated State = "created"
	// StateFunded: lender paid out the principal, repayment outstanding.
	StateFunded State = "funded"
	// StateRepaid / StateLiquidated: terminal.
	StateRepaid     State = "repaid"
	StateLiquidated State = "liquidated"
)

// Loan is the central ledger record. The numeric ID is the ledger sequence:
// assigned once on insert, never reused, never deleted.
type Loan struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"loan_id"`
	// Principal in the smallest unit of the loan token.
	Amount       int64  `gorm:"column:amount;not null" json:"amount"`
	InterestRate uint32 `gorm:"column:interest_rate;not null" json:"interest_rate"`
	// Nominal term; informational, the funding deadline is what is enforced.
	Duration uint32 `gorm:"column:duration;not null" json:"duration"`
	// amount + floor(amount*rate/100), fixed at creation.
	RepaymentAmount int64     `gorm:"column:repayment_amount;not null" json:"repayment_amount"`
	FundingDeadline time.Time `gorm:"column:funding_deadline;not null" json:"funding_deadline"`
	Borrower        string    `gorm:"size:32;column:borrower;index:idx_loans_borrower" json:"borrower"`
	// Empty until funded; immutable afterwards.
	Lender           string    `gorm:"size:32;column:lender" json:"lender,omitempty"`
	CollateralCode   string    `gorm:"size:12;column:collateral_code" json:"collateral_code"`
	CollateralIssuer string    `gorm:"size:32;column:collateral_issuer" json:"collateral_issuer"`
	CollateralAmount int64     `gorm:"column:collateral_amount;not null" json:"collateral_amount"`
	Token            string    `gorm:"size:32;column:token;not null" json:"token"`
	State            State     `gorm:"type:enum('created','funded','repaid','liquidated');default:'created';index:idx_loans_state" json:"state"`
	StateUpdatedAt   time.Time `gorm:"column:state_updated_at;autoCreateTime" json:"state_updated_at"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Active reports whether the loan is still open for funding.
func (l *Loan) Active() bool { return l.State == StateCreated }

// Terminal reports whether no further transition is permitted.
func (l *Loan) Terminal() bool { return l.State == StateRepaid || l.State == StateLiquidated }

func (l *Loan) CollateralAsset() oracle.Asset {
	return oracle.Asset{Code: l.CollateralCode, Issuer: l.CollateralIssuer}
}

// SetState flips the lifecycle state and stamps the transition time.
func (l *Loan) SetState(s State, at time.Time) {
	l.State = s
	l.StateUpdatedAt = at.UTC()
}
