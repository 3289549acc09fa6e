package transfermock

import (
	"context"

	"peerlend-backend/internal/domain/token"
)

// Ensure compile-time compliance
var _ token.Ledger = (*Ledger)(nil)

// Call records one Transfer invocation.
type Call struct {
	Token  string
	From   string
	To     string
	Amount int64
}

// Ledger is a function-backed mock that satisfies token.Ledger. Every
// Transfer is appended to Calls so tests can assert who paid whom, even
// when TransferFn is left nil (which makes transfers succeed).
type Ledger struct {
	TransferFn func(ctx context.Context, tokenID, from, to string, amount int64) error
	CreditFn   func(ctx context.Context, tokenID, party string, amount int64) error
	BalanceFn  func(ctx context.Context, tokenID, party string) (int64, error)

	Calls []Call
}

func (m *Ledger) Transfer(ctx context.Context, tokenID, from, to string, amount int64) error {
	m.Calls = append(m.Calls, Call{Token: tokenID, From: from, To: to, Amount: amount})
	if m.TransferFn != nil {
		return m.TransferFn(ctx, tokenID, from, to, amount)
	}
	return nil
}

func (m *Ledger) Credit(ctx context.Context, tokenID, party string, amount int64) error {
	if m.CreditFn != nil {
		return m.CreditFn(ctx, tokenID, party, amount)
	}
	return nil
}

func (m *Ledger) Balance(ctx context.Context, tokenID, party string) (int64, error) {
	if m.BalanceFn != nil {
		return m.BalanceFn(ctx, tokenID, party)
	}
	return 0, nil
}
