package uow

import (
	"context"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/settings"
	"peerlend-backend/internal/domain/token"
)

// Repos bundles every repository bound to one transaction. Transfers joins
// the same transaction, so a ledger mutation and its value transfer commit
// or abort together — there is no partially-applied operation.
type Repos struct {
	Loans     loan.Repository
	Settings  settings.Repository
	Transfers token.TransferClient
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
