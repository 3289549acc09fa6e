package loan

import "context"

type Repository interface {
	// Create inserts the record and assigns the next ledger id. The id
	// sequence advances only here; reads never consume it.
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the row for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	// ListActive returns every created-state loan in ascending id order.
	// Pure read; repeated calls see the same result absent writes.
	ListActive(ctx context.Context) ([]Loan, error)
	// Count reads the current position of the ledger sequence without
	// advancing it.
	Count(ctx context.Context) (int64, error)
}
