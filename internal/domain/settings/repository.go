package settings

import "context"

type Repository interface {
	// Get returns the configuration record, or ErrNotInitialized when the
	// ledger was never initialized.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
