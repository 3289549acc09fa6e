package settingsmock

import (
	"context"

	"peerlend-backend/internal/domain/settings"
)

// Ensure compile-time compliance
var _ settings.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies settings.Repository.
type Repo struct {
	GetFn  func(ctx context.Context) (*settings.Settings, error)
	SaveFn func(ctx context.Context, s *settings.Settings) error
}

// Static returns a repo that always serves a copy of s.
func Static(s settings.Settings) *Repo {
	return &Repo{GetFn: func(context.Context) (*settings.Settings, error) {
		cp := s
		return &cp, nil
	}}
}

func (m *Repo) Get(ctx context.Context) (*settings.Settings, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, settings.ErrNotInitialized
}

func (m *Repo) Save(ctx context.Context, s *settings.Settings) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
