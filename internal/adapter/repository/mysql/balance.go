package mysql

import (
	"context"
	"errors"

	tokenDomain "peerlend-backend/internal/domain/token"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceRepository is the built-in value-transfer backend: a balances
// table moved with plain debits and credits. Bound to a transaction it
// satisfies the atomicity the lifecycle expects — a failed transfer (or a
// later failure in the same unit of work) rolls everything back.
type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

func (r *BalanceRepository) Transfer(ctx context.Context, tokenID, from, to string, amount int64) error {
	if amount <= 0 {
		return tokenDomain.ErrInvalidAmount
	}

	payer, err := r.getForUpdate(ctx, tokenID, from)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tokenDomain.ErrUnknownParty
		}
		return err
	}
	if payer.Amount < amount {
		return tokenDomain.ErrInsufficientFunds
	}

	payer.Amount -= amount
	if err := r.db.WithContext(ctx).Save(payer).Error; err != nil {
		return err
	}
	return r.Credit(ctx, tokenID, to, amount)
}

func (r *BalanceRepository) Credit(ctx context.Context, tokenID, party string, amount int64) error {
	if amount <= 0 {
		return tokenDomain.ErrInvalidAmount
	}
	receiver, err := r.getForUpdate(ctx, tokenID, party)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(&tokenDomain.Balance{
			Party:  party,
			Token:  tokenID,
			Amount: amount,
		}).Error
	case err != nil:
		return err
	}
	receiver.Amount += amount
	return r.db.WithContext(ctx).Save(receiver).Error
}

// Balance returns the current holding; absent rows read as zero.
func (r *BalanceRepository) Balance(ctx context.Context, tokenID, party string) (int64, error) {
	var out tokenDomain.Balance
	res := r.db.WithContext(ctx).
		Where("party = ? AND token = ?", party, tokenID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if res.Error != nil {
		return 0, res.Error
	}
	return out.Amount, nil
}

func (r *BalanceRepository) getForUpdate(ctx context.Context, tokenID, party string) (*tokenDomain.Balance, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out tokenDomain.Balance
	res := q.Where("party = ? AND token = ?", party, tokenID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
