package token

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidAmount     = errors.New("token: transfer amount must be positive")
	ErrUnknownParty      = errors.New("token: payer has no balance record")
	ErrInsufficientFunds = errors.New("token: insufficient funds")
)

// TransferClient moves a fixed amount of a fungible token between parties.
// Implementations must be atomic with respect to the caller's unit of work:
// a failed transfer leaves both balances untouched, and a transfer inside a
// transaction rolls back with it.
type TransferClient interface {
	Transfer(ctx context.Context, tokenID, from, to string, amount int64) error
}

// Ledger is the wider surface of the built-in balance store, used by admin
// seeding and the balance query endpoint. External transfer backends only
// need TransferClient.
type Ledger interface {
	TransferClient
	Credit(ctx context.Context, tokenID, party string, amount int64) error
	Balance(ctx context.Context, tokenID, party string) (int64, error)
}

// Balance is one party's holding of one token (table `balances`).
type Balance struct {
	Party     string    `gorm:"size:32;column:party;primaryKey" json:"party"`
	Token     string    `gorm:"size:32;column:token;primaryKey" json:"token"`
	Amount    int64     `gorm:"column:amount;not null" json:"amount"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Balance) TableName() string { return "balances" }
