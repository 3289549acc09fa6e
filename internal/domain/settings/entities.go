package settings

import (
	"errors"
	"time"
)

var (
	ErrNotInitialized = errors.New("settings: ledger not initialized")
	ErrInvalidBounds  = errors.New("settings: loan bounds must satisfy 0 < min <= max")
	ErrMissingAdmin   = errors.New("settings: admin identity required")
	ErrMissingOracle  = errors.New("settings: oracle address required")
)

// Settings is the single process-wide configuration record, written once at
// initialization. Only OracleAddress changes afterwards, via admin rotation.
type Settings struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	OracleAddress string    `gorm:"type:text;column:oracle_address;not null" json:"oracle_address"`
	Admin         string    `gorm:"size:32;column:admin;not null" json:"admin"`
	MinLoan       int64     `gorm:"column:min_loan;not null" json:"min_loan"`
	MaxLoan       int64     `gorm:"column:max_loan;not null" json:"max_loan"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Settings) TableName() string { return "settings" }

func (s *Settings) Validate() error {
	if s.MinLoan <= 0 || s.MinLoan > s.MaxLoan {
		return ErrInvalidBounds
	}
	if s.Admin == "" {
		return ErrMissingAdmin
	}
	if s.OracleAddress == "" {
		return ErrMissingOracle
	}
	return nil
}
