package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/uow"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	balRepo := NewBalanceRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, makeLoan(bob)); err != nil {
			return err
		}
		return r.Transfers.(*BalanceRepository).Credit(ctx, testToken, alice, 1000)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := loanRepo.GetByID(ctx, 1); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	if got, _ := balRepo.Balance(ctx, testToken, alice); got != 1000 {
		t.Fatalf("balance = %d, want 1000", got)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	sentinel := errors.New("boom")
	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, makeLoan(bob)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := loanRepo.GetByID(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan gone after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	balRepo := NewBalanceRepository(db)

	seed := makeLoan(bob)
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	if err := balRepo.Credit(ctx, testToken, alice, 2000); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	// fund: transfer and state flip commit together
	if err := guow.WithinLoanTx(ctx, seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.State != loanDomain.StateCreated {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		if err := r.Transfers.Transfer(ctx, testToken, alice, l.Borrower, l.Amount); err != nil {
			return err
		}
		l.Lender = alice
		l.SetState(loanDomain.StateFunded, time.Now())
		return r.Loans.Save(ctx, l)
	}); err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := loanRepo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatalf("GetByID post-commit: %v", err)
	}
	if got.State != loanDomain.StateFunded || got.Lender != alice {
		t.Fatalf("loan not updated: %+v", got)
	}
	if bal, _ := balRepo.Balance(ctx, testToken, bob); bal != seed.Amount {
		t.Fatalf("borrower balance = %d, want %d", bal, seed.Amount)
	}
}

func TestGormUoW_WithinLoanTx_RollbackUndoesTransfer(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	balRepo := NewBalanceRepository(db)

	seed := makeLoan(bob)
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	if err := balRepo.Credit(ctx, testToken, alice, 2000); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	sentinel := errors.New("stop")
	_ = guow.WithinLoanTx(ctx, seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := r.Transfers.Transfer(ctx, testToken, alice, l.Borrower, l.Amount); err != nil {
			return err
		}
		l.SetState(loanDomain.StateFunded, time.Now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// the transfer rolled back with the state flip — no partial application
	got, err := loanRepo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatalf("post-rollback GetByID: %v", err)
	}
	if got.State != loanDomain.StateCreated {
		t.Fatalf("expected created after rollback, got %s", got.State)
	}
	if bal, _ := balRepo.Balance(ctx, testToken, alice); bal != 2000 {
		t.Fatalf("lender balance = %d, want 2000 (transfer rolled back)", bal)
	}
	if bal, _ := balRepo.Balance(ctx, testToken, bob); bal != 0 {
		t.Fatalf("borrower balance = %d, want 0", bal)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openTestDB(t)

	guow := NewGormUoW(db)
	err := guow.WithinLoanTx(context.Background(), 404, func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
