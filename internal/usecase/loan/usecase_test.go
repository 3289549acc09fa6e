package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
	"peerlend-backend/internal/domain/settings"
	"peerlend-backend/internal/testutil/loanmock"
	"peerlend-backend/internal/testutil/oraclemock"
	"peerlend-backend/internal/testutil/settingsmock"
	"peerlend-backend/internal/valuation"

	"gorm.io/gorm"
)

const borrower = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
const usdc = "dddddddddddddddddddddddddddddddd"

func testSettings() *settingsmock.Repo {
	return settingsmock.Static(settings.Settings{
		OracleAddress: "http://oracle:9000",
		Admin:         "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		MinLoan:       100,
		MaxLoan:       1_000_000,
	})
}

// newTestUsecase wires a healthy oracle (price 1, decimals 0) so collateral
// value == collateral amount, which keeps the threshold math readable.
func newTestUsecase(repo *loanmock.Repo) *Usecase {
	holder := oracle.NewHolder(&oraclemock.Feed{StaticPrice: 1, StaticDecimals: 0})
	return NewUsecase(repo, testSettings(), valuation.New(holder), holder)
}

func validInput() CreateLoanInput {
	return CreateLoanInput{
		Amount:           1000,
		Token:            usdc,
		InterestRate:     5,
		Duration:         30,
		Borrower:         borrower,
		CollateralCode:   "XLM",
		CollateralIssuer: "cccccccccccccccccccccccccccccccc",
		CollateralAmount: 1500,
	}
}

func TestCreate_Success(t *testing.T) {
	var created *domain.Loan
	uc := newTestUsecase(&loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			l.ID = 1 // the DB assigns the sequence
			created = l
			return nil
		},
	})
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	dto, err := uc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if dto.LoanID != 1 {
		t.Fatalf("loan id = %d, want 1", dto.LoanID)
	}
	if dto.State != string(domain.StateCreated) {
		t.Fatalf("state = %s", dto.State)
	}
	// 1000 at 5% → 1050, fixed at creation
	if dto.RepaymentAmount != 1050 {
		t.Fatalf("repayment = %d, want 1050", dto.RepaymentAmount)
	}
	if want := base.Add(24 * time.Hour); !dto.FundingDeadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", dto.FundingDeadline, want)
	}
	if dto.Lender != "" {
		t.Fatalf("lender must be empty on creation, got %q", dto.Lender)
	}
	if created == nil || created.Borrower != borrower {
		t.Fatalf("persisted record wrong: %+v", created)
	}
}

func TestCreate_RepaymentTruncates(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{})
	in := validInput()
	in.Amount = 999
	in.InterestRate = 7 // 999*7/100 = 69.93 → 69
	in.CollateralAmount = 2000

	dto, err := uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if dto.RepaymentAmount != 999+69 {
		t.Fatalf("repayment = %d, want 1068", dto.RepaymentAmount)
	}
}

func TestCreate_PrincipalBounds(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{
		CreateFn: func(context.Context, *domain.Loan) error {
			t.Fatal("Create must not reach the repository on invalid input")
			return nil
		},
	})

	in := validInput()
	in.Amount = 99
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrLoanTooSmall) {
		t.Fatalf("want ErrLoanTooSmall, got %v", err)
	}

	in = validInput()
	in.Amount = 1_000_001
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrLoanTooLarge) {
		t.Fatalf("want ErrLoanTooLarge, got %v", err)
	}
}

func TestCreate_InterestRange(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{})
	for _, rate := range []uint32{0, 11, 100} {
		in := validInput()
		in.InterestRate = rate
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInterest) {
			t.Fatalf("rate %d: want ErrInvalidInterest, got %v", rate, err)
		}
	}
	// both ends of the range are legal
	for _, rate := range []uint32{1, 10} {
		in := validInput()
		in.InterestRate = rate
		if _, err := uc.Create(context.Background(), in); err != nil {
			t.Fatalf("rate %d: %v", rate, err)
		}
	}
}

func TestCreate_ZeroDuration(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{})
	in := validInput()
	in.Duration = 0
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("want ErrInvalidDuration, got %v", err)
	}
}

func TestCreate_UndercollateralizedRejected(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{})
	in := validInput()
	in.CollateralAmount = 1499 // 149.9% of 1000
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrInsufficientCollateral) {
		t.Fatalf("want ErrInsufficientCollateral, got %v", err)
	}
}

func TestCreate_NotInitialized(t *testing.T) {
	holder := oracle.NewHolder(&oraclemock.Feed{StaticPrice: 1})
	uc := NewUsecase(&loanmock.Repo{}, &settingsmock.Repo{}, valuation.New(holder), holder)
	if _, err := uc.Create(context.Background(), validInput()); !errors.Is(err, settings.ErrNotInitialized) {
		t.Fatalf("want ErrNotInitialized, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{
		GetByIDFn: func(context.Context, uint64) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	if _, err := uc.Get(context.Background(), 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListActive_Maps(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{
		ListActiveFn: func(context.Context) ([]domain.Loan, error) {
			return []domain.Loan{
				{ID: 1, State: domain.StateCreated, Borrower: borrower},
				{ID: 3, State: domain.StateCreated, Borrower: borrower},
			}, nil
		},
	})
	out, err := uc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive err: %v", err)
	}
	if len(out) != 2 || out[0].LoanID != 1 || out[1].LoanID != 3 {
		t.Fatalf("got %+v", out)
	}
}

func TestStats(t *testing.T) {
	uc := newTestUsecase(&loanmock.Repo{
		CountFn: func(context.Context) (int64, error) { return 7, nil },
		ListActiveFn: func(context.Context) ([]domain.Loan, error) {
			return []domain.Loan{{ID: 5}, {ID: 6}}, nil
		},
	})
	st, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats err: %v", err)
	}
	if st.TotalLoans != 7 || st.ActiveLoans != 2 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestCrossPrice(t *testing.T) {
	base := oracle.Asset{Code: "XLM", Issuer: "cccccccccccccccccccccccccccccccc"}
	quote := oracle.Asset{Code: "USD", Issuer: usdc}

	uc := newTestUsecase(&loanmock.Repo{})
	uc.feed = oracle.NewHolder(&oraclemock.Feed{
		CrossPriceFn: func(_ context.Context, b, q oracle.Asset) (*oracle.PriceData, error) {
			if b != base || q != quote {
				t.Fatalf("asset pair passed through wrong: %v %v", b, q)
			}
			return &oracle.PriceData{Price: 42, Timestamp: 99}, nil
		},
	})
	pd, err := uc.CrossPrice(context.Background(), base, quote)
	if err != nil {
		t.Fatalf("CrossPrice err: %v", err)
	}
	if pd.Price != 42 {
		t.Fatalf("price = %d", pd.Price)
	}

	// no feed installed
	uc.feed = oracle.NewHolder(nil)
	if _, err := uc.CrossPrice(context.Background(), base, quote); !errors.Is(err, oracle.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}

	// feed answers but has no pair
	uc.feed = oracle.NewHolder(&oraclemock.Feed{
		CrossPriceFn: func(context.Context, oracle.Asset, oracle.Asset) (*oracle.PriceData, error) {
			return nil, nil
		},
	})
	if _, err := uc.CrossPrice(context.Background(), base, quote); !errors.Is(err, oracle.ErrPriceUnavailable) {
		t.Fatalf("want ErrPriceUnavailable, got %v", err)
	}
}
