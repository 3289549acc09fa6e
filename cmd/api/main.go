package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"peerlend-backend/internal/adapter/feed"
	httpadp "peerlend-backend/internal/adapter/http"
	"peerlend-backend/internal/adapter/middleware"
	"peerlend-backend/internal/adapter/repository/mysql"
	"peerlend-backend/internal/config"
	loanDomain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
	settingsDomain "peerlend-backend/internal/domain/settings"
	tokenDomain "peerlend-backend/internal/domain/token"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	adminUC "peerlend-backend/internal/usecase/admin"
	loanUC "peerlend-backend/internal/usecase/loan"
	settlementUC "peerlend-backend/internal/usecase/settlement"
	"peerlend-backend/internal/valuation"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&loanDomain.Loan{}, &settingsDomain.Settings{}, &tokenDomain.Balance{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories + unit of work
	loans := mysql.NewLoanRepository(gdb)
	settingsRepo := mysql.NewSettingsRepository(gdb)
	balances := mysql.NewBalanceRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	// price feed: probe the configured oracle before serving anything
	holder := oracle.NewHolder(nil)
	adminUsecase := adminUC.NewUsecase(settingsRepo, feed.Dial, holder, balances)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	active, err := adminUsecase.Initialize(ctx, settingsDomain.Settings{
		OracleAddress: cfg.OracleURL,
		Admin:         cfg.AdminID,
		MinLoan:       cfg.MinLoan,
		MaxLoan:       cfg.MaxLoan,
	})
	cancel()
	if err != nil {
		log.Fatalf("initialize: %v", err)
	}
	log.Printf("ledger initialized: oracle=%s bounds=[%d,%d]", active.OracleAddress, active.MinLoan, active.MaxLoan)

	valuer := valuation.New(holder)
	loanUsecase := loanUC.NewUsecase(loans, settingsRepo, valuer, holder)
	settlementUsecase := settlementUC.NewUsecase(guow, valuer)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(loanUsecase)
	settlementHandler := httpadp.NewSettlementHandler(settlementUsecase)
	adminHandler := httpadp.NewAdminHandler(adminUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)

	e.POST("/loans", loanHandler.CreateLoan, idem)
	e.GET("/loans/active", loanHandler.ListActive)
	e.GET("/loans/stats", loanHandler.Stats)
	e.GET("/loans/:loan_id", loanHandler.GetLoan)
	e.POST("/loans/:loan_id/fund", settlementHandler.FundLoan, idem)
	e.POST("/loans/:loan_id/repay", settlementHandler.RepayLoan, idem)
	e.POST("/loans/:loan_id/liquidate", settlementHandler.LiquidateLoan, idem)

	e.GET("/prices/cross", loanHandler.CrossPrice)

	e.PUT("/admin/oracle", adminHandler.UpdateOracle)
	e.POST("/admin/credit", adminHandler.Credit, idem)
	e.GET("/admin/balances/:party", adminHandler.GetBalance)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
