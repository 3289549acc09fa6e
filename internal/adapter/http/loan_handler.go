package http

import (
	"net/http"
	"strconv"

	"peerlend-backend/internal/domain/oracle"
	"peerlend-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Amount           int64  `json:"amount"`
	Token            string `json:"token" validate:"required,hex32"`
	InterestRate     uint32 `json:"interest_rate"`
	Duration         uint32 `json:"duration"`
	Borrower         string `json:"borrower" validate:"required,hex32"`
	CollateralCode   string `json:"collateral_code" validate:"omitempty,assetcode"`
	CollateralIssuer string `json:"collateral_issuer" validate:"required,hex32"`
	CollateralAmount int64  `json:"collateral_amount"`
}

// CreateLoan posts a new loan request. Identity formats are checked here;
// the business ranges (bounds, interest, duration, collateral value) belong
// to the usecase so each failure keeps its own error.
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := parseLoanID(c.Param("loan_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListActive(c echo.Context) error {
	dtos, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) Stats(c echo.Context) error {
	dto, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// CrossPrice proxies the oracle's cross rate; no ledger interaction.
func (h *LoanHandler) CrossPrice(c echo.Context) error {
	base := oracle.Asset{Code: c.QueryParam("base_code"), Issuer: c.QueryParam("base_issuer")}
	quote := oracle.Asset{Code: c.QueryParam("quote_code"), Issuer: c.QueryParam("quote_issuer")}
	if base.Issuer == "" || quote.Issuer == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "base_issuer and quote_issuer are required"})
	}
	pd, err := h.uc.CrossPrice(c.Request().Context(), base, quote)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, pd)
}

func parseLoanID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
