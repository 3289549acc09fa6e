package http

import (
	"net/http"

	"peerlend-backend/internal/usecase/settlement"

	"github.com/labstack/echo/v4"
)

type SettlementHandler struct{ uc *settlement.Usecase }

func NewSettlementHandler(uc *settlement.Usecase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

type fundLoanReq struct {
	Token  string `json:"token" validate:"required,hex32"`
	Lender string `json:"lender" validate:"required,hex32"`
	Amount int64  `json:"amount"`
}

func (h *SettlementHandler) FundLoan(c echo.Context) error {
	id, err := parseLoanID(c.Param("loan_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req fundLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Fund(c.Request().Context(), settlement.FundInput{
		LoanID: id,
		Token:  req.Token,
		Lender: req.Lender,
		Amount: req.Amount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayLoanReq struct {
	Token    string `json:"token" validate:"required,hex32"`
	Borrower string `json:"borrower" validate:"required,hex32"`
	Amount   int64  `json:"amount"`
}

func (h *SettlementHandler) RepayLoan(c echo.Context) error {
	id, err := parseLoanID(c.Param("loan_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req repayLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Repay(c.Request().Context(), settlement.RepayInput{
		LoanID:   id,
		Token:    req.Token,
		Borrower: req.Borrower,
		Amount:   req.Amount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SettlementHandler) LiquidateLoan(c echo.Context) error {
	id, err := parseLoanID(c.Param("loan_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	dto, err := h.uc.Liquidate(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
