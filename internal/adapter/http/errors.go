package http

import (
	"errors"
	"net/http"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
	"peerlend-backend/internal/domain/settings"
	"peerlend-backend/internal/domain/token"

	"github.com/labstack/echo/v4"
)

// statusFor maps the domain error taxonomy onto HTTP statuses: validation
// 400, authorization 403, absent record 404, state/temporal conflicts 409,
// collateral/funds 422, oracle transport 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loan.ErrLoanTooSmall),
		errors.Is(err, loan.ErrLoanTooLarge),
		errors.Is(err, loan.ErrInvalidInterest),
		errors.Is(err, loan.ErrInvalidDuration),
		errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrInvalidRepaymentAmount),
		errors.Is(err, token.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, loan.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrInactiveLoan),
		errors.Is(err, loan.ErrDeadlinePassed),
		errors.Is(err, loan.ErrCannotLiquidate):
		return http.StatusConflict
	case errors.Is(err, loan.ErrInsufficientCollateral),
		errors.Is(err, token.ErrInsufficientFunds),
		errors.Is(err, token.ErrUnknownParty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, oracle.ErrUnavailable),
		errors.Is(err, oracle.ErrNotInitialized),
		errors.Is(err, oracle.ErrPriceUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, settings.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
