package loan

import "errors"

// One sentinel per failure cause; the HTTP adapter maps these to statuses.
// Every check runs before any side effect, so a returned error always means
// nothing was written.
var (
	ErrNotFound               = errors.New("loan not found")
	ErrLoanTooSmall           = errors.New("loan amount below configured minimum")
	ErrLoanTooLarge           = errors.New("loan amount above configured maximum")
	ErrInvalidInterest        = errors.New("interest rate must be between 1 and 10 percent")
	ErrInvalidDuration        = errors.New("duration must be non-zero")
	ErrInsufficientCollateral = errors.New("collateral value below 150% of principal")
	ErrInactiveLoan           = errors.New("loan is not in a state that permits this operation")
	ErrDeadlinePassed         = errors.New("funding deadline has passed")
	ErrInvalidAmount          = errors.New("funding amount must equal the loan principal")
	ErrInvalidRepaymentAmount = errors.New("repayment amount must equal principal plus interest")
	ErrCannotLiquidate        = errors.New("collateral value is at or above the liquidation threshold")
	ErrUnauthorized           = errors.New("caller is not authorized for this operation")
)
