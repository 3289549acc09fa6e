package http

import (
	"net/http"

	"peerlend-backend/internal/usecase/admin"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *admin.Usecase }

func NewAdminHandler(uc *admin.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

type updateOracleReq struct {
	OracleAddress string `json:"oracle_address" validate:"required"`
	Updater       string `json:"updater" validate:"required,hex32"`
}

func (h *AdminHandler) UpdateOracle(c echo.Context) error {
	var req updateOracleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	if err := h.uc.UpdateOracle(c.Request().Context(), admin.UpdateOracleInput(req)); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"oracle_address": req.OracleAddress})
}

type creditReq struct {
	Updater string `json:"updater" validate:"required,hex32"`
	Party   string `json:"party" validate:"required,hex32"`
	Token   string `json:"token" validate:"required,hex32"`
	Amount  int64  `json:"amount"`
}

// Credit seeds a balance in the built-in transfer ledger (dev faucet).
func (h *AdminHandler) Credit(c echo.Context) error {
	var req creditReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	if err := h.uc.Credit(c.Request().Context(), admin.CreditInput(req)); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"party": req.Party, "token": req.Token})
}

func (h *AdminHandler) GetBalance(c echo.Context) error {
	party := c.Param("party")
	tokenID := c.QueryParam("token")
	if !reHex32.MatchString(party) || !reHex32.MatchString(tokenID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "party and token must be 32-char lowercase hex"})
	}
	amount, err := h.uc.Balance(c.Request().Context(), tokenID, party)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"party": party, "token": tokenID, "amount": amount})
}
