package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	engine *engine.Engine
}

func newAccountHandler(e *engine.Engine) *accountHandler {
	return &accountHandler{engine: e}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, e *engine.Engine) {
	h := newAccountHandler(e)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/trial-balance", h.trialBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account node to the chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	node, err := h.engine.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(node))
}

// listAccounts godoc
// @Summary Get the chart of accounts
// @Description Returns the full account tree with aggregated balances
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountTreeNode
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	st := h.engine.Snapshot()
	c.JSON(http.StatusOK, dto.ToAccountTree(&st.Accounts))
}

// trialBalance godoc
// @Summary Get the trial balance
// @Description Lists every leaf account's balance in debit/credit columns
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /accounts/trial-balance [get]
func (h *accountHandler) trialBalance(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.TrialBalance())
}
