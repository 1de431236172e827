package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrimonio/api/internal/middleware"
	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
	"github.com/patrimonio/api/internal/services"
)

// PortfolioHandler handles the /me ledger and valuation endpoints
type PortfolioHandler struct {
	ledgerSvc    *services.LedgerService
	portfolioSvc *services.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(ledgerSvc *services.LedgerService, portfolioSvc *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		ledgerSvc:    ledgerSvc,
		portfolioSvc: portfolioSvc,
	}
}

// Buy handles POST /me/add
// @Summary Buy an asset
// @Description Merge a purchase into the portfolio, creating or updating a lot
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body models.BuyRequest true "buy order"
// @Success 200 {object} models.TradeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /me/add [post]
func (h *PortfolioHandler) Buy(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "type must be one of stock, etf, crypto, bond",
		})
		return
	}
	if !req.Quantity.IsPositive() || !req.AvgBuyPrice.IsPositive() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "quantity and avgBuyPrice must be greater than zero",
		})
		return
	}

	err := h.ledgerSvc.Buy(c.Request.Context(), userID, req.Symbol, req.Type, req.Quantity, req.AvgBuyPrice)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TradeResponse{Success: true})
}

// Sell handles POST /me/sell
// @Summary Sell an asset
// @Description Reduce or close a lot; a full sell removes it
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body models.SellRequest true "sell order"
// @Success 200 {object} models.TradeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /me/sell [post]
func (h *PortfolioHandler) Sell(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "type must be one of stock, etf, crypto, bond",
		})
		return
	}
	if !req.Quantity.IsPositive() || !req.SellPrice.IsPositive() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "quantity and sellPrice must be greater than zero",
		})
		return
	}

	err := h.ledgerSvc.Sell(c.Request.Context(), userID, req.Symbol, req.Type, req.Quantity, req.SellPrice)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotHeld) || errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrInsufficientQuantity) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TradeResponse{Success: true, Message: "asset sold successfully"})
}

// Assets handles GET /me/assets
// @Summary List holdings
// @Description Aggregated lots joined against current price snapshots
// @Tags portfolio
// @Produce json
// @Success 200 {object} models.HoldingsResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /me/assets [get]
func (h *PortfolioHandler) Assets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	holdings, err := h.portfolioSvc.Holdings(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HoldingsResponse{Assets: holdings})
}

// Patrimony handles GET /me/patrimonio
// @Summary Total portfolio value
// @Description Sum of quantity times current price over all valued lots
// @Tags portfolio
// @Produce json
// @Success 200 {object} models.PatrimonyResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /me/patrimonio [get]
func (h *PortfolioHandler) Patrimony(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	total, err := h.portfolioSvc.Patrimony(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PatrimonyResponse{Patrimonio: total})
}

// RecentlyAdded handles GET /me/recently-added
// @Summary Recently opened positions
// @Tags portfolio
// @Produce json
// @Success 200 {object} map[string][]models.Position
// @Failure 404 {object} models.ErrorResponse
// @Router /me/recently-added [get]
func (h *PortfolioHandler) RecentlyAdded(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	positions, err := h.portfolioSvc.RecentlyAdded(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	if positions == nil {
		positions = []models.Position{}
	}

	c.JSON(http.StatusOK, gin.H{"assets": positions})
}

// respondRepoError maps the shared storage-level not-found errors; anything
// else is a 500.
func respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrPortfolioNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
