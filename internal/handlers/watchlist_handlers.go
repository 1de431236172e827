package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrimonio/api/internal/middleware"
	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/services"
)

// WatchlistHandler handles the watchlist endpoints
type WatchlistHandler struct {
	watchlistSvc *services.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistSvc *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistSvc: watchlistSvc}
}

// List handles GET /myWatchlist
// @Summary List watched symbols with current prices
// @Tags watchlist
// @Produce json
// @Success 200 {object} models.WatchlistResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /myWatchlist [get]
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	items, err := h.watchlistSvc.List(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrSymbolNotTracked) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.WatchlistResponse{SymbolValues: items})
}

// Count handles GET /watchlist/count
// @Summary Number of watched symbols
// @Tags watchlist
// @Produce json
// @Success 200 {object} map[string]int
// @Router /watchlist/count [get]
func (h *WatchlistHandler) Count(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	count, err := h.watchlistSvc.Count(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Add handles POST /addSymbol
// @Summary Add a symbol to the watchlist
// @Description Idempotent; the symbol must have a price snapshot
// @Tags watchlist
// @Accept json
// @Produce json
// @Param request body models.SymbolRequest true "symbol"
// @Success 200 {object} models.AddSymbolResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /addSymbol [post]
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.SymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "symbol is required",
		})
		return
	}

	added, err := h.watchlistSvc.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		if errors.Is(err, services.ErrSymbolNotTracked) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AddSymbolResponse{SymbolAdded: added})
}

// Remove handles POST /removeSymbol
// @Summary Remove a symbol from the watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Param request body models.SymbolRequest true "symbol"
// @Success 200 {object} models.RemoveSymbolResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /removeSymbol [post]
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.SymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "symbol is required",
		})
		return
	}

	removed, err := h.watchlistSvc.Remove(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RemoveSymbolResponse{SymbolRemoved: removed})
}
