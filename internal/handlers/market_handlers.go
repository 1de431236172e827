package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/services"
	log "github.com/sirupsen/logrus"
)

const topListLimit = 20

// MarketHandler handles price-snapshot endpoints
type MarketHandler struct {
	priceFeedSvc *services.PriceFeedService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(priceFeedSvc *services.PriceFeedService) *MarketHandler {
	return &MarketHandler{priceFeedSvc: priceFeedSvc}
}

// RefreshPrices handles POST /prices
// @Summary Refresh price snapshots now
// @Description Fetch current quotes for the tracked universe and upsert snapshots
// @Tags market
// @Produce json
// @Success 200 {object} models.RefreshResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /prices [post]
func (h *MarketHandler) RefreshPrices(c *gin.Context) {
	results, err := h.priceFeedSvc.RefreshAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrUpstreamUnavailable) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "upstream_unavailable",
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

	log.WithField("results", len(results)).Info("price refresh completed")
	c.JSON(http.StatusOK, models.RefreshResponse{
		Message: "daily prices updated",
		Results: results,
	})
}

// TopAssets handles GET /all-data/top-assets
// @Summary Latest stock snapshots
// @Tags market
// @Produce json
// @Success 200 {object} models.TopAssetsResponse
// @Router /all-data/top-assets [get]
func (h *MarketHandler) TopAssets(c *gin.Context) {
	prices, err := h.priceFeedSvc.TopByType(c.Request.Context(), models.AssetTypeStock, topListLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	if prices == nil {
		prices = []models.AssetPrice{}
	}

	c.JSON(http.StatusOK, models.TopAssetsResponse{Stocks: prices})
}

// TopCrypto handles GET /all-data/top-crypto
// @Summary Latest crypto snapshots
// @Tags market
// @Produce json
// @Success 200 {object} models.TopCryptoResponse
// @Router /all-data/top-crypto [get]
func (h *MarketHandler) TopCrypto(c *gin.Context) {
	prices, err := h.priceFeedSvc.TopByType(c.Request.Context(), models.AssetTypeCrypto, topListLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	if prices == nil {
		prices = []models.AssetPrice{}
	}

	c.JSON(http.StatusOK, models.TopCryptoResponse{Cryptos: prices})
}
