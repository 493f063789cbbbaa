package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"harvest-backtest/internal/api/models"
	"harvest-backtest/internal/data"
)

// CommodityHandler handles commodity preset requests
type CommodityHandler struct{}

// NewCommodityHandler creates a new commodity handler
func NewCommodityHandler() *CommodityHandler {
	return &CommodityHandler{}
}

// ListCommodities handles GET /api/v1/commodities
func (h *CommodityHandler) ListCommodities(c *gin.Context) {
	presets := data.Presets()
	infos := make([]models.CommodityInfo, len(presets))
	for i, p := range presets {
		infos[i] = models.CommodityInfo{
			ID:               p.ID,
			Name:             p.Params.Name,
			Unit:             p.Params.Unit,
			AnnualVolumeTons: p.Params.AnnualVolumeTons,
			MaxHoldingDays:   p.Params.Costs.MaxHoldingDays,
		}
	}
	c.JSON(http.StatusOK, gin.H{"commodities": infos})
}
