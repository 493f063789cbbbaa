package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"harvest-backtest/internal/analysis"
	"harvest-backtest/internal/api/models"
	"harvest-backtest/internal/policy"
)

// RankHandler ranks all policies over one dataset
type RankHandler struct {
	backtests *BacktestHandler
}

func NewRankHandler(backtests *BacktestHandler) *RankHandler {
	return &RankHandler{backtests: backtests}
}

// RankPolicies handles GET /api/v1/rank
func (h *RankHandler) RankPolicies(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	cfg := models.BacktestConfig{CommodityID: req.CommodityID}
	if cfg.CommodityID == "" {
		cfg.CommodityID = "coffee"
	}
	input, params, err := h.backtests.loadInput(models.DataSourceConfig{
		PriceFile:    req.PriceFile,
		EnsembleFile: req.EnsembleFile,
	}, cfg)
	if err != nil {
		requestError(c, err)
		return
	}

	specs := make([]analysis.PolicySpec, 0, len(policy.Names()))
	for _, name := range policy.Names() {
		specs = append(specs, analysis.PolicySpec{Name: name})
	}

	ranked, err := analysis.RankPolicies(input, params, specs)
	if err != nil {
		requestError(c, err)
		return
	}
	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:        i + 1,
			Policy:      r.Policy,
			NetEarnings: r.NetEarnings,
			TradeCount:  r.TradeCount,
			FinalTons:   r.FinalInventory,
		}
	}
	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}
