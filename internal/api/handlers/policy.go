package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"harvest-backtest/internal/api/models"
)

// PolicyHandler handles policy-related requests
type PolicyHandler struct{}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler() *PolicyHandler {
	return &PolicyHandler{}
}

// ListPolicies handles GET /api/v1/policies
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	cooldown := models.ParameterInfo{
		Name: "cooldown_days", Type: "int",
		Description: "Minimum days between sales", Default: 7,
	}
	fallbackFreq := models.ParameterInfo{
		Name: "fallback_frequency_days", Type: "int",
		Description: "Cadence of the default sale when no forecast ensemble is supplied", Default: 14,
	}
	confidence := []models.ParameterInfo{
		{Name: "cv_high_confidence", Type: "float", Description: "CV below which the forecast fully overrides the baseline", Default: 0.05},
		{Name: "cv_medium_confidence", Type: "float", Description: "CV at or above which the forecast is ignored", Default: 0.15},
	}
	ruleParams := []models.ParameterInfo{
		{Name: "ma_window_days", Type: "int", Description: "Trailing moving-average window", Default: 20},
		cooldown,
		{Name: "baseline_fraction", Type: "float", Description: "Default sale fraction", Default: 0.25},
		{Name: "max_days_without_sale", Type: "int", Description: "Force a baseline sale after this many quiet days", Default: 30},
	}

	policies := []models.PolicyInfo{
		{
			Name:        "schedule",
			Description: "Scheduled full liquidation. Accumulates to a minimum batch, then sells everything on a fixed cadence, price-blind.",
			Parameters: []models.ParameterInfo{
				{Name: "sale_frequency_days", Type: "int", Description: "Days between full liquidations", Default: 7},
				{Name: "min_batch_tons", Type: "float", Description: "Inventory required before the first sale", Default: 5.0},
			},
		},
		{
			Name:        "fraction",
			Description: "Fixed-fraction disposal. Sells a constant share of current inventory every cycle, a systematic decay schedule.",
			Parameters: []models.ParameterInfo{
				{Name: "fraction", Type: "float", Description: "Share of inventory sold per cycle", Default: 0.25},
				{Name: "frequency_days", Type: "int", Description: "Days between sales", Default: 7},
			},
		},
		{
			Name:        "breakout",
			Description: "Threshold breakout. Sells into strength when price clears the moving average by a premium, batch sized by momentum and trend.",
			Parameters: append([]models.ParameterInfo{
				{Name: "threshold_pct", Type: "float", Description: "Required premium over the moving average", Default: 0.05},
			}, ruleParams...),
		},
		{
			Name:        "crossover",
			Description: "Crossover reversal. Sells on bearish crossovers below the moving average, holds unconditionally on bullish ones.",
			Parameters:  ruleParams,
		},
		{
			Name:        "breakout-forecast",
			Description: "Threshold breakout gated by forecast-ensemble confidence. Low confidence falls back to the plain breakout baseline.",
			Parameters:  append(append([]models.ParameterInfo{}, ruleParams...), confidence...),
		},
		{
			Name:        "crossover-forecast",
			Description: "Crossover reversal gated by forecast-ensemble confidence. Low confidence falls back to the plain crossover baseline.",
			Parameters:  append(append([]models.ParameterInfo{}, ruleParams...), confidence...),
		},
		{
			Name:        "ev",
			Description: "Expected-value optimizer. Acts directly on the net benefit of waiting versus selling today, tiered by confidence and trend.",
			Parameters:  []models.ParameterInfo{cooldown, fallbackFreq},
		},
		{
			Name:        "consensus",
			Description: "Ensemble consensus. Votes the sampled paths at a fixed horizon and sells harder the fewer paths agree on upside.",
			Parameters: []models.ParameterInfo{
				{Name: "eval_horizon_days", Type: "int", Description: "Horizon day at which paths are counted", Default: 14},
				{Name: "min_return_pct", Type: "float", Description: "Path return required to count as bullish", Default: 3.0},
				cooldown, fallbackFreq,
			},
		},
		{
			Name:        "risk-adjusted",
			Description: "Mean-variance policy. Requires minimum expected return and positive net benefit, then sizes the sale by ensemble risk.",
			Parameters: []models.ParameterInfo{
				{Name: "min_return_pct", Type: "float", Description: "Expected return required to consider holding", Default: 3.0},
				{Name: "cv_low", Type: "float", Description: "Low-risk CV cutoff", Default: 0.05},
				{Name: "cv_medium", Type: "float", Description: "Medium-risk CV cutoff", Default: 0.10},
				{Name: "cv_high", Type: "float", Description: "High-risk CV cutoff", Default: 0.20},
				cooldown, fallbackFreq,
			},
		},
		{
			Name:        "mpc",
			Description: "Receding-horizon optimizer. Solves a bounded-horizon LP over the ensemble mean path daily and executes only the first day's sell.",
			Parameters: []models.ParameterInfo{
				{Name: "horizon_days", Type: "int", Description: "Optimization window length", Default: 30},
				{Name: "terminal_strategy", Type: "string", Description: "Terminal inventory valuation: 'decay' or 'shadow'", Default: "decay"},
				{Name: "decay_factor", Type: "float", Description: "Discount on the window's last price", Default: 0.95},
				{Name: "alpha", Type: "float", Description: "Smoothing weight on the newest shadow-price estimate", Default: 0.3},
				fallbackFreq,
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"policies": policies})
}
