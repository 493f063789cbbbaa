package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"harvest-backtest/internal/api/models"
	"harvest-backtest/internal/backtest"
	"harvest-backtest/internal/data"
	"harvest-backtest/internal/model"
	"harvest-backtest/internal/policy"
)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	dataDir string
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(dataDir string) *BacktestHandler {
	if dataDir == "" {
		dataDir = "datasets"
	}
	return &BacktestHandler{dataDir: dataDir}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.runOne(req.DataSource, req.Config, req.Options)
	if err != nil {
		requestError(c, err)
		return
	}

	resp := models.BacktestResponse{
		Status:  "completed",
		Summary: toSummary(result.Summary),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = toLedger(result.Ledger)
	}
	c.JSON(http.StatusOK, resp)
}

// CompareBacktests handles POST /api/v1/backtest/compare
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	results := make([]models.ComparisonResult, len(req.Variations))
	var g errgroup.Group
	for i, v := range req.Variations {
		i, v := i, v
		g.Go(func() error {
			cfg := mergeConfig(req.BaseConfig, v.Config)
			res, err := h.runOne(req.DataSource, cfg, models.BacktestOptions{})
			if err != nil {
				return fmt.Errorf("variation %q: %w", v.Name, err)
			}
			results[i] = models.ComparisonResult{
				Name:    v.Name,
				Summary: toSummary(res.Summary),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		requestError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CompareBacktestResponse{Comparison: results})
}

func (h *BacktestHandler) runOne(src models.DataSourceConfig, cfg models.BacktestConfig, opts models.BacktestOptions) (*backtest.Result, error) {
	input, params, err := h.loadInput(src, cfg)
	if err != nil {
		return nil, err
	}
	if opts.LimitDays > 0 && opts.LimitDays < len(input.Series) {
		input.Series = input.Series[:opts.LimitDays]
	}

	stock, err := model.NewStock(params)
	if err != nil {
		return nil, err
	}
	pol, err := policy.Build(cfg.Policy.Name, cfg.Policy.Params)
	if err != nil {
		return nil, err
	}
	return backtest.New().Run(input, stock, pol)
}

func (h *BacktestHandler) loadInput(src models.DataSourceConfig, cfg models.BacktestConfig) (backtest.Input, model.CommodityParams, error) {
	series, err := data.LoadPriceSeriesJSON(h.resolve(src.PriceFile))
	if err != nil {
		return backtest.Input{}, model.CommodityParams{}, fmt.Errorf("loading prices: %w", err)
	}

	ensembles := map[int]*model.Ensemble{}
	if src.EnsembleFile != "" {
		file, err := data.LoadEnsembleJSON(h.resolve(src.EnsembleFile))
		if err != nil {
			return backtest.Input{}, model.CommodityParams{}, fmt.Errorf("loading ensembles: %w", err)
		}
		ensembles, err = data.EnsemblesByDay(series.Data, file)
		if err != nil {
			return backtest.Input{}, model.CommodityParams{}, err
		}
	}

	params, err := resolveCommodity(cfg)
	if err != nil {
		return backtest.Input{}, model.CommodityParams{}, err
	}
	schedule, err := model.NewHarvestSchedule(params.Windows, params.AnnualVolumeTons)
	if err != nil {
		return backtest.Input{}, model.CommodityParams{}, err
	}

	return backtest.Input{
		Series:    series.Data,
		Ensembles: ensembles,
		Schedule:  schedule,
	}, params, nil
}

// resolve keeps dataset access inside the configured data directory.
func (h *BacktestHandler) resolve(name string) string {
	return filepath.Join(h.dataDir, filepath.Base(name))
}

// resolveCommodity applies preset-then-override semantics: start from the
// bundled preset when commodity_id is given, overlay any inline fields.
func resolveCommodity(cfg models.BacktestConfig) (model.CommodityParams, error) {
	var params model.CommodityParams
	if cfg.CommodityID != "" {
		preset, ok := data.PresetByID(cfg.CommodityID)
		if !ok {
			return model.CommodityParams{}, fmt.Errorf("%w: unknown commodity %q", model.ErrConfiguration, cfg.CommodityID)
		}
		params = preset.Params
	}

	o := cfg.Commodity
	if o.Name != "" {
		params.Name = o.Name
	}
	if o.Unit != "" {
		params.Unit = o.Unit
	}
	if o.AnnualVolumeTons != 0 {
		params.AnnualVolumeTons = o.AnnualVolumeTons
	}
	if len(o.HarvestWindows) != 0 {
		windows := make([]model.HarvestWindow, len(o.HarvestWindows))
		for i, w := range o.HarvestWindows {
			windows[i] = model.HarvestWindow{StartDay: w.StartDay, EndDay: w.EndDay}
		}
		params.Windows = windows
	}
	if o.StorageRatePerDay != 0 {
		params.Costs.StorageRatePerDay = o.StorageRatePerDay
	}
	if o.TransactionRate != 0 {
		params.Costs.TransactionRate = o.TransactionRate
	}
	if o.MaxHoldingDays != 0 {
		params.Costs.MaxHoldingDays = o.MaxHoldingDays
	}
	if params.Costs.MaxHoldingDays == 0 {
		params.Costs.MaxHoldingDays = 365
	}
	return params, params.Validate()
}

func mergeConfig(base, override models.BacktestConfig) models.BacktestConfig {
	out := base
	if override.CommodityID != "" {
		out.CommodityID = override.CommodityID
	}
	if override.Policy.Name != "" {
		out.Policy = override.Policy
	}
	// Inline commodity overrides stack on the base's.
	o := override.Commodity
	if o.Name != "" {
		out.Commodity.Name = o.Name
	}
	if o.Unit != "" {
		out.Commodity.Unit = o.Unit
	}
	if o.AnnualVolumeTons != 0 {
		out.Commodity.AnnualVolumeTons = o.AnnualVolumeTons
	}
	if len(o.HarvestWindows) != 0 {
		out.Commodity.HarvestWindows = o.HarvestWindows
	}
	if o.StorageRatePerDay != 0 {
		out.Commodity.StorageRatePerDay = o.StorageRatePerDay
	}
	if o.TransactionRate != 0 {
		out.Commodity.TransactionRate = o.TransactionRate
	}
	if o.MaxHoldingDays != 0 {
		out.Commodity.MaxHoldingDays = o.MaxHoldingDays
	}
	return out
}

func toSummary(s backtest.Summary) models.BacktestSummary {
	return models.BacktestSummary{
		Commodity:            s.Commodity,
		Policy:               s.Policy,
		Days:                 s.Days,
		Window:               models.TimeWindow{Start: s.StartDate, End: s.EndDate},
		TradeCount:           s.TradeCount,
		NetEarnings:          s.NetEarnings,
		TotalTransactionCost: s.TotalTransactionCost,
		TotalStorageCost:     s.TotalStorageCost,
		TotalHarvestTons:     s.TotalHarvestTons,
		TotalSalesTons:       s.TotalSalesTons,
		FinalInventoryTons:   s.FinalInventory,
	}
}

func toLedger(rows []backtest.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerRow{
			Index:           r.Index,
			Date:            r.Date,
			Price:           r.Price,
			HarvestTons:     r.HarvestTons,
			Action:          string(r.Action),
			Reason:          r.Reason,
			RequestedTons:   r.RequestedTons,
			SoldTons:        r.SoldTons,
			GrossProceeds:   r.GrossProceeds,
			TransactionCost: r.TransactionCost,
			StorageCost:     r.StorageCost,
			NetProceeds:     r.NetProceeds,
			InventoryStart:  r.InventoryStart,
			InventoryEnd:    r.InventoryEnd,
			CumNet:          r.CumNet,
		}
	}
	return out
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "BAD_REQUEST", Message: msg},
	})
}

func requestError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	if errors.Is(err, model.ErrConfiguration) {
		status = http.StatusBadRequest
		code = "INVALID_CONFIGURATION"
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}
