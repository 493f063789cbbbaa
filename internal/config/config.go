package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"harvest-backtest/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load commodity parameters from a separate YAML
	// (e.g. examples/commodities/*.yaml). If both CommodityFile and
	// Commodity are provided, Commodity overrides CommodityFile.
	CommodityFile string          `yaml:"commodity_file"`
	Commodity     CommodityConfig `yaml:"commodity"`
	Policy        PolicyConfig    `yaml:"policy"`
}

type CommodityConfig struct {
	Name             string         `yaml:"name"`
	Unit             string         `yaml:"unit"`
	AnnualVolumeTons float64        `yaml:"annual_volume_tons"`
	HarvestWindows   []WindowConfig `yaml:"harvest_windows"`

	StorageRatePerDay float64 `yaml:"storage_rate_per_day"`
	TransactionRate   float64 `yaml:"transaction_rate"`
	MaxHoldingDays    int     `yaml:"max_holding_days"`
}

type WindowConfig struct {
	StartDay int `yaml:"start_day"`
	EndDay   int `yaml:"end_day"`
}

type PolicyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Default the hard deadline rather than failing concise configs.
	if c.Commodity.MaxHoldingDays == 0 {
		c.Commodity.MaxHoldingDays = 365
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If commodity_file is set, load it and merge in any explicit
	// overrides from c.Commodity.
	if c.CommodityFile != "" {
		commodityPath := c.CommodityFile
		if !filepath.IsAbs(commodityPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, but fall back to the provided path (relative
			// to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), commodityPath)
			if _, err := os.Stat(cand); err == nil {
				commodityPath = cand
			}
		}
		loaded, err := loadCommodityFile(commodityPath)
		if err != nil {
			return nil, err
		}
		c.Commodity = MergeCommodity(loaded, c.Commodity)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Policy.Name == "" {
		return fmt.Errorf("%w: policy.name is required", model.ErrConfiguration)
	}
	// Validate commodity params by constructing a model.Stock.
	if _, err := model.NewStock(c.Commodity.ToModelParams()); err != nil {
		return fmt.Errorf("commodity config invalid: %w", err)
	}
	return nil
}

func (c CommodityConfig) ToModelParams() model.CommodityParams {
	windows := make([]model.HarvestWindow, len(c.HarvestWindows))
	for i, w := range c.HarvestWindows {
		windows[i] = model.HarvestWindow{StartDay: w.StartDay, EndDay: w.EndDay}
	}
	return model.CommodityParams{
		Name:             c.Name,
		Unit:             c.Unit,
		AnnualVolumeTons: c.AnnualVolumeTons,
		Windows:          windows,
		Costs: model.CostParams{
			StorageRatePerDay: c.StorageRatePerDay,
			TransactionRate:   c.TransactionRate,
			MaxHoldingDays:    c.MaxHoldingDays,
		},
	}
}

type commodityFileWrapper struct {
	Commodity CommodityConfig `yaml:"commodity"`
}

func loadCommodityFile(path string) (CommodityConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CommodityConfig{}, err
	}
	var w commodityFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return CommodityConfig{}, err
	}
	return w.Commodity, nil
}

// MergeCommodity overlays non-zero fields from override onto base.
// This is used when loading a commodity file and then applying overrides
// from the request.
func MergeCommodity(base, override CommodityConfig) CommodityConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Unit != "" {
		out.Unit = override.Unit
	}
	if override.AnnualVolumeTons != 0 {
		out.AnnualVolumeTons = override.AnnualVolumeTons
	}
	if len(override.HarvestWindows) != 0 {
		out.HarvestWindows = override.HarvestWindows
	}
	if override.StorageRatePerDay != 0 {
		out.StorageRatePerDay = override.StorageRatePerDay
	}
	if override.TransactionRate != 0 {
		out.TransactionRate = override.TransactionRate
	}
	if override.MaxHoldingDays != 0 {
		out.MaxHoldingDays = override.MaxHoldingDays
	}
	return out
}
