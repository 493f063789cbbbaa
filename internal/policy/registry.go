package policy

import (
	"fmt"
	"sort"
	"strings"

	"harvest-backtest/internal/model"
)

// Names of the ten built-in policies, as accepted by Build and exposed
// through the CLI and API.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builders = map[string]func(params map[string]any) Policy{
	"schedule": func(m map[string]any) Policy {
		return NewScheduleStrategy(ScheduleParams{
			SaleFrequencyDays: asInt(m, "sale_frequency_days", 0),
			MinBatchTons:      asNum(m, "min_batch_tons", 0),
		})
	},
	"fraction": func(m map[string]any) Policy {
		return NewFractionStrategy(FractionParams{
			Fraction:      asNum(m, "fraction", 0),
			FrequencyDays: asInt(m, "frequency_days", 0),
		})
	},
	"breakout": func(m map[string]any) Policy {
		return NewBreakoutStrategy(breakoutParams(m))
	},
	"crossover": func(m map[string]any) Policy {
		return NewCrossoverStrategy(crossoverParams(m))
	},
	"breakout-forecast": func(m map[string]any) Policy {
		return NewBreakoutForecastStrategy(breakoutParams(m), confidenceParams(m))
	},
	"crossover-forecast": func(m map[string]any) Policy {
		return NewCrossoverForecastStrategy(crossoverParams(m), confidenceParams(m))
	},
	"ev": func(m map[string]any) Policy {
		return NewEVStrategy(EVParams{
			CooldownDays:          asInt(m, "cooldown_days", 0),
			FallbackFrequencyDays: asInt(m, "fallback_frequency_days", 0),
			FallbackFraction:      asNum(m, "fallback_fraction", 0),
			TrendPeriod:           asInt(m, "trend_period", 0),
			TrendThreshold:        asNum(m, "trend_threshold", 0),
		})
	},
	"consensus": func(m map[string]any) Policy {
		return NewConsensusStrategy(ConsensusParams{
			EvalHorizonDays:       asInt(m, "eval_horizon_days", 0),
			MinReturnPct:          asNum(m, "min_return_pct", 0),
			CooldownDays:          asInt(m, "cooldown_days", 0),
			FallbackFrequencyDays: asInt(m, "fallback_frequency_days", 0),
			FallbackFraction:      asNum(m, "fallback_fraction", 0),
			Confidence:            confidenceParams(m),
		})
	},
	"risk-adjusted": func(m map[string]any) Policy {
		return NewRiskAdjustedStrategy(RiskAdjustedParams{
			MinReturnPct:          asNum(m, "min_return_pct", 0),
			CVLow:                 asNum(m, "cv_low", 0),
			CVMedium:              asNum(m, "cv_medium", 0),
			CVHigh:                asNum(m, "cv_high", 0),
			TrendThreshold:        asNum(m, "trend_threshold", 0),
			TrendPeriod:           asInt(m, "trend_period", 0),
			CooldownDays:          asInt(m, "cooldown_days", 0),
			FallbackFrequencyDays: asInt(m, "fallback_frequency_days", 0),
			FallbackFraction:      asNum(m, "fallback_fraction", 0),
		})
	},
	"mpc": func(m map[string]any) Policy {
		return NewMPCStrategy(MPCParams{
			HorizonDays:           asInt(m, "horizon_days", 0),
			TerminalStrategy:      asStr(m, "terminal_strategy", ""),
			DecayFactor:           asNum(m, "decay_factor", 0),
			Alpha:                 asNum(m, "alpha", 0),
			FallbackFrequencyDays: asInt(m, "fallback_frequency_days", 0),
			FallbackFraction:      asNum(m, "fallback_fraction", 0),
		})
	},
}

// Build constructs a fresh policy instance from its config name and
// params map. Zero/absent params fall through to each policy's defaults.
// Instances are private to one run; never share one across runs.
func Build(name string, params map[string]any) (Policy, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported policy %q", model.ErrConfiguration, name)
	}
	return b(params), nil
}

func breakoutParams(m map[string]any) BreakoutParams {
	return BreakoutParams{
		MAWindowDays:       asInt(m, "ma_window_days", 0),
		ThresholdPct:       asNum(m, "threshold_pct", 0),
		CooldownDays:       asInt(m, "cooldown_days", 0),
		BaselineFraction:   asNum(m, "baseline_fraction", 0),
		MaxDaysWithoutSale: asInt(m, "max_days_without_sale", 0),
		MomentumPeriod:     asInt(m, "momentum_period", 0),
		TrendPeriod:        asInt(m, "trend_period", 0),
	}
}

func crossoverParams(m map[string]any) CrossoverParams {
	return CrossoverParams{
		MAWindowDays:       asInt(m, "ma_window_days", 0),
		CooldownDays:       asInt(m, "cooldown_days", 0),
		BaselineFraction:   asNum(m, "baseline_fraction", 0),
		MaxDaysWithoutSale: asInt(m, "max_days_without_sale", 0),
		MomentumPeriod:     asInt(m, "momentum_period", 0),
		TrendPeriod:        asInt(m, "trend_period", 0),
	}
}

func confidenceParams(m map[string]any) ConfidenceParams {
	return ConfidenceParams{
		HighCutoff:   asNum(m, "cv_high_confidence", 0),
		MediumCutoff: asNum(m, "cv_medium_confidence", 0),
	}
}

func asNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}

func asInt(m map[string]any, key string, def int) int {
	return int(asNum(m, key, float64(def)))
}

func asStr(m map[string]any, key string, def string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}
