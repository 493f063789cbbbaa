package data

import (
	"encoding/json"
	"os"

	"harvest-backtest/internal/model"
)

func LoadPriceSeriesJSON(path string) (*model.PriceSeriesResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.PriceSeriesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func LoadEnsembleJSON(path string) (*model.EnsembleFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file model.EnsembleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// EnsemblesByDay matches forecast entries to series positions by calendar
// date. Entries whose date never appears in the series are dropped;
// days without a forecast simply have no key.
func EnsemblesByDay(series []model.PricePoint, file *model.EnsembleFile) (map[int]*model.Ensemble, error) {
	out := map[int]*model.Ensemble{}
	if file == nil {
		return out, nil
	}

	dayByDate := make(map[string]int, len(series))
	for i, pt := range series {
		dayByDate[pt.Date.Format("2006-01-02")] = i
	}

	for _, entry := range file.Forecasts {
		day, ok := dayByDate[entry.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		ens, err := model.EnsembleFromRows(entry.Samples)
		if err != nil {
			return nil, err
		}
		out[day] = ens
	}
	return out, nil
}
