package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"harvest-backtest/internal/api/models"
)

// DatasetHandler lists dataset files available to backtests
type DatasetHandler struct {
	dataDir string
}

func NewDatasetHandler(dataDir string) *DatasetHandler {
	if dataDir == "" {
		dataDir = "datasets"
	}
	return &DatasetHandler{dataDir: dataDir}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"datasets": []models.DatasetInfo{}})
		return
	}

	datasets := make([]models.DatasetInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		kind := "prices"
		if strings.Contains(e.Name(), "ensemble") {
			kind = "ensembles"
		}
		datasets = append(datasets, models.DatasetInfo{
			ID:   e.Name(),
			Name: strings.TrimSuffix(e.Name(), ".json"),
			Kind: kind,
		})
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
