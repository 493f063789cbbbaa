package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"harvest-backtest/internal/api/handlers"
	"harvest-backtest/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "datasets"
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	backtestHandler := handlers.NewBacktestHandler(dataDir)
	commodityHandler := handlers.NewCommodityHandler()
	policyHandler := handlers.NewPolicyHandler()
	rankHandler := handlers.NewRankHandler(backtestHandler)
	datasetHandler := handlers.NewDatasetHandler(dataDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/backtest/compare", backtestHandler.CompareBacktests)

		api.GET("/commodities", commodityHandler.ListCommodities)
		api.GET("/policies", policyHandler.ListPolicies)

		api.GET("/rank", rankHandler.RankPolicies)

		api.GET("/datasets", datasetHandler.ListDatasets)
	}

	addr := fmt.Sprintf(":%s", port)
	logger.Info().Str("addr", addr).Str("data_dir", dataDir).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
