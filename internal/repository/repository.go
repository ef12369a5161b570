package repository

import (
	"crypto-dashboard/config"
	"crypto-dashboard/pkg/cache"
	"crypto-dashboard/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	OHLCVRepo           OHLCVRepository
	IndicatorRepo       IndicatorRepository
	SentimentRepo       SentimentRepository
	BacktestRepo        BacktestRepository
	CompositeSignalRepo CompositeSignalRepository
	MLPredictorRepo     MLPredictorRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger, c cache.Cache) *Repository {
	return &Repository{
		OHLCVRepo:           NewOHLCVRepository(db),
		IndicatorRepo:       NewIndicatorRepository(db),
		SentimentRepo:       NewSentimentRepository(db),
		BacktestRepo:        NewBacktestRepository(db),
		CompositeSignalRepo: NewCompositeSignalRepository(db),
		MLPredictorRepo:     NewMLPredictorRepository(cfg, log, c),
	}
}
