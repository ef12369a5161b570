package service

import (
	"crypto-dashboard/config"
	"crypto-dashboard/internal/repository"
	"crypto-dashboard/pkg/cache"
	"crypto-dashboard/pkg/logger"
)

type Service struct {
	BacktestService  BacktestService
	SignalService    SignalService
	PortfolioService PortfolioService
	CascadeService   CascadeService
	SignalScheduler  SignalSchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	backtestService := NewBacktestService(cfg, log, repo.OHLCVRepo, repo.BacktestRepo)
	signalService := NewSignalService(cfg, log, repo.IndicatorRepo, repo.SentimentRepo, repo.MLPredictorRepo, repo.OHLCVRepo)

	return &Service{
		BacktestService:  backtestService,
		SignalService:    signalService,
		PortfolioService: NewPortfolioService(cfg, log, backtestService),
		CascadeService:   NewCascadeService(cfg, log, signalService),
		SignalScheduler:  NewSignalSchedulerService(cfg, log, signalService, repo.CompositeSignalRepo, inmemoryCache),
	}
}
