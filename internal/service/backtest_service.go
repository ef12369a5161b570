package service

import (
	"context"
	"fmt"
	"time"

	"crypto-dashboard/config"
	"crypto-dashboard/internal/backtest"
	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"
	"crypto-dashboard/internal/repository"
	"crypto-dashboard/internal/strategy"
	"crypto-dashboard/pkg/logger"
)

const defaultBacktestDays = 365

// BacktestService mengorkestrasi satu backtest: data harga, sinyal strategi,
// simulasi, metrik kinerja, dan penyimpanan hasil. Layanan ini satu-satunya
// pemanggil repositori penyimpanan backtest.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestRun, error)
	Evaluate(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestRun, error)
	GetAvailableStrategies() []dto.StrategyInfo
	GetRecentBacktests(ctx context.Context, limit int) ([]model.BacktestResult, error)
	GetBacktestDetails(ctx context.Context, id uint) (*model.BacktestResult, error)
}

type backtestService struct {
	cfg          *config.Config
	log          *logger.Logger
	ohlcvRepo    repository.OHLCVRepository
	backtestRepo repository.BacktestRepository
	analyzer     *backtest.Analyzer
}

// NewBacktestService membuat instance baru dari backtestService.
func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	ohlcvRepo repository.OHLCVRepository,
	backtestRepo repository.BacktestRepository,
) BacktestService {
	return &backtestService{
		cfg:          cfg,
		log:          log,
		ohlcvRepo:    ohlcvRepo,
		backtestRepo: backtestRepo,
		analyzer:     backtest.NewAnalyzer(log),
	}
}

// RunBacktest menjalankan satu backtest lalu menyimpan hasilnya. Ketika tidak
// ada data harga untuk simbol dan rentang yang diminta, hasilnya nil tanpa
// error: itu kondisi yang diharapkan, bukan kegagalan.
func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestRun, error) {
	run, err := s.Evaluate(ctx, req)
	if err != nil || run == nil {
		return nil, err
	}

	id, err := s.backtestRepo.Save(ctx, run)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to save backtest results",
			logger.StringField("symbol", run.Symbol),
			logger.StringField("strategy", run.StrategyName),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("failed to save backtest results: %w", err)
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.IntField("backtest_id", int(id)),
		logger.StringField("symbol", run.Symbol),
		logger.StringField("strategy", run.StrategyName),
		logger.IntField("total_trades", run.Metrics.TotalTrades),
		logger.Float64Field("total_return_pct", run.Metrics.TotalReturnPct),
	)
	return run, nil
}

// Evaluate menjalankan simulasi tanpa menyimpan apa pun. Dipakai RunBacktest
// dan sweep optimasi portofolio.
func (s *backtestService) Evaluate(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestRun, error) {
	strat, ok := strategy.FindByName(req.StrategyName)
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", req.StrategyName)
	}

	s.applyDefaults(&req)

	since := time.Now().AddDate(0, 0, -req.Days)
	bars, err := s.ohlcvRepo.GetPriceSeries(ctx, req.Symbol, req.Exchange, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load price series: %w", err)
	}
	if len(bars) == 0 {
		s.log.WarnContext(ctx, "No historical data available",
			logger.StringField("symbol", req.Symbol),
			logger.StringField("exchange", req.Exchange),
			logger.IntField("days", req.Days),
		)
		return nil, nil
	}

	signals := strat.GenerateSignals(bars)

	simulator := backtest.NewSimulator(s.log, backtest.Config{
		InitialCapital: req.InitialCapital,
		PositionSize:   req.PositionSize,
		StopLoss:       req.StopLoss,
	})
	trace := simulator.Run(ctx, bars, signals)

	metrics := s.analyzer.Compute(ctx, trace)

	return &dto.BacktestRun{
		Symbol:       req.Symbol,
		StrategyName: strat.Name,
		Exchange:     req.Exchange,
		PeriodDays:   req.Days,
		Metrics:      metrics,
		Trace:        trace,
	}, nil
}

func (s *backtestService) applyDefaults(req *dto.BacktestRequest) {
	if req.Exchange == "" {
		req.Exchange = s.cfg.Trading.DefaultExchange
	}
	if req.Days <= 0 {
		req.Days = defaultBacktestDays
	}
	if req.InitialCapital <= 0 {
		req.InitialCapital = s.cfg.Trading.InitialCapital
	}
	if req.PositionSize <= 0 {
		req.PositionSize = s.cfg.Trading.PositionSize
	}
	if req.StopLoss <= 0 {
		req.StopLoss = s.cfg.Trading.StopLoss
	}
}

// GetAvailableStrategies mengembalikan katalog strategi bawaan, urutannya tetap.
func (s *backtestService) GetAvailableStrategies() []dto.StrategyInfo {
	catalog := strategy.Catalog()
	infos := make([]dto.StrategyInfo, 0, len(catalog))
	for _, strat := range catalog {
		infos = append(infos, dto.StrategyInfo{
			Name:        strat.Name,
			Description: strat.Description,
		})
	}
	return infos
}

func (s *backtestService) GetRecentBacktests(ctx context.Context, limit int) ([]model.BacktestResult, error) {
	return s.backtestRepo.GetRecent(ctx, limit)
}

func (s *backtestService) GetBacktestDetails(ctx context.Context, id uint) (*model.BacktestResult, error) {
	return s.backtestRepo.GetDetails(ctx, id)
}
