package service

import (
	"context"
	"sort"
	"sync"

	"crypto-dashboard/config"
	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// minAllocationWeight menyaring slot alokasi yang terlalu kecil.
const minAllocationWeight = 0.01

// PortfolioService menjalankan sweep backtest simbol x strategi dan
// menurunkan alokasi portofolio dari hasilnya.
type PortfolioService interface {
	OptimizeAllocation(ctx context.Context, req dto.OptimizePortfolioRequest) ([]dto.Allocation, error)
	CreateMegaStrategy(allocations []dto.Allocation) map[string]float64
}

type portfolioService struct {
	cfg             *config.Config
	log             *logger.Logger
	backtestService BacktestService
}

func NewPortfolioService(cfg *config.Config, log *logger.Logger, backtestService BacktestService) PortfolioService {
	return &portfolioService{
		cfg:             cfg,
		log:             log,
		backtestService: backtestService,
	}
}

// OptimizeAllocation menjalankan backtest untuk setiap kombinasi simbol dan
// strategi katalog secara paralel, lalu membagi bobot proporsional terhadap
// Sharpe ratio positif masing-masing kombinasi. Kombinasi yang gagal atau
// tanpa data dilewati, sweep tetap berjalan.
func (s *portfolioService) OptimizeAllocation(ctx context.Context, req dto.OptimizePortfolioRequest) ([]dto.Allocation, error) {
	type combo struct {
		symbol   string
		strategy string
		metrics  dto.PerformanceMetrics
	}

	strategies := s.backtestService.GetAvailableStrategies()

	var (
		mu     sync.Mutex
		combos []combo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Trading.MaxConcurrency)

	for _, symbol := range req.Symbols {
		for _, info := range strategies {
			symbol, info := symbol, info
			g.Go(func() error {
				run, err := s.backtestService.Evaluate(gctx, dto.BacktestRequest{
					Symbol:         symbol,
					StrategyName:   info.Name,
					Days:           req.Days,
					InitialCapital: req.InitialCapital,
				})
				if err != nil {
					s.log.WarnContext(gctx, "Backtest failed during portfolio sweep, skipping combination",
						logger.StringField("symbol", symbol),
						logger.StringField("strategy", info.Name),
						logger.ErrorField(err),
					)
					return nil
				}
				if run == nil {
					return nil
				}

				mu.Lock()
				combos = append(combos, combo{symbol: symbol, strategy: info.Name, metrics: run.Metrics})
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Bobot proporsional terhadap Sharpe positif, dinormalisasi ke 1.
	totalSharpe := 0.0
	for _, c := range combos {
		if c.metrics.SharpeRatio > 0 {
			totalSharpe += c.metrics.SharpeRatio
		}
	}
	if totalSharpe == 0 {
		s.log.WarnContext(ctx, "No combination with positive Sharpe ratio, returning empty allocation",
			logger.IntField("combinations", len(combos)),
		)
		return nil, nil
	}

	var allocations []dto.Allocation
	for _, c := range combos {
		if c.metrics.SharpeRatio <= 0 {
			continue
		}
		weight := c.metrics.SharpeRatio / totalSharpe
		if weight < minAllocationWeight {
			continue
		}
		allocations = append(allocations, dto.Allocation{
			Symbol:         c.symbol,
			Strategy:       c.strategy,
			Weight:         weight,
			ExpectedReturn: c.metrics.AnnualReturnPct,
			Risk:           c.metrics.AnnualVolatilityPct,
		})
	}

	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].Weight > allocations[j].Weight
	})

	return allocations, nil
}

// CreateMegaStrategy menggabungkan alokasi terbaik menjadi satu peta kekuatan
// sinyal per simbol: bobot dikali expected return, dijumlah per simbol.
func (s *portfolioService) CreateMegaStrategy(allocations []dto.Allocation) map[string]float64 {
	megaSignals := make(map[string]float64)
	for _, alloc := range allocations {
		megaSignals[alloc.Symbol] += alloc.Weight * alloc.ExpectedReturn
	}
	return megaSignals
}
