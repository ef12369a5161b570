package repository

import (
	"context"
	"errors"
	"time"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"

	"gorm.io/gorm"
)

// BacktestRepository menyimpan dan membaca hasil backtest beserta transaksi
// turunannya. Hanya orkestrator backtest yang boleh memanggilnya.
type BacktestRepository interface {
	Save(ctx context.Context, run *dto.BacktestRun) (uint, error)
	GetRecent(ctx context.Context, limit int) ([]model.BacktestResult, error)
	GetDetails(ctx context.Context, id uint) (*model.BacktestResult, error)
}

type backtestRepository struct {
	db *gorm.DB
}

func NewBacktestRepository(db *gorm.DB) BacktestRepository {
	return &backtestRepository{db: db}
}

// Save menulis baris ringkasan plus transaksi anak dalam satu transaksi DB.
func (r *backtestRepository) Save(ctx context.Context, run *dto.BacktestRun) (uint, error) {
	record := resultFromRun(run)

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// resultFromRun memetakan hasil run ke baris ringkasan beserta transaksinya.
func resultFromRun(run *dto.BacktestRun) model.BacktestResult {
	return model.BacktestResult{
		Symbol:           run.Symbol,
		Strategy:         run.StrategyName,
		Exchange:         run.Exchange,
		PeriodDays:       run.PeriodDays,
		InitialCapital:   run.Metrics.InitialCapital,
		FinalCapital:     run.Metrics.FinalCapital,
		TotalReturn:      run.Metrics.TotalReturnPct,
		AnnualReturn:     run.Metrics.AnnualReturnPct,
		AnnualVolatility: run.Metrics.AnnualVolatilityPct,
		SharpeRatio:      run.Metrics.SharpeRatio,
		MaxDrawdown:      run.Metrics.MaxDrawdownPct,
		TotalTrades:      run.Metrics.TotalTrades,
		WinRate:          run.Metrics.WinRatePct,
		ProfitFactor:     run.Metrics.ProfitFactor,
		Timestamp:        time.Now(),
		Trades:           tradesFromTrace(run.Trace),
	}
}

// tradesFromTrace mengambil bar dengan pnl != 0 sebagai transaksi tersimpan.
// Bar entry (EntryPrice terisi) dan bar exit sama-sama terekam pada satu bar
// exit, jadi tanggalnya diambil dari bar itu.
func tradesFromTrace(trace []dto.PortfolioSnapshot) []model.BacktestTrade {
	var trades []model.BacktestTrade
	var lastEntry *dto.PortfolioSnapshot

	for i := range trace {
		snap := trace[i]
		if snap.EntryPrice > 0 {
			lastEntry = &trace[i]
		}
		if snap.PnL == 0 {
			continue
		}

		trade := model.BacktestTrade{
			ExitPrice: snap.ExitPrice,
			PnL:       snap.PnL,
		}
		exitDate := snap.Timestamp
		trade.ExitDate = &exitDate
		if lastEntry != nil {
			entryDate := lastEntry.Timestamp
			trade.EntryDate = &entryDate
			trade.EntryPrice = lastEntry.EntryPrice
			lastEntry = nil
		}
		trades = append(trades, trade)
	}
	return trades
}

func (r *backtestRepository) GetRecent(ctx context.Context, limit int) ([]model.BacktestResult, error) {
	var results []model.BacktestResult
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *backtestRepository) GetDetails(ctx context.Context, id uint) (*model.BacktestResult, error) {
	var result model.BacktestResult
	err := r.db.WithContext(ctx).
		Preload("Trades", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_date ASC")
		}).
		First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
