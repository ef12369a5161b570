package repository

import (
	"testing"
	"time"

	"crypto-dashboard/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradesFromTrace(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2024, 1, 1+n, 0, 0, 0, 0, time.UTC)
	}

	trace := []dto.PortfolioSnapshot{
		{Timestamp: day(0), Close: 100, EntryPrice: 100},
		{Timestamp: day(1), Close: 102},
		{Timestamp: day(2), Close: 105, ExitPrice: 105, PnL: 50},
		{Timestamp: day(3), Close: 104},
		{Timestamp: day(4), Close: 103, EntryPrice: 103},
		{Timestamp: day(5), Close: 101, ExitPrice: 101, PnL: -19.4},
	}

	trades := tradesFromTrace(trace)
	require.Len(t, trades, 2)

	first := trades[0]
	require.NotNil(t, first.EntryDate)
	assert.Equal(t, day(0), *first.EntryDate)
	assert.Equal(t, 100.0, first.EntryPrice)
	require.NotNil(t, first.ExitDate)
	assert.Equal(t, day(2), *first.ExitDate)
	assert.Equal(t, 105.0, first.ExitPrice)
	assert.Equal(t, 50.0, first.PnL)

	second := trades[1]
	require.NotNil(t, second.EntryDate)
	assert.Equal(t, day(4), *second.EntryDate)
	assert.Equal(t, 103.0, second.EntryPrice)
	assert.Equal(t, -19.4, second.PnL)
}

func TestResultFromRun(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	run := &dto.BacktestRun{
		Symbol:       "BTC/USDT",
		StrategyName: "rsi",
		Exchange:     "binance",
		PeriodDays:   365,
		Metrics: dto.PerformanceMetrics{
			InitialCapital:      10000,
			FinalCapital:        11250,
			TotalReturnPct:      12.5,
			AnnualReturnPct:     13.1,
			AnnualVolatilityPct: 22.4,
			SharpeRatio:         0.58,
			MaxDrawdownPct:      -8.3,
			TotalTrades:         7,
			WinRatePct:          57.14,
			ProfitFactor:        1.9,
		},
		Trace: []dto.PortfolioSnapshot{
			{Timestamp: day, Close: 100, EntryPrice: 100},
			{Timestamp: day.AddDate(0, 0, 1), Close: 105, ExitPrice: 105, PnL: 50},
		},
	}

	record := resultFromRun(run)

	assert.Equal(t, "BTC/USDT", record.Symbol)
	assert.Equal(t, "rsi", record.Strategy)
	assert.Equal(t, "binance", record.Exchange)
	assert.Equal(t, 365, record.PeriodDays)
	assert.Equal(t, 10000.0, record.InitialCapital)
	assert.Equal(t, 11250.0, record.FinalCapital)
	assert.Equal(t, 12.5, record.TotalReturn)
	assert.Equal(t, 13.1, record.AnnualReturn)
	assert.Equal(t, 22.4, record.AnnualVolatility)
	assert.Equal(t, 0.58, record.SharpeRatio)
	assert.Equal(t, -8.3, record.MaxDrawdown)
	assert.Equal(t, 7, record.TotalTrades)
	assert.Equal(t, 57.14, record.WinRate)
	assert.Equal(t, 1.9, record.ProfitFactor)
	assert.False(t, record.Timestamp.IsZero())
	require.Len(t, record.Trades, 1)
	assert.Equal(t, 50.0, record.Trades[0].PnL)
}

func TestTradesFromTrace_NoTrades(t *testing.T) {
	trace := []dto.PortfolioSnapshot{
		{Close: 100},
		{Close: 101},
	}
	assert.Empty(t, tradesFromTrace(trace))
}

func TestTradesFromTrace_OpenPositionAtEnd(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trace := []dto.PortfolioSnapshot{
		{Timestamp: day, Close: 100, EntryPrice: 100},
		{Timestamp: day.AddDate(0, 0, 1), Close: 104},
	}

	// Posisi yang belum ditutup bukan transaksi tersimpan.
	assert.Empty(t, tradesFromTrace(trace))
}
