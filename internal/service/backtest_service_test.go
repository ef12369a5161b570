package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"
	"crypto-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBacktestRepo struct {
	saved   []*dto.BacktestRun
	saveErr error
	recent  []model.BacktestResult
	details *model.BacktestResult
}

func (f *fakeBacktestRepo) Save(ctx context.Context, run *dto.BacktestRun) (uint, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.saved = append(f.saved, run)
	return uint(len(f.saved)), nil
}

func (f *fakeBacktestRepo) GetRecent(ctx context.Context, limit int) ([]model.BacktestResult, error) {
	return f.recent, nil
}

func (f *fakeBacktestRepo) GetDetails(ctx context.Context, id uint) (*model.BacktestResult, error) {
	return f.details, nil
}

func priceBars(closes []float64) []dto.PriceBar {
	bars := make([]dto.PriceBar, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, close := range closes {
		bars[i] = dto.PriceBar{Timestamp: start.AddDate(0, 0, i), Close: close}
	}
	return bars
}

// Deret yang memicu tepat satu round trip pada strategi RSI (7): turun sampai
// oversold, pulih (beli saat RSI menembus 25 ke atas), memuncak, lalu koreksi
// (jual saat RSI turun menembus 75).
func rsiRoundTripCloses() []float64 {
	closes := []float64{100, 99, 98, 97, 96, 95, 94, 93, 92, 91}
	closes = append(closes, 92, 93, 94, 95, 96, 97, 98)
	closes = append(closes, 97, 96)
	return closes
}

func TestRunBacktest_FullRoundTrip(t *testing.T) {
	repo := &fakeBacktestRepo{}
	ohlcv := &fakeOHLCVRepo{priceSeries: func(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
		return priceBars(rsiRoundTripCloses()), nil
	}}
	svc := NewBacktestService(testConfig(), logger.NewNop(), ohlcv, repo)

	run, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{
		Symbol:       "BTC/USDT",
		StrategyName: "RSI (7)",
	})
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, "BTC/USDT", run.Symbol)
	assert.Equal(t, "RSI (7)", run.StrategyName)
	assert.Equal(t, "binance", run.Exchange)
	assert.Equal(t, 365, run.PeriodDays)

	// Entry di close 93, exit di close 96 dengan posisi 10% dari 10000.
	assert.Equal(t, 1, run.Metrics.TotalTrades)
	assert.InDelta(t, (96.0/93-1)*1000, run.Metrics.FinalCapital-10000, 1e-9)
	assert.InDelta(t, 100, run.Metrics.WinRatePct, 1e-9)
	assert.True(t, math.IsInf(run.Metrics.ProfitFactor, 1))
	require.Len(t, run.Trace, 19)

	// Hasil tersimpan persis seperti yang dikembalikan.
	require.Len(t, repo.saved, 1)
	assert.Equal(t, run, repo.saved[0])
}

func TestRunBacktest_UnknownStrategy(t *testing.T) {
	repo := &fakeBacktestRepo{}
	svc := NewBacktestService(testConfig(), logger.NewNop(), &fakeOHLCVRepo{}, repo)

	run, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{
		Symbol:       "BTC/USDT",
		StrategyName: "Ichimoku Cloud",
	})
	assert.Error(t, err)
	assert.Nil(t, run)
	assert.Empty(t, repo.saved)
}

func TestRunBacktest_NoHistoricalData(t *testing.T) {
	repo := &fakeBacktestRepo{}
	ohlcv := &fakeOHLCVRepo{priceSeries: func(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
		return nil, nil
	}}
	svc := NewBacktestService(testConfig(), logger.NewNop(), ohlcv, repo)

	// Dataset kosong bukan kegagalan: nil tanpa error, tidak ada yang disimpan.
	run, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{
		Symbol:       "XYZ/USDT",
		StrategyName: "RSI (14)",
	})
	assert.NoError(t, err)
	assert.Nil(t, run)
	assert.Empty(t, repo.saved)
}

func TestRunBacktest_SaveFailure(t *testing.T) {
	repo := &fakeBacktestRepo{saveErr: errors.New("disk full")}
	ohlcv := &fakeOHLCVRepo{priceSeries: func(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
		return priceBars(rsiRoundTripCloses()), nil
	}}
	svc := NewBacktestService(testConfig(), logger.NewNop(), ohlcv, repo)

	_, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{
		Symbol:       "BTC/USDT",
		StrategyName: "RSI (7)",
	})
	assert.ErrorContains(t, err, "failed to save backtest results")
}

func TestEvaluate_DoesNotPersist(t *testing.T) {
	repo := &fakeBacktestRepo{}
	ohlcv := &fakeOHLCVRepo{priceSeries: func(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
		return priceBars(rsiRoundTripCloses()), nil
	}}
	svc := NewBacktestService(testConfig(), logger.NewNop(), ohlcv, repo)

	run, err := svc.Evaluate(context.Background(), dto.BacktestRequest{
		Symbol:       "BTC/USDT",
		StrategyName: "RSI (7)",
	})
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Empty(t, repo.saved)
}

func TestEvaluate_AppliesRequestDefaults(t *testing.T) {
	var gotExchange string
	var gotSince time.Time
	ohlcv := &fakeOHLCVRepo{priceSeries: func(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
		gotExchange = exchange
		gotSince = since
		return nil, nil
	}}
	svc := NewBacktestService(testConfig(), logger.NewNop(), ohlcv, &fakeBacktestRepo{})

	_, err := svc.Evaluate(context.Background(), dto.BacktestRequest{
		Symbol:       "BTC/USDT",
		StrategyName: "MA Crossover (5,20)",
	})
	require.NoError(t, err)

	assert.Equal(t, "binance", gotExchange)
	wantSince := time.Now().AddDate(0, 0, -365)
	assert.WithinDuration(t, wantSince, gotSince, time.Minute)
}

func TestEvaluate_FlatSeriesHasNoTrades(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	ohlcv := &fakeOHLCVRepo{priceSeries: func(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
		return priceBars(closes), nil
	}}
	svc := NewBacktestService(testConfig(), logger.NewNop(), ohlcv, &fakeBacktestRepo{})

	run, err := svc.Evaluate(context.Background(), dto.BacktestRequest{
		Symbol:       "BTC/USDT",
		StrategyName: "MA Crossover (5,20)",
	})
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, 0, run.Metrics.TotalTrades)
	assert.Zero(t, run.Metrics.TotalReturnPct)
	assert.Zero(t, run.Metrics.ProfitFactor)
	assert.Zero(t, run.Metrics.WinRatePct)
	assert.InDelta(t, 10000, run.Metrics.FinalCapital, 1e-9)
}

func TestGetAvailableStrategies(t *testing.T) {
	svc := NewBacktestService(testConfig(), logger.NewNop(), &fakeOHLCVRepo{}, &fakeBacktestRepo{})

	infos := svc.GetAvailableStrategies()
	require.Len(t, infos, 7)
	assert.Equal(t, "MA Crossover (20,50)", infos[0].Name)
	assert.Equal(t, "MACD (8,17,9)", infos[6].Name)
}

func TestGetRecentAndDetailsDelegate(t *testing.T) {
	repo := &fakeBacktestRepo{
		recent:  []model.BacktestResult{{Symbol: "BTC/USDT"}},
		details: &model.BacktestResult{Symbol: "ETH/USDT"},
	}
	svc := NewBacktestService(testConfig(), logger.NewNop(), &fakeOHLCVRepo{}, repo)

	recent, err := svc.GetRecentBacktests(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "BTC/USDT", recent[0].Symbol)

	details, err := svc.GetBacktestDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ETH/USDT", details.Symbol)
}
