package backtest

import (
	"context"
	"math"
	"testing"
	"time"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTrace(portfolio, closes []float64, pnls map[int]float64) []dto.PortfolioSnapshot {
	trace := make([]dto.PortfolioSnapshot, len(portfolio))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range portfolio {
		trace[i] = dto.PortfolioSnapshot{
			Timestamp:      start.AddDate(0, 0, i),
			Close:          closes[i],
			Cash:           portfolio[i],
			PortfolioValue: portfolio[i],
			PnL:            pnls[i],
		}
	}
	return trace
}

func TestAnalyzer_SingleReturnObservation(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewNop())

	trace := makeTrace(
		[]float64{10000, 10100},
		[]float64{100, 101},
		nil,
	)
	metrics := analyzer.Compute(context.Background(), trace)

	assert.InDelta(t, 10000, metrics.InitialCapital, 1e-9)
	assert.InDelta(t, 10100, metrics.FinalCapital, 1e-9)
	assert.InDelta(t, 1.0, metrics.TotalReturnPct, 1e-9)

	// Satu observasi return: anualisasi 252/1, volatilitas sampel nol.
	wantAnnual := (math.Pow(1.01, 252) - 1) * 100
	assert.InDelta(t, wantAnnual, metrics.AnnualReturnPct, 1e-6)
	assert.Zero(t, metrics.AnnualVolatilityPct)
	assert.Zero(t, metrics.SharpeRatio)

	assert.InDelta(t, 1.0, metrics.MarketReturnPct, 1e-9)
	assert.InDelta(t, 0.0, metrics.OutperformancePct, 1e-9)
}

func TestAnalyzer_MaxDrawdown(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewNop())

	trace := makeTrace(
		[]float64{10000, 12000, 9000, 11000},
		[]float64{100, 120, 90, 110},
		nil,
	)
	metrics := analyzer.Compute(context.Background(), trace)

	// Puncak 12000, lembah 9000: drawdown (9000/12000 - 1) * 100.
	assert.InDelta(t, -25.0, metrics.MaxDrawdownPct, 1e-9)
}

func TestAnalyzer_TradeStatistics(t *testing.T) {
	tests := []struct {
		name             string
		pnls             map[int]float64
		wantTrades       int
		wantWinRate      float64
		wantAvgProfit    float64
		wantAvgLoss      float64
		wantProfitFactor float64
		wantInfFactor    bool
	}{
		{
			name:             "mixed wins and losses",
			pnls:             map[int]float64{1: 40, 2: -20, 3: 60},
			wantTrades:       3,
			wantWinRate:      100.0 * 2 / 3,
			wantAvgProfit:    50,
			wantAvgLoss:      -20,
			wantProfitFactor: 2.5,
		},
		{
			name:          "only winners",
			pnls:          map[int]float64{1: 40, 3: 10},
			wantTrades:    2,
			wantWinRate:   100,
			wantAvgProfit: 25,
			wantInfFactor: true,
		},
		{
			name:       "no trades",
			pnls:       nil,
			wantTrades: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewAnalyzer(logger.NewNop())
			trace := makeTrace(
				[]float64{10000, 10040, 10020, 10080},
				[]float64{100, 101, 102, 103},
				tt.pnls,
			)
			metrics := analyzer.Compute(context.Background(), trace)

			assert.Equal(t, tt.wantTrades, metrics.TotalTrades)
			assert.InDelta(t, tt.wantWinRate, metrics.WinRatePct, 1e-9)
			assert.InDelta(t, tt.wantAvgProfit, metrics.AvgProfit, 1e-9)
			assert.InDelta(t, tt.wantAvgLoss, metrics.AvgLoss, 1e-9)
			if tt.wantInfFactor {
				assert.True(t, math.IsInf(metrics.ProfitFactor, 1))
			} else {
				assert.InDelta(t, tt.wantProfitFactor, metrics.ProfitFactor, 1e-9)
			}
		})
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewNop())
	trace := makeTrace(
		[]float64{10000, 10200, 9900, 10500},
		[]float64{100, 103, 98, 107},
		map[int]float64{2: -30, 3: 55},
	)

	first := analyzer.Compute(context.Background(), trace)
	second := analyzer.Compute(context.Background(), trace)
	assert.Equal(t, first, second)
}

func TestAnalyzer_DegradedInputs(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		trace []dto.PortfolioSnapshot
	}{
		{name: "nil trace"},
		{
			name:  "single snapshot",
			trace: makeTrace([]float64{10000}, []float64{100}, nil),
		},
		{
			name:  "zero initial value",
			trace: makeTrace([]float64{0, 100}, []float64{100, 101}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, dto.PerformanceMetrics{}, analyzer.Compute(ctx, tt.trace))
		})
	}
}

func TestAnalyzer_EndToEndWithSimulator(t *testing.T) {
	sim := NewSimulator(logger.NewNop(), defaultConfig())
	analyzer := NewAnalyzer(logger.NewNop())
	ctx := context.Background()

	closes := []float64{100, 102, 99, 101, 105}
	signals := []int{1, 0, 0, 0, -1}

	trace := sim.Run(ctx, makeBars(closes), signals)
	require.NotNil(t, trace)

	metrics := analyzer.Compute(ctx, trace)
	assert.InDelta(t, 10050, metrics.FinalCapital, 1e-9)
	assert.InDelta(t, 0.5, metrics.TotalReturnPct, 1e-9)
	assert.Equal(t, 1, metrics.TotalTrades)
	assert.InDelta(t, 100, metrics.WinRatePct, 1e-9)
	assert.InDelta(t, 5.0, metrics.MarketReturnPct, 1e-9)
	assert.InDelta(t, -4.5, metrics.OutperformancePct, 1e-9)
	assert.True(t, math.IsInf(metrics.ProfitFactor, 1))
}
