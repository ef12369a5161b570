package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCascadeForTest(capital float64, signalService SignalService) *cascadeService {
	return &cascadeService{
		cfg:            testConfig(),
		log:            logger.NewNop(),
		signalService:  signalService,
		initialCapital: capital,
		currentCapital: capital,
		rng:            rand.New(rand.NewSource(1)),
	}
}

func TestCascadeBuildPositions_ProgressiveAllocation(t *testing.T) {
	s := newCascadeForTest(1000, nil)

	opportunities := []dto.CompositeSignal{
		{Symbol: "BTC/USDT", Confidence: 1.0, RiskLevel: dto.RiskMedium},
		{Symbol: "ETH/USDT", Confidence: 0.5, RiskLevel: dto.RiskLow},
		{Symbol: "SOL/USDT", Confidence: 0.8, RiskLevel: dto.RiskHigh},
	}

	positions := s.buildPositions(1000, opportunities)
	require.Len(t, positions, 3)

	// Slot pertama: 1000 * 0.3 * 1.0 * 1.0 = 300.
	assert.Equal(t, "BTC/USDT", positions[0].Symbol)
	assert.InDelta(t, 300.0, positions[0].PositionSize, 1e-9)

	// Slot kedua dari sisa 700: 700 * 0.3 * 0.5 * (0.5*1.2) = 63.
	assert.Equal(t, "ETH/USDT", positions[1].Symbol)
	assert.InDelta(t, 63.0, positions[1].PositionSize, 1e-9)

	// Slot ketiga dari sisa 637: 637 * 0.3 / 3 * (0.8*0.8) = 40.768.
	assert.Equal(t, "SOL/USDT", positions[2].Symbol)
	assert.InDelta(t, 40.768, positions[2].PositionSize, 1e-9)
}

func TestCascadeBuildPositions_CapsSingleShare(t *testing.T) {
	s := newCascadeForTest(1000, nil)

	// Confidence di luar rentang wajar tetap tidak boleh melebihi 50% modal.
	positions := s.buildPositions(1000, []dto.CompositeSignal{
		{Symbol: "BTC/USDT", Confidence: 2.0, RiskLevel: dto.RiskLow},
	})
	require.Len(t, positions, 1)
	assert.InDelta(t, 500.0, positions[0].PositionSize, 1e-9)
}

func TestCascadeBuildPositions_SkipsBelowMinimum(t *testing.T) {
	s := newCascadeForTest(20, nil)

	// 20 * 0.3 = 6 di bawah ukuran posisi minimum 10.
	positions := s.buildPositions(20, []dto.CompositeSignal{
		{Symbol: "BTC/USDT", Confidence: 1.0, RiskLevel: dto.RiskMedium},
	})
	assert.Empty(t, positions)
}

func TestCascadeApplyCycle_ReinvestsProfitPartially(t *testing.T) {
	s := newCascadeForTest(100, nil)

	cycle := s.applyCycle([]dto.CascadeTrade{
		{Symbol: "BTC/USDT", PnL: 50},
		{Symbol: "ETH/USDT", PnL: -10},
	})

	// Profit 40: 80% diputar kembali, 20% disimpan.
	assert.Equal(t, 1, cycle.CycleNumber)
	assert.Equal(t, 100.0, cycle.StartingCapital)
	assert.InDelta(t, 132.0, cycle.EndingCapital, 1e-9)
	assert.InDelta(t, 40.0, cycle.TotalPnL, 1e-9)
	assert.InDelta(t, 40.0, cycle.ReturnPct, 1e-9)
	assert.InDelta(t, 8.0, cycle.BankedProfit, 1e-9)

	assert.InDelta(t, 132.0, s.currentCapital, 1e-9)
	assert.InDelta(t, 8.0, s.bankedProfit, 1e-9)
	require.Len(t, s.history, 1)
}

func TestCascadeApplyCycle_LossHitsCapitalFully(t *testing.T) {
	s := newCascadeForTest(100, nil)

	cycle := s.applyCycle([]dto.CascadeTrade{{Symbol: "BTC/USDT", PnL: -20}})

	assert.InDelta(t, 80.0, cycle.EndingCapital, 1e-9)
	assert.InDelta(t, -20.0, cycle.ReturnPct, 1e-9)
	assert.Equal(t, 0.0, cycle.BankedProfit)
	assert.Equal(t, 0.0, s.bankedProfit)
}

func TestCascadeSummary_EstimatesCyclesToTarget(t *testing.T) {
	s := newCascadeForTest(100, nil)
	s.applyCycle([]dto.CascadeTrade{{Symbol: "BTC/USDT", PnL: 50}})

	summary := s.Summary()

	assert.Equal(t, 1, summary.CyclesCompleted)
	assert.InDelta(t, 50.0, summary.AvgReturnPerCyclePct, 1e-9)
	assert.InDelta(t, 100.0, summary.WinRatePct, 1e-9)

	// log(1_000_000/100) / log(1.5)
	require.NotNil(t, summary.EstimatedCyclesToTarget)
	want := math.Log(10000) / math.Log(1.5)
	assert.InDelta(t, want, *summary.EstimatedCyclesToTarget, 1e-9)
}

func TestCascadeSummary_NoCycles(t *testing.T) {
	s := newCascadeForTest(1000, nil)

	summary := s.Summary()

	assert.Equal(t, 0, summary.CyclesCompleted)
	assert.Equal(t, 0.0, summary.TotalReturnPct)
	assert.Nil(t, summary.EstimatedCyclesToTarget)
	assert.Empty(t, summary.Cycles)
}

func TestRunCascade_ZeroExpectedReturnKeepsCapital(t *testing.T) {
	// Confidence 1.0 membuat setiap undian sukses dan expected return 0
	// membuat PnL nol berapa pun noise-nya.
	fake := &fakeSignalService{top: []dto.CompositeSignal{
		{Symbol: "BTC/USDT", Signal: dto.SignalBuy, Confidence: 1.0, ExpectedReturn: 0, RiskLevel: dto.RiskMedium},
	}}
	s := newCascadeForTest(1000, fake)

	summary, err := s.RunCascade(context.Background(), dto.RunCascadeRequest{Cycles: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.CyclesCompleted)
	assert.InDelta(t, 1000.0, summary.CurrentCapital, 1e-9)
	assert.InDelta(t, 0.0, summary.TotalReturnPct, 1e-9)
	assert.Nil(t, summary.EstimatedCyclesToTarget)

	for _, cycle := range summary.Cycles {
		require.Len(t, cycle.Trades, 1)
		assert.True(t, cycle.Trades[0].Success)
		assert.Equal(t, 0.0, cycle.Trades[0].PnL)
	}
}

func TestRunCascade_ResetsStateWithInitialCapital(t *testing.T) {
	fake := &fakeSignalService{top: []dto.CompositeSignal{
		{Symbol: "BTC/USDT", Confidence: 1.0, ExpectedReturn: 0, RiskLevel: dto.RiskMedium},
	}}
	s := newCascadeForTest(1000, fake)

	_, err := s.RunCascade(context.Background(), dto.RunCascadeRequest{Cycles: 2})
	require.NoError(t, err)

	summary, err := s.RunCascade(context.Background(), dto.RunCascadeRequest{Cycles: 1, InitialCapital: 2000})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, summary.InitialCapital)
	assert.Equal(t, 1, summary.CyclesCompleted)
}

func TestRunCascade_OpportunityErrorSkipsCycle(t *testing.T) {
	fake := &fakeSignalService{topErr: errors.New("predictor down")}
	s := newCascadeForTest(1000, fake)

	// Siklus yang gagal hanya dicatat di log, run tetap selesai.
	summary, err := s.RunCascade(context.Background(), dto.RunCascadeRequest{Cycles: 3})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.CyclesCompleted)
	assert.Equal(t, 1000.0, summary.CurrentCapital)
}

func TestRunCascade_StopsWithoutViablePositions(t *testing.T) {
	fake := &fakeSignalService{}
	s := newCascadeForTest(1000, fake)

	summary, err := s.RunCascade(context.Background(), dto.RunCascadeRequest{Cycles: 5})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.CyclesCompleted)
	assert.Equal(t, 1000.0, summary.CurrentCapital)
}

func TestRunCascade_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newCascadeForTest(1000, &fakeSignalService{})
	_, err := s.RunCascade(ctx, dto.RunCascadeRequest{Cycles: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
