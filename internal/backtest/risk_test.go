package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskManager_CalculatePositionSize(t *testing.T) {
	rm := NewRiskManager()

	tests := []struct {
		name       string
		balance    float64
		entry      float64
		stop       float64
		confidence float64
		wantValue  float64
	}{
		{
			// Kelly 0.9*0.25 = 22.5% dan risk-cap 20% dari saldo;
			// batas per posisi 10% yang menang.
			name:       "single position cap binds",
			balance:    10000,
			entry:      100,
			stop:       90,
			confidence: 0.9,
			wantValue:  1000,
		},
		{
			// Kelly 0.2*0.25 = 5% lebih ketat dari batas 10%.
			name:       "kelly fraction binds",
			balance:    10000,
			entry:      100,
			stop:       90,
			confidence: 0.2,
			wantValue:  500,
		},
		{
			// Stop sangat rapat: risk-cap longgar, batas posisi tetap menang
			// atas Kelly 25%.
			name:       "tight stop",
			balance:    10000,
			entry:      100,
			stop:       99.5,
			confidence: 1.0,
			wantValue:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizing := rm.CalculatePositionSize(tt.balance, tt.entry, tt.stop, tt.confidence)
			assert.InDelta(t, tt.wantValue, sizing.PositionValue, 1e-9)
			assert.InDelta(t, tt.wantValue/tt.entry, sizing.PositionSize, 1e-9)
			assert.Greater(t, sizing.RiskAmount, 0.0)
			assert.LessOrEqual(t, sizing.RiskPercentage, rm.MaxPortfolioRisk*100+1e-9)
		})
	}
}

func TestRiskManager_CalculatePositionSize_InvalidInput(t *testing.T) {
	rm := NewRiskManager()

	tests := []struct {
		name    string
		balance float64
		entry   float64
		stop    float64
	}{
		{name: "zero risk per share", balance: 10000, entry: 100, stop: 100},
		{name: "zero entry price", balance: 10000, entry: 0, stop: 95},
		{name: "empty account", balance: 0, entry: 100, stop: 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PositionSizing{}, rm.CalculatePositionSize(tt.balance, tt.entry, tt.stop, 0.8))
		})
	}
}

func TestRiskManager_DynamicStopLoss(t *testing.T) {
	rm := NewRiskManager()

	tests := []struct {
		name         string
		entry        float64
		current      float64
		atr          float64
		profitFactor float64
		want         float64
	}{
		{
			name:         "initial stop while underwater",
			entry:        100,
			current:      98,
			atr:          2,
			profitFactor: 2,
			want:         96, // entry - 2*ATR
		},
		{
			name:         "trailing stop after profit",
			entry:        100,
			current:      110,
			atr:          2,
			profitFactor: 2,
			want:         105, // current - profit/2
		},
		{
			name:         "small profit keeps initial stop",
			entry:        100,
			current:      101,
			atr:          2,
			profitFactor: 2,
			want:         100.5, // trail 100.5 di atas initial 96
		},
		{
			name:         "invalid profit factor falls back",
			entry:        100,
			current:      120,
			atr:          2,
			profitFactor: 0,
			want:         95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rm.DynamicStopLoss(tt.entry, tt.current, tt.atr, tt.profitFactor)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRiskManager_PortfolioHeat(t *testing.T) {
	rm := NewRiskManager()

	positions := []PositionSizing{
		{RiskPercentage: 1.5},
		{RiskPercentage: 2.0},
		{RiskPercentage: 0.5},
	}
	assert.InDelta(t, 4.0, rm.PortfolioHeat(positions), 1e-9)

	// Eksposur total dibatasi 100%.
	heavy := []PositionSizing{{RiskPercentage: 60}, {RiskPercentage: 70}}
	assert.InDelta(t, 100, rm.PortfolioHeat(heavy), 1e-9)

	assert.Zero(t, rm.PortfolioHeat(nil))
}
