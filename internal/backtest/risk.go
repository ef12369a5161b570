package backtest

import "math"

// PositionSizing adalah hasil perhitungan ukuran posisi berbasis risiko.
type PositionSizing struct {
	PositionSize   float64 // jumlah unit
	PositionValue  float64
	RiskAmount     float64
	RiskPercentage float64
}

// RiskManager menyediakan kebijakan risiko di luar simulator dasar: ukuran
// posisi Kelly yang dibatasi, trailing stop dinamis, dan eksposur total.
// Trailing stop adalah kebijakan alternatif; simulator dasar tetap memakai
// stop tetap yang dihitung sekali saat entry.
type RiskManager struct {
	MaxPortfolioRisk  float64 // rugi harian maksimum sebagai fraksi saldo
	MaxSinglePosition float64 // fraksi maksimum per posisi
}

func NewRiskManager() *RiskManager {
	return &RiskManager{
		MaxPortfolioRisk:  0.02,
		MaxSinglePosition: 0.1,
	}
}

// CalculatePositionSize menghitung ukuran posisi dengan fraksi Kelly
// konservatif (confidence * 0.25) yang dibatasi oleh risiko per trade dan
// batas per posisi. Input tak valid menghasilkan sizing nol.
func (r *RiskManager) CalculatePositionSize(accountBalance, entryPrice, stopLossPrice, confidenceScore float64) PositionSizing {
	riskPerShare := math.Abs(entryPrice - stopLossPrice)
	if riskPerShare == 0 || entryPrice <= 0 || accountBalance <= 0 {
		return PositionSizing{}
	}

	kellyFraction := confidenceScore * 0.25

	maxRiskAmount := accountBalance * r.MaxPortfolioRisk
	maxPositionAmount := accountBalance * r.MaxSinglePosition

	positionValueByRisk := (maxRiskAmount / riskPerShare) * entryPrice
	kellyPositionValue := accountBalance * kellyFraction

	finalValue := math.Min(positionValueByRisk, math.Min(kellyPositionValue, maxPositionAmount))
	finalSize := finalValue / entryPrice

	return PositionSizing{
		PositionSize:   finalSize,
		PositionValue:  finalValue,
		RiskAmount:     finalSize * riskPerShare,
		RiskPercentage: (finalSize * riskPerShare) / accountBalance * 100,
	}
}

// DynamicStopLoss menghitung trailing stop: mulai 2x ATR di bawah entry, lalu
// mengikuti harga saat posisi profit (trail di 50% profit dengan
// profitFactor=2).
func (r *RiskManager) DynamicStopLoss(entryPrice, currentPrice, atr, profitFactor float64) float64 {
	if profitFactor <= 0 {
		return entryPrice * 0.95
	}

	initialStop := entryPrice - 2*atr

	if currentPrice > entryPrice {
		profit := currentPrice - entryPrice
		trailingStop := currentPrice - profit/profitFactor
		return math.Max(initialStop, trailingStop)
	}

	return initialStop
}

// PortfolioHeat menjumlahkan eksposur risiko semua posisi terbuka, dibatasi 100%.
func (r *RiskManager) PortfolioHeat(positions []PositionSizing) float64 {
	total := 0.0
	for _, pos := range positions {
		total += pos.RiskPercentage
	}
	return math.Min(total, 100)
}
