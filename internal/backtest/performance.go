package backtest

import (
	"context"
	"math"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/logger"
	"crypto-dashboard/pkg/utils"
)

// tradingDaysPerYear dipakai untuk anualisasi return dan volatilitas.
const tradingDaysPerYear = 252

// Analyzer menghitung satu kartu skor kinerja dari jejak portofolio yang
// sudah selesai, dibandingkan terhadap buy-and-hold. Pure: dua pemanggilan
// dengan jejak yang sama menghasilkan metrik identik.
type Analyzer struct {
	log *logger.Logger
}

func NewAnalyzer(log *logger.Logger) *Analyzer {
	return &Analyzer{log: log}
}

// Compute mengembalikan PerformanceMetrics dari jejak simulasi. Jejak yang
// terlalu pendek untuk menghasilkan observasi return (termasuk jejak nil dari
// kontrak terdegradasi Simulator) menghasilkan laporan serba-nol, bukan error.
func (a *Analyzer) Compute(ctx context.Context, trace []dto.PortfolioSnapshot) dto.PerformanceMetrics {
	if len(trace) < 2 {
		a.log.WarnContext(ctx, "Portfolio trace too short for performance metrics, returning zero report",
			logger.IntField("trace_len", len(trace)),
		)
		return dto.PerformanceMetrics{}
	}

	portfolio := make([]float64, len(trace))
	closes := make([]float64, len(trace))
	for i, snap := range trace {
		portfolio[i] = snap.PortfolioValue
		closes[i] = snap.Close
	}

	returns := utils.PctChanges(portfolio)
	if len(returns) == 0 || portfolio[0] == 0 || closes[0] == 0 {
		a.log.WarnContext(ctx, "Degenerate portfolio trace, returning zero report")
		return dto.PerformanceMetrics{}
	}

	initialCapital := portfolio[0]
	finalCapital := portfolio[len(portfolio)-1]
	totalReturn := (finalCapital/initialCapital - 1) * 100

	annualReturn := (math.Pow(1+totalReturn/100, tradingDaysPerYear/float64(len(returns))) - 1) * 100

	dailyStd := utils.StdDev(returns) * 100
	annualStd := dailyStd * math.Sqrt(tradingDaysPerYear)

	sharpe := 0.0
	if annualStd != 0 {
		sharpe = annualReturn / annualStd
	}

	maxDrawdown := 0.0
	runningMax := portfolio[0]
	for _, value := range portfolio {
		if value > runningMax {
			runningMax = value
		}
		drawdown := (value/runningMax - 1) * 100
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	var wins, losses []float64
	totalTrades := 0
	for _, snap := range trace {
		if snap.PnL == 0 {
			continue
		}
		totalTrades++
		if snap.PnL > 0 {
			wins = append(wins, snap.PnL)
		} else {
			losses = append(losses, snap.PnL)
		}
	}

	winRate := 0.0
	avgProfit := 0.0
	avgLoss := 0.0
	profitFactor := 0.0
	if totalTrades > 0 {
		winRate = float64(len(wins)) / float64(totalTrades) * 100
		avgProfit = utils.Mean(wins)
		avgLoss = utils.Mean(losses)
		if avgLoss != 0 {
			profitFactor = math.Abs(avgProfit / avgLoss)
		} else {
			profitFactor = math.Inf(1)
		}
	}

	marketReturn := (closes[len(closes)-1]/closes[0] - 1) * 100

	return dto.PerformanceMetrics{
		InitialCapital:      initialCapital,
		FinalCapital:        finalCapital,
		TotalReturnPct:      totalReturn,
		AnnualReturnPct:     annualReturn,
		AnnualVolatilityPct: annualStd,
		SharpeRatio:         sharpe,
		MaxDrawdownPct:      maxDrawdown,
		TotalTrades:         totalTrades,
		WinRatePct:          winRate,
		AvgProfit:           avgProfit,
		AvgLoss:             avgLoss,
		ProfitFactor:        profitFactor,
		MarketReturnPct:     marketReturn,
		OutperformancePct:   totalReturn - marketReturn,
	}
}
