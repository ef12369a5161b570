package dto

import (
	"encoding/json"
	"math"
	"time"
)

// BacktestRequest mendefinisikan parameter untuk menjalankan sebuah backtest.
// Field nol diisi default dari konfigurasi trading.
type BacktestRequest struct {
	Symbol         string  `json:"symbol" validate:"required"`
	StrategyName   string  `json:"strategy" validate:"required"`
	Exchange       string  `json:"exchange"`
	Days           int     `json:"days"`
	InitialCapital float64 `json:"initial_capital" validate:"gte=0"`
	PositionSize   float64 `json:"position_size" validate:"gte=0,lte=1"`
	StopLoss       float64 `json:"stop_loss" validate:"gte=0,lte=1"`
}

// PositionState adalah status posisi per bar: 0 flat, 1 long.
type PositionState int

const (
	PositionFlat PositionState = 0
	PositionLong PositionState = 1
)

// PortfolioSnapshot adalah kondisi portofolio setelah satu bar diproses.
// Invarian: PortfolioValue == Cash + Equity.
type PortfolioSnapshot struct {
	Timestamp      time.Time     `json:"timestamp"`
	Close          float64       `json:"close"`
	Signal         int           `json:"signal"`
	Position       PositionState `json:"position"`
	EntryPrice     float64       `json:"entry_price,omitempty"`
	ExitPrice      float64       `json:"exit_price,omitempty"`
	PnL            float64       `json:"pnl"`
	Cash           float64       `json:"cash"`
	Equity         float64       `json:"equity"`
	PortfolioValue float64       `json:"portfolio"`
}

// PerformanceMetrics merangkum kinerja satu simulasi relatif terhadap
// buy-and-hold. Dihitung sekali di akhir simulasi, read-only setelahnya.
type PerformanceMetrics struct {
	InitialCapital      float64 `json:"initial_capital"`
	FinalCapital        float64 `json:"final_capital"`
	TotalReturnPct      float64 `json:"total_return_pct"`
	AnnualReturnPct     float64 `json:"annual_return_pct"`
	AnnualVolatilityPct float64 `json:"annual_volatility_pct"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	MaxDrawdownPct      float64 `json:"max_drawdown_pct"`
	TotalTrades         int     `json:"total_trades"`
	WinRatePct          float64 `json:"win_rate_pct"`
	AvgProfit           float64 `json:"avg_profit"`
	AvgLoss             float64 `json:"avg_loss"`
	ProfitFactor        float64 `json:"profit_factor"`
	MarketReturnPct     float64 `json:"market_return_pct"`
	OutperformancePct   float64 `json:"outperformance_pct"`
}

// MarshalJSON mengganti profit factor non-finite (+Inf saat tidak ada trade
// rugi) dengan null: encoding/json menolak +Inf, sedangkan nilai +Inf tetap
// dipakai di dalam proses.
func (m PerformanceMetrics) MarshalJSON() ([]byte, error) {
	type performanceMetricsAlias PerformanceMetrics
	out := struct {
		performanceMetricsAlias
		ProfitFactor *float64 `json:"profit_factor"`
	}{performanceMetricsAlias: performanceMetricsAlias(m)}

	if !math.IsInf(m.ProfitFactor, 0) && !math.IsNaN(m.ProfitFactor) {
		out.ProfitFactor = &m.ProfitFactor
	}
	return json.Marshal(out)
}

// BacktestRun adalah hasil lengkap satu backtest: metrik plus jejak
// portofolio bar demi bar. Immutable setelah dibuat.
type BacktestRun struct {
	Symbol       string              `json:"symbol"`
	StrategyName string              `json:"strategy"`
	Exchange     string              `json:"exchange"`
	PeriodDays   int                 `json:"period_days"`
	Metrics      PerformanceMetrics  `json:"metrics"`
	Trace        []PortfolioSnapshot `json:"results"`
}

// TradeDetail adalah satu transaksi tersimpan milik sebuah backtest.
type TradeDetail struct {
	EntryDate  *time.Time `json:"entry_date"`
	EntryPrice float64    `json:"entry_price"`
	ExitDate   *time.Time `json:"exit_date"`
	ExitPrice  float64    `json:"exit_price"`
	PnL        float64    `json:"pnl"`
}

// StrategyInfo mendeskripsikan satu strategi pada katalog.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OptimizePortfolioRequest adalah permintaan optimasi alokasi portofolio.
type OptimizePortfolioRequest struct {
	Symbols        []string `json:"symbols" validate:"required,min=1,dive,required"`
	Days           int      `json:"days"`
	InitialCapital float64  `json:"initial_capital" validate:"gte=0"`
}

// Allocation adalah satu slot alokasi hasil optimasi.
type Allocation struct {
	Symbol         string  `json:"symbol"`
	Strategy       string  `json:"strategy"`
	Weight         float64 `json:"weight"`
	ExpectedReturn float64 `json:"expected_return"`
	Risk           float64 `json:"risk"`
}
