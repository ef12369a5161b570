package model

import (
	"encoding/json"
	"math"
	"time"
)

// BacktestResult adalah baris ringkasan satu backtest yang tersimpan.
type BacktestResult struct {
	ID               uint      `gorm:"primarykey"`
	Symbol           string    `gorm:"not null;index"`
	Strategy         string    `gorm:"not null"`
	Exchange         string    `gorm:"not null"`
	PeriodDays       int       `gorm:"not null"`
	InitialCapital   float64   `gorm:"not null"`
	FinalCapital     float64   `gorm:"not null"`
	TotalReturn      float64   `gorm:"column:total_return"`
	AnnualReturn     float64   `gorm:"column:annual_return"`
	AnnualVolatility float64   `gorm:"column:annual_volatility"`
	SharpeRatio      float64   `gorm:"column:sharpe_ratio"`
	MaxDrawdown      float64   `gorm:"column:max_drawdown"`
	TotalTrades      int       `gorm:"column:total_trades"`
	WinRate          float64   `gorm:"column:win_rate"`
	ProfitFactor     float64   `gorm:"column:profit_factor"`
	Timestamp        time.Time `gorm:"not null;index"`

	Trades []BacktestTrade `gorm:"foreignKey:BacktestID"`
}

func (BacktestResult) TableName() string {
	return "backtest_results"
}

// MarshalJSON mengganti profit factor non-finite dengan null agar baris
// tersimpan dengan +Inf tetap bisa diserialisasi ke API.
func (r BacktestResult) MarshalJSON() ([]byte, error) {
	type backtestResultAlias BacktestResult
	out := struct {
		backtestResultAlias
		ProfitFactor *float64
	}{backtestResultAlias: backtestResultAlias(r)}

	if !math.IsInf(r.ProfitFactor, 0) && !math.IsNaN(r.ProfitFactor) {
		out.ProfitFactor = &r.ProfitFactor
	}
	return json.Marshal(out)
}

// BacktestTrade adalah satu transaksi milik sebuah backtest.
type BacktestTrade struct {
	ID         uint       `gorm:"primarykey"`
	BacktestID uint       `gorm:"not null;index"`
	EntryDate  *time.Time `gorm:"column:entry_date"`
	EntryPrice float64    `gorm:"column:entry_price"`
	ExitDate   *time.Time `gorm:"column:exit_date"`
	ExitPrice  float64    `gorm:"column:exit_price"`
	PnL        float64    `gorm:"column:pnl"`
}

func (BacktestTrade) TableName() string {
	return "backtest_trades"
}
