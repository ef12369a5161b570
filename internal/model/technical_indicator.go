package model

import "time"

// TechnicalIndicator is one stored row of computed indicator values. The
// columns mirror what the indicator collaborator produces; nullable values
// are pointers because early bars lack enough history.
type TechnicalIndicator struct {
	ID            uint      `gorm:"primarykey"`
	Symbol        string    `gorm:"not null;index:idx_indicator_symbol_ts"`
	Exchange      string    `gorm:"not null"`
	Timestamp     time.Time `gorm:"not null;index:idx_indicator_symbol_ts"`
	Close         float64   `gorm:"not null"`
	RSI14         *float64  `gorm:"column:rsi_14"`
	MACD          *float64  `gorm:"column:macd"`
	MACDSignal    *float64  `gorm:"column:macd_signal"`
	MACDHistogram *float64  `gorm:"column:macd_histogram"`
	BBUpper       *float64  `gorm:"column:bb_upper"`
	BBLower       *float64  `gorm:"column:bb_lower"`
	SMA20         *float64  `gorm:"column:sma_20"`
	SMA50         *float64  `gorm:"column:sma_50"`
	SMA200        *float64  `gorm:"column:sma_200"`
	Trend         string    `gorm:"column:trend"`
	TrendSlope    *float64  `gorm:"column:trend_slope"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (TechnicalIndicator) TableName() string {
	return "technical_indicators"
}
