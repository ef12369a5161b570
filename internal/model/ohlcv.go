package model

import "time"

// OHLCVData is one stored price bar for a symbol on an exchange.
type OHLCVData struct {
	ID        uint      `gorm:"primarykey"`
	Symbol    string    `gorm:"not null;index:idx_ohlcv_symbol_exchange_ts"`
	Exchange  string    `gorm:"not null;index:idx_ohlcv_symbol_exchange_ts"`
	Timestamp time.Time `gorm:"not null;index:idx_ohlcv_symbol_exchange_ts"`
	Open      float64   `gorm:"not null"`
	High      float64   `gorm:"not null"`
	Low       float64   `gorm:"not null"`
	Close     float64   `gorm:"not null"`
	Volume    float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (OHLCVData) TableName() string {
	return "ohlcv_data"
}
