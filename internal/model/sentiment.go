package model

import "time"

// SentimentData is one aggregated sentiment observation for a symbol,
// written by the upstream news/social pipeline.
type SentimentData struct {
	ID            uint      `gorm:"primarykey"`
	Symbol        string    `gorm:"not null;index:idx_sentiment_symbol_ts"`
	Timestamp     time.Time `gorm:"not null;index:idx_sentiment_symbol_ts"`
	CompoundScore float64   `gorm:"not null"`
	PositiveScore float64
	NegativeScore float64
	NeutralScore  float64
	SampleCount   int
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (SentimentData) TableName() string {
	return "sentiment_data"
}
