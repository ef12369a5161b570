package model

import (
	"time"

	"gorm.io/datatypes"
)

// CompositeSignalRecord is the stored history of generated composite signals.
// ComponentScores keeps the per-source breakdown as JSONB.
type CompositeSignalRecord struct {
	ID              uint           `gorm:"primarykey"`
	Symbol          string         `gorm:"not null;index:idx_composite_symbol_ts"`
	Signal          string         `gorm:"not null"`
	Confidence      float64        `gorm:"not null"`
	ExpectedReturn  float64        `gorm:"not null"`
	RiskLevel       string         `gorm:"not null"`
	ComponentScores datatypes.JSON `gorm:"type:jsonb"`
	Timestamp       time.Time      `gorm:"not null;index:idx_composite_symbol_ts"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (CompositeSignalRecord) TableName() string {
	return "composite_signals"
}
