package repository

import (
	"context"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"

	"gorm.io/gorm"
)

// IndicatorRepository adalah kolaborator indikator teknikal. Dua snapshot
// terakhir cukup untuk deteksi crossover pada pembangkitan sinyal diskrit.
type IndicatorRepository interface {
	GetLatestIndicators(ctx context.Context, symbol string, limit int) ([]dto.IndicatorSnapshot, error)
}

type indicatorRepository struct {
	db *gorm.DB
}

func NewIndicatorRepository(db *gorm.DB) IndicatorRepository {
	return &indicatorRepository{db: db}
}

// GetLatestIndicators mengembalikan snapshot indikator terbaru, terurut naik
// berdasarkan timestamp (elemen terakhir adalah yang terbaru).
func (r *indicatorRepository) GetLatestIndicators(ctx context.Context, symbol string, limit int) ([]dto.IndicatorSnapshot, error) {
	var rows []model.TechnicalIndicator
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// Balik ke urutan kronologis.
	snapshots := make([]dto.IndicatorSnapshot, len(rows))
	for i, row := range rows {
		snapshots[len(rows)-1-i] = dto.IndicatorSnapshot{
			Symbol:        row.Symbol,
			Timestamp:     row.Timestamp,
			Close:         row.Close,
			RSI14:         row.RSI14,
			MACD:          row.MACD,
			MACDSignal:    row.MACDSignal,
			MACDHistogram: row.MACDHistogram,
			BBUpper:       row.BBUpper,
			BBLower:       row.BBLower,
			SMA20:         row.SMA20,
			SMA50:         row.SMA50,
			SMA200:        row.SMA200,
			Trend:         row.Trend,
			TrendSlope:    row.TrendSlope,
		}
	}
	return snapshots, nil
}
