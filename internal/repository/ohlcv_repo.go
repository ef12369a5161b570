package repository

import (
	"context"
	"time"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"

	"gorm.io/gorm"
)

// OHLCVRepository adalah kolaborator data harga: deret PriceBar terurut untuk
// satu simbol dan rentang waktu.
type OHLCVRepository interface {
	GetPriceSeries(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error)
	ListActiveSymbols(ctx context.Context, limit int) ([]string, error)
}

type ohlcvRepository struct {
	db *gorm.DB
}

func NewOHLCVRepository(db *gorm.DB) OHLCVRepository {
	return &ohlcvRepository{db: db}
}

func (r *ohlcvRepository) GetPriceSeries(ctx context.Context, symbol, exchange string, since time.Time) ([]dto.PriceBar, error) {
	var rows []model.OHLCVData
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND exchange = ? AND timestamp >= ?", symbol, exchange, since).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	bars := make([]dto.PriceBar, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, dto.PriceBar{
			Timestamp: row.Timestamp,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			Volume:    row.Volume,
		})
	}
	return bars, nil
}

// ListActiveSymbols mengembalikan simbol dengan data terbaru, dipakai untuk
// memilih kandidat scoring.
func (r *ohlcvRepository) ListActiveSymbols(ctx context.Context, limit int) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&model.OHLCVData{}).
		Select("symbol").
		Group("symbol").
		Order("MAX(timestamp) DESC").
		Limit(limit).
		Scan(&symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
