package repository

import (
	"context"
	"errors"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"

	"gorm.io/gorm"
)

// SentimentRepository adalah kolaborator sentimen: skor gabungan terakhir
// untuk satu simbol, atau nil bila belum ada data.
type SentimentRepository interface {
	GetSymbolSentiment(ctx context.Context, symbol string) (*dto.SentimentScore, error)
}

type sentimentRepository struct {
	db *gorm.DB
}

func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

func (r *sentimentRepository) GetSymbolSentiment(ctx context.Context, symbol string) (*dto.SentimentScore, error) {
	var row model.SentimentData
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.SentimentScore{CompoundScore: row.CompoundScore}, nil
}
