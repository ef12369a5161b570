package repository

import (
	"context"
	"encoding/json"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompositeSignalRepository menyimpan riwayat sinyal komposit yang sudah
// dihasilkan, untuk audit dan tampilan dashboard.
type CompositeSignalRepository interface {
	SaveBatch(ctx context.Context, signals []dto.CompositeSignal) error
	GetRecent(ctx context.Context, limit int) ([]model.CompositeSignalRecord, error)
}

type compositeSignalRepository struct {
	db *gorm.DB
}

func NewCompositeSignalRepository(db *gorm.DB) CompositeSignalRepository {
	return &compositeSignalRepository{db: db}
}

func (r *compositeSignalRepository) SaveBatch(ctx context.Context, signals []dto.CompositeSignal) error {
	if len(signals) == 0 {
		return nil
	}

	records := make([]model.CompositeSignalRecord, 0, len(signals))
	for _, sig := range signals {
		scores, err := json.Marshal(sig.Scores)
		if err != nil {
			return err
		}
		records = append(records, model.CompositeSignalRecord{
			Symbol:          sig.Symbol,
			Signal:          string(sig.Signal),
			Confidence:      sig.Confidence,
			ExpectedReturn:  sig.ExpectedReturn,
			RiskLevel:       string(sig.RiskLevel),
			ComponentScores: datatypes.JSON(scores),
			Timestamp:       sig.Timestamp,
		})
	}

	return r.db.WithContext(ctx).CreateInBatches(records, 100).Error
}

func (r *compositeSignalRepository) GetRecent(ctx context.Context, limit int) ([]model.CompositeSignalRecord, error) {
	var records []model.CompositeSignalRecord
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
