package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEarningRepository struct {
	DB *gorm.DB
}

func NewDefaultEarningRepository(db *gorm.DB) *DefaultEarningRepository {
	return &DefaultEarningRepository{DB: db}
}

func (r *DefaultEarningRepository) AppendEarningRecord(ctx context.Context, record *domain.EarningRecord) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMEarningRecord(record)).Error
}

func (r *DefaultEarningRepository) GetEarningsByAccountID(ctx context.Context, accountID string) ([]*domain.EarningRecord, error) {
	var recordModels []models.EarningRecordModel
	if err := r.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.EarningRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = mappers.ToDomainEarningRecord(&model)
	}
	return records, nil
}

func (r *DefaultEarningRepository) GetEarningByTransactionID(ctx context.Context, transactionID string) (*domain.EarningRecord, error) {
	var record models.EarningRecordModel
	if err := r.DB.WithContext(ctx).First(&record, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEarningRecord(&record), nil
}
