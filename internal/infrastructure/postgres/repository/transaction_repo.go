package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	transactionModel := mappers.ToGORMTransaction(transaction)
	if err := r.DB.WithContext(ctx).Create(transactionModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateTransactionID
		}
		return err
	}
	return nil
}

func (r *DefaultTransactionRepository) GetTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	var transaction models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&transaction, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&transaction), nil
}

func (r *DefaultTransactionRepository) GetTransactionsByAccountID(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&model)
	}
	return transactions, nil
}
