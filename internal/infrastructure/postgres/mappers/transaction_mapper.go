package mappers

import (
	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID: model.ID,
		ExternalID: model.ExternalID,
		AccountID: model.AccountID,
		Value: domain.Money(model.Value),
		ItemID: model.ItemID,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID: transaction.ID,
		ExternalID: transaction.ExternalID,
		AccountID: transaction.AccountID,
		Value: transaction.Value.Float64(),
		ItemID: transaction.ItemID,
		CreatedAt: transaction.CreatedAt,
	}
}
