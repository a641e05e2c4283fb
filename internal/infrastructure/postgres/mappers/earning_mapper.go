package mappers

import (
	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
)

func ToDomainEarningRecord(model *models.EarningRecordModel) *domain.EarningRecord {
	record := &domain.EarningRecord{
		ID: model.ID,
		TransactionID: model.TransactionID,
		AccountID: model.AccountID,
		TransactionValue: domain.Money(model.TransactionValue),
		DirectReferralEarning: domain.Money(model.DirectReferralEarning),
		IndirectReferralEarning: domain.Money(model.IndirectReferralEarning),
		CreatedAt: model.CreatedAt,
	}
	if model.DirectReferrerID != nil {
		record.DirectReferrerID = *model.DirectReferrerID
	}
	if model.IndirectReferrerID != nil {
		record.IndirectReferrerID = *model.IndirectReferrerID
	}
	return record
}

func ToGORMEarningRecord(record *domain.EarningRecord) *models.EarningRecordModel {
	model := &models.EarningRecordModel{
		ID: record.ID,
		TransactionID: record.TransactionID,
		AccountID: record.AccountID,
		TransactionValue: record.TransactionValue.Float64(),
		DirectReferralEarning: record.DirectReferralEarning.Float64(),
		IndirectReferralEarning: record.IndirectReferralEarning.Float64(),
		CreatedAt: record.CreatedAt,
	}
	// absent referrers stay NULL in storage
	if record.DirectReferrerID != "" {
		id := record.DirectReferrerID
		model.DirectReferrerID = &id
	}
	if record.IndirectReferrerID != "" {
		id := record.IndirectReferrerID
		model.IndirectReferrerID = &id
	}
	return model
}
