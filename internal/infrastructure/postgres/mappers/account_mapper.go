package mappers

import (
	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
)

func ToDomainAccount(model *models.AccountModel) *domain.Account {
	return &domain.Account{
		ID: model.ID,
		Email: model.Email,
		Name: model.Name,
		Password: model.Password,
		ReferralCode: model.ReferralCode,
		ReferredBy: model.ReferredBy,
		TotalEarnings: domain.Money(model.TotalEarnings),
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMAccount(account *domain.Account) *models.AccountModel {
	return &models.AccountModel{
		ID: account.ID,
		Email: account.Email,
		Name: account.Name,
		Password: account.Password,
		ReferralCode: account.ReferralCode,
		ReferredBy: account.ReferredBy,
		TotalEarnings: account.TotalEarnings.Float64(),
		CreatedAt: account.CreatedAt,
	}
}

func ToDomainDirectLink(model *models.DirectLinkModel) domain.DirectLink {
	return domain.DirectLink{
		AccountID: model.AccountID,
		DirectEarning: domain.Money(model.DirectEarning),
		IndirectEarning: domain.Money(model.IndirectEarning),
	}
}

func ToGORMDirectLink(referrerID string, link domain.DirectLink) *models.DirectLinkModel {
	return &models.DirectLinkModel{
		ReferrerID: referrerID,
		AccountID: link.AccountID,
		DirectEarning: link.DirectEarning.Float64(),
		IndirectEarning: link.IndirectEarning.Float64(),
	}
}

func ToDomainIndirectLink(model *models.IndirectLinkModel) domain.IndirectLink {
	return domain.IndirectLink{
		AccountID: model.AccountID,
		ViaAccountID: model.ViaAccountID,
		Earning: domain.Money(model.Earning),
	}
}

func ToGORMIndirectLink(referrerID string, link domain.IndirectLink) *models.IndirectLinkModel {
	return &models.IndirectLinkModel{
		ReferrerID: referrerID,
		AccountID: link.AccountID,
		ViaAccountID: link.ViaAccountID,
		Earning: link.Earning.Float64(),
	}
}
