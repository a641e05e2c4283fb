package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAccountRepository struct {
	DB *gorm.DB
}

func NewDefaultAccountRepository(db *gorm.DB) *DefaultAccountRepository {
	return &DefaultAccountRepository{DB: db}
}

func (r *DefaultAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	accountModel := mappers.ToGORMAccount(account)
	if err := r.DB.WithContext(ctx).Create(accountModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *DefaultAccountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var account models.AccountModel
	if err := r.DB.WithContext(ctx).First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAccount(&account), nil
}

func (r *DefaultAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account models.AccountModel
	if err := r.DB.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAccount(&account), nil
}

func (r *DefaultAccountRepository) GetAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	var account models.AccountModel
	if err := r.DB.WithContext(ctx).First(&account, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAccount(&account), nil
}

func (r *DefaultAccountRepository) GetDirectLinks(ctx context.Context, accountID string) ([]domain.DirectLink, error) {
	var linkModels []models.DirectLinkModel
	if err := r.DB.WithContext(ctx).
		Where("referrer_id = ?", accountID).
		Order("created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]domain.DirectLink, len(linkModels))
	for i, model := range linkModels {
		links[i] = mappers.ToDomainDirectLink(&model)
	}
	return links, nil
}

func (r *DefaultAccountRepository) GetIndirectLinks(ctx context.Context, accountID string) ([]domain.IndirectLink, error) {
	var linkModels []models.IndirectLinkModel
	if err := r.DB.WithContext(ctx).
		Where("referrer_id = ?", accountID).
		Order("created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]domain.IndirectLink, len(linkModels))
	for i, model := range linkModels {
		links[i] = mappers.ToDomainIndirectLink(&model)
	}
	return links, nil
}

func (r *DefaultAccountRepository) CountDirectLinks(ctx context.Context, accountID string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.DirectLinkModel{}).
		Where("referrer_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DefaultAccountRepository) AddDirectLink(ctx context.Context, referrerID string, link domain.DirectLink) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMDirectLink(referrerID, link)).Error
}

func (r *DefaultAccountRepository) AddIndirectLink(ctx context.Context, referrerID string, link domain.IndirectLink) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMIndirectLink(referrerID, link)).Error
}

// ApplyDirectPayout issues delta updates so concurrent payouts to the
// same referrer serialize at the storage layer instead of racing through
// read-modify-write.
func (r *DefaultAccountRepository) ApplyDirectPayout(ctx context.Context, referrerID, childID string, amount domain.Money) (bool, error) {
	linkFound := true
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DirectLinkModel{}).
			Where("referrer_id = ? AND account_id = ?", referrerID, childID).
			Update("direct_earning", gorm.Expr("direct_earning + ?", amount.Float64()))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			linkFound = false
		}

		return tx.Model(&models.AccountModel{}).
			Where("id = ?", referrerID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", amount.Float64())).Error
	})
	if err != nil {
		return false, fmt.Errorf("apply direct payout: %w", err)
	}
	return linkFound, nil
}

// ApplyIndirectPayout touches the grandparent's IndirectLink for the
// originating account, the DirectLink keyed by the intermediate referrer
// and the aggregate total, all in one storage transaction.
func (r *DefaultAccountRepository) ApplyIndirectPayout(ctx context.Context, referrerID, childID, viaID string, amount domain.Money) (bool, error) {
	linkFound := true
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.IndirectLinkModel{}).
			Where("referrer_id = ? AND account_id = ?", referrerID, childID).
			Update("earning", gorm.Expr("earning + ?", amount.Float64()))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			linkFound = false
		}

		res = tx.Model(&models.DirectLinkModel{}).
			Where("referrer_id = ? AND account_id = ?", referrerID, viaID).
			Update("indirect_earning", gorm.Expr("indirect_earning + ?", amount.Float64()))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			linkFound = false
		}

		return tx.Model(&models.AccountModel{}).
			Where("id = ?", referrerID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", amount.Float64())).Error
	})
	if err != nil {
		return false, fmt.Errorf("apply indirect payout: %w", err)
	}
	return linkFound, nil
}
