package referral

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	reportdto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/report"
	"go.uber.org/zap"
)

// GetReferralReport assembles the two-level referral view for an
// account: its direct referrals with per-child earnings and its indirect
// referrals with the intermediate hop.
func (uc *DefaultDistributionUsecase) GetReferralReport(ctx context.Context, accountID string) (*reportdto.ReferralReportOutput, error) {
	account, err := uc.AccountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	directLinks, err := uc.AccountRepo.GetDirectLinks(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get direct links: %w", err)
	}
	indirectLinks, err := uc.AccountRepo.GetIndirectLinks(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get indirect links: %w", err)
	}

	report := &reportdto.ReferralReportOutput{
		AccountID: account.ID,
		Name: account.Name,
		ReferralCode: account.ReferralCode,
		TotalEarnings: account.TotalEarnings.Float64(),
		DirectReferrals: make([]reportdto.DirectReferralEntry, 0, len(directLinks)),
		IndirectReferrals: make([]reportdto.IndirectReferralEntry, 0, len(indirectLinks)),
	}

	for _, link := range directLinks {
		report.DirectReferrals = append(report.DirectReferrals, reportdto.DirectReferralEntry{
			AccountID: link.AccountID,
			Name: uc.lookupName(ctx, link.AccountID),
			DirectEarning: link.DirectEarning.Float64(),
			IndirectEarning: link.IndirectEarning.Float64(),
		})
	}
	for _, link := range indirectLinks {
		report.IndirectReferrals = append(report.IndirectReferrals, reportdto.IndirectReferralEntry{
			AccountID: link.AccountID,
			Name: uc.lookupName(ctx, link.AccountID),
			ViaAccountID: link.ViaAccountID,
			Earning: link.Earning.Float64(),
		})
	}

	return report, nil
}

func (uc *DefaultDistributionUsecase) GetEarnings(ctx context.Context, accountID string) ([]*domain.EarningRecord, error) {
	if _, err := uc.AccountRepo.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return uc.EarningRepo.GetEarningsByAccountID(ctx, accountID)
}

func (uc *DefaultDistributionUsecase) GetTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if _, err := uc.AccountRepo.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return uc.TransactionRepo.GetTransactionsByAccountID(ctx, accountID)
}

// GetTransactionEarning looks up the audit row behind one transaction.
// The caller-facing id is the external one, so resolve the transaction
// first.
func (uc *DefaultDistributionUsecase) GetTransactionEarning(ctx context.Context, externalID string) (*domain.EarningRecord, error) {
	transaction, err := uc.TransactionRepo.GetTransactionByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return uc.EarningRepo.GetEarningByTransactionID(ctx, transaction.ID)
}

func (uc *DefaultDistributionUsecase) lookupName(ctx context.Context, accountID string) string {
	account, err := uc.AccountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		uc.Logger.Warn("referral report: linked account missing", zap.String("account_id", accountID))
		return ""
	}
	return account.Name
}
