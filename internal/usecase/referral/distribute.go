package referral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/logger"
	transactiondto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/transaction"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Distribute records a transaction and pays out up to two referral
// levels. Validation failures surface before any write. Once the
// transaction row is committed the call reports success even if a payout
// write fails: the owner's transaction is valid regardless of referral
// payout outcome, so failures past that point are logged and persisted
// to the distribution event log instead of being rolled back.
func (uc *DefaultDistributionUsecase) Distribute(ctx context.Context, input *transactiondto.SubmitTransactionInput) (*domain.DistributionResult, error) {
	started := time.Now()
	value := domain.Money(input.Value)

	if input.Value < uc.Policy.MinTransactionValue {
		uc.recordBelowThreshold()
		return &domain.DistributionResult{BelowThreshold: true}, nil
	}

	account, err := uc.AccountRepo.GetAccountByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	transaction := &domain.Transaction{
		ID: uuid.New().String(),
		ExternalID: input.TransactionID,
		AccountID: account.ID,
		Value: value,
		ItemID: input.ItemID,
		CreatedAt: time.Now(),
	}
	if err := uc.TransactionRepo.CreateTransaction(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransactionID) {
			return nil, domain.ErrDuplicateTransactionID
		}
		// nothing was committed yet, safe to fail the whole call
		return nil, fmt.Errorf("%w: create transaction: %v", domain.ErrStorageUnavailable, err)
	}

	// From here on the transaction is authoritative: no rollback.
	result := &domain.DistributionResult{Transaction: transaction}

	directReferrer := uc.payDirect(ctx, account, transaction, result)
	var indirectReferrer *domain.Account
	if directReferrer != nil && directReferrer.ReferredBy != "" {
		indirectReferrer = uc.payIndirect(ctx, account, directReferrer, transaction, result)
	}

	uc.appendEarningRecord(ctx, account, transaction, directReferrer, indirectReferrer)

	uc.logCompleted(ctx, transaction, directReferrer, indirectReferrer)
	uc.recordDistribution(started, value, len(result.Payouts) > 0)

	uc.Notify(result, account)

	return result, nil
}

// payDirect resolves the level-1 referrer and applies the 5% payout.
// Returns nil when the account was not referred or the code no longer
// resolves.
func (uc *DefaultDistributionUsecase) payDirect(ctx context.Context, account *domain.Account, transaction *domain.Transaction, result *domain.DistributionResult) *domain.Account {
	if account.ReferredBy == "" {
		return nil
	}

	referrer, err := uc.resolveByReferralCode(ctx, account.ReferredBy)
	if err != nil {
		uc.Logger.Warn("direct referrer did not resolve",
			zap.String("account_id", account.ID),
			zap.String("code", account.ReferredBy),
		)
		return nil
	}

	amount := transaction.Value.Percent(uc.Policy.DirectPercent)
	linkFound, err := uc.AccountRepo.ApplyDirectPayout(ctx, referrer.ID, account.ID, amount)
	if err != nil {
		uc.logFailed(ctx, transaction, "direct_payout", err)
		return referrer
	}
	if !linkFound {
		// structurally impossible under the registration invariant,
		// but never worth crashing over
		uc.Logger.Warn("direct link entry missing during payout",
			zap.String("referrer_id", referrer.ID),
			zap.String("account_id", account.ID),
		)
		uc.recordLinkWarning("direct")
	}

	result.Payouts = append(result.Payouts, domain.PayoutEvent{
		RecipientID: referrer.ID,
		Kind: domain.PayoutDirect,
		Amount: amount,
		SourceAccountName: account.Name,
		TransactionValue: transaction.Value,
	})
	uc.recordPayout(string(domain.PayoutDirect), amount)
	return referrer
}

// payIndirect resolves the level-2 referrer and applies the 1% payout.
func (uc *DefaultDistributionUsecase) payIndirect(ctx context.Context, account, directReferrer *domain.Account, transaction *domain.Transaction, result *domain.DistributionResult) *domain.Account {
	grandparent, err := uc.resolveByReferralCode(ctx, directReferrer.ReferredBy)
	if err != nil {
		uc.Logger.Warn("indirect referrer did not resolve",
			zap.String("referrer_id", directReferrer.ID),
			zap.String("code", directReferrer.ReferredBy),
		)
		return nil
	}

	amount := transaction.Value.Percent(uc.Policy.IndirectPercent)
	linkFound, err := uc.AccountRepo.ApplyIndirectPayout(ctx, grandparent.ID, account.ID, directReferrer.ID, amount)
	if err != nil {
		uc.logFailed(ctx, transaction, "indirect_payout", err)
		return grandparent
	}
	if !linkFound {
		uc.Logger.Warn("indirect link entry missing during payout",
			zap.String("grandparent_id", grandparent.ID),
			zap.String("account_id", account.ID),
		)
		uc.recordLinkWarning("indirect")
	}

	result.Payouts = append(result.Payouts, domain.PayoutEvent{
		RecipientID: grandparent.ID,
		Kind: domain.PayoutIndirect,
		Amount: amount,
		SourceAccountName: account.Name,
		TransactionValue: transaction.Value,
	})
	uc.recordPayout(string(domain.PayoutIndirect), amount)
	return grandparent
}

// appendEarningRecord writes the single audit row for this transaction.
// Referrer fields reflect whether the referrer resolved, mirroring the
// payout computation.
func (uc *DefaultDistributionUsecase) appendEarningRecord(ctx context.Context, account *domain.Account, transaction *domain.Transaction, directReferrer, indirectReferrer *domain.Account) {
	record := &domain.EarningRecord{
		ID: uuid.New().String(),
		TransactionID: transaction.ID,
		AccountID: account.ID,
		TransactionValue: transaction.Value,
		CreatedAt: time.Now(),
	}
	if directReferrer != nil {
		record.DirectReferrerID = directReferrer.ID
		record.DirectReferralEarning = transaction.Value.Percent(uc.Policy.DirectPercent)
	}
	if indirectReferrer != nil {
		record.IndirectReferrerID = indirectReferrer.ID
		record.IndirectReferralEarning = transaction.Value.Percent(uc.Policy.IndirectPercent)
	}

	if err := uc.EarningRepo.AppendEarningRecord(ctx, record); err != nil {
		uc.logFailed(ctx, transaction, "earning_record", err)
	}
}

func (uc *DefaultDistributionUsecase) logFailed(ctx context.Context, transaction *domain.Transaction, stage string, err error) {
	uc.Logger.Error("distribution step failed, transaction stays committed",
		zap.String("transaction_id", transaction.ID),
		zap.String("stage", stage),
		zap.Error(err),
	)
	uc.recordError(stage)

	if uc.EventLog == nil {
		return
	}
	logErr := uc.EventLog.LogDistributionFailed(ctx, logger.DistributionFailedEvent{
		TransactionID: transaction.ID,
		AccountID: transaction.AccountID,
		Stage: stage,
		Reason: err.Error(),
		Value: transaction.Value.Float64(),
		Timestamp: time.Now(),
	})
	if logErr != nil {
		uc.Logger.Error("failed to persist distribution failure", zap.Error(logErr))
	}
}

func (uc *DefaultDistributionUsecase) logCompleted(ctx context.Context, transaction *domain.Transaction, directReferrer, indirectReferrer *domain.Account) {
	if uc.EventLog == nil {
		return
	}
	event := logger.DistributionCompletedEvent{
		TransactionID: transaction.ID,
		AccountID: transaction.AccountID,
		Value: transaction.Value.Float64(),
		Timestamp: time.Now(),
	}
	if directReferrer != nil {
		event.DirectPayout = transaction.Value.Percent(uc.Policy.DirectPercent).Float64()
	}
	if indirectReferrer != nil {
		event.IndirectPayout = transaction.Value.Percent(uc.Policy.IndirectPercent).Float64()
	}
	if err := uc.EventLog.LogDistributionCompleted(ctx, event); err != nil {
		uc.Logger.Error("failed to persist distribution event", zap.Error(err))
	}
}
