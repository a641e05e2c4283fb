package referral

import (
	"fmt"
	"time"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	publisher "github.com/LavaJover/shvark-referral-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/notifier"
	"go.uber.org/zap"
)

const (
	EventTransactionCreated 	 = "transaction_created"
	EventEarningsUpdate 		 = "earnings_update"
	EventTransactionNotification = "transaction_notification"
)

// Notify fans the distribution result out to the push channel, the
// kafka events topic and the optional webhook. Everything here is
// best-effort: a missing push channel or a broker error never reaches
// the caller.
func (uc *DefaultDistributionUsecase) Notify(result *domain.DistributionResult, origin *domain.Account) {
	if result == nil || result.Transaction == nil {
		return
	}
	transaction := result.Transaction

	uc.pushToChannel(result, origin)

	if uc.Publisher != nil {
		go func(transaction domain.Transaction, payouts []domain.PayoutEvent) {
			event := publisher.TransactionEvent{
				TransactionID: transaction.ExternalID,
				AccountID: transaction.AccountID,
				Value: transaction.Value.Float64(),
				ItemID: transaction.ItemID,
				Distributed: len(payouts) > 0,
			}
			if err := uc.Publisher.PublishTransaction(event); err != nil {
				uc.Logger.Error("failed to publish kafka TransactionEvent", zap.Error(err))
			}
			for _, payout := range payouts {
				earningEvent := publisher.EarningEvent{
					TransactionID: transaction.ExternalID,
					RecipientID: payout.RecipientID,
					Kind: string(payout.Kind),
					Amount: payout.Amount.Float64(),
					FromAccount: payout.SourceAccountName,
				}
				if err := uc.Publisher.PublishEarning(earningEvent); err != nil {
					uc.Logger.Error("failed to publish kafka EarningEvent", zap.Error(err))
				}
			}
		}(*transaction, result.Payouts)
	}

	if uc.CallbackURL != "" {
		notifier.SendCallback(uc.CallbackURL, notifier.TransactionCallbackPayload{
			TransactionID: transaction.ExternalID,
			AccountID: transaction.AccountID,
			Value: transaction.Value.Float64(),
			ItemID: transaction.ItemID,
			Distributed: len(result.Payouts) > 0,
			CreatedAt: transaction.CreatedAt,
		})
	}
}

func (uc *DefaultDistributionUsecase) pushToChannel(result *domain.DistributionResult, origin *domain.Account) {
	if uc.Push == nil {
		return
	}
	transaction := result.Transaction

	err := uc.Push.PublishToAccount(origin.ID, EventTransactionCreated, map[string]any{
		"type":    "success",
		"message": "Transaction created successfully!",
		"transaction": map[string]any{
			"id":            transaction.ID,
			"transactionId": transaction.ExternalID,
			"value":         transaction.Value.Float64(),
			"itemId":        transaction.ItemID,
			"createdAt":     transaction.CreatedAt,
		},
	})
	if err != nil {
		uc.Logger.Error("failed to push transaction_created", zap.Error(err))
	} else {
		uc.recordPushEvent(EventTransactionCreated)
	}

	for _, payout := range result.Payouts {
		message := fmt.Sprintf("You earned ₹%s from %s's transaction of ₹%v",
			payout.Amount.Display(), payout.SourceAccountName, payout.TransactionValue.Float64())
		err := uc.Push.PublishToAccount(payout.RecipientID, EventEarningsUpdate, map[string]any{
			"type":    "earnings",
			"message": message,
			"earnings": map[string]any{
				"type":             string(payout.Kind),
				"amount":           payout.Amount.Float64(),
				"fromUser":         payout.SourceAccountName,
				"transactionValue": payout.TransactionValue.Float64(),
				"timestamp":        time.Now(),
			},
		})
		if err != nil {
			uc.Logger.Error("failed to push earnings_update",
				zap.String("recipient_id", payout.RecipientID),
				zap.Error(err),
			)
			continue
		}
		uc.recordPushEvent(EventEarningsUpdate)
	}

	err = uc.Push.PublishToAll(EventTransactionNotification, map[string]any{
		"type":    "info",
		"message": fmt.Sprintf("New transaction of ₹%v processed", transaction.Value.Float64()),
		"transaction": map[string]any{
			"value":     transaction.Value.Float64(),
			"timestamp": time.Now(),
		},
	})
	if err != nil {
		uc.Logger.Error("failed to push transaction_notification", zap.Error(err))
	} else {
		uc.recordPushEvent(EventTransactionNotification)
	}
}
