package referral

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	publisher "github.com/LavaJover/shvark-referral-service/internal/infrastructure/kafka"
	transactiondto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/transaction"
	"go.uber.org/zap"
)

// StartIntakeWorker consumes transaction events from the intake topic
// and runs them through Distribute. Duplicate external ids are expected
// here (at-least-once delivery) and are skipped quietly.
func (uc *DefaultDistributionUsecase) StartIntakeWorker(ctx context.Context) {
	if uc.Subscriber == nil {
		return
	}

	messages, err := uc.Subscriber.Subscribe(uc.IntakeTopic, uc.IntakeGroup)
	if err != nil {
		uc.Logger.Error("failed to subscribe to intake topic",
			zap.String("topic", uc.IntakeTopic),
			zap.Error(err),
		)
		return
	}
	uc.Logger.Info("transaction intake worker started", zap.String("topic", uc.IntakeTopic))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				uc.Logger.Warn("intake channel closed")
				return
			}
			uc.handleIntakeMessage(ctx, msg)
		}
	}
}

func (uc *DefaultDistributionUsecase) handleIntakeMessage(ctx context.Context, msg domain.Message) {
	var event publisher.TransactionIntakeEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		uc.Logger.Error("failed to decode intake event", zap.Error(err))
		return
	}

	_, err := uc.Distribute(ctx, &transactiondto.SubmitTransactionInput{
		AccountID: event.AccountID,
		TransactionID: event.TransactionID,
		Value: event.Value,
		ItemID: event.ItemID,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateTransactionID):
		uc.Logger.Info("intake event already processed", zap.String("transaction_id", event.TransactionID))
	default:
		uc.Logger.Error("failed to process intake event",
			zap.String("transaction_id", event.TransactionID),
			zap.Error(err),
		)
	}
}
