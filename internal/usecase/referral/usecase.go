package referral

import (
	"context"

	"github.com/LavaJover/shvark-referral-service/internal/config"
	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-referral-service/internal/usecase"
	reportdto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/report"
	transactiondto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/transaction"
	"go.uber.org/zap"
)

type DistributionUsecase interface {
	Distribute(ctx context.Context, input *transactiondto.SubmitTransactionInput) (*domain.DistributionResult, error)
	GetReferralReport(ctx context.Context, accountID string) (*reportdto.ReferralReportOutput, error)
	GetEarnings(ctx context.Context, accountID string) ([]*domain.EarningRecord, error)
	GetTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	GetTransactionEarning(ctx context.Context, externalID string) (*domain.EarningRecord, error)
	StartIntakeWorker(ctx context.Context)
}

type DefaultDistributionUsecase struct {
	AccountRepo 	domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	EarningRepo 	domain.EarningRepository
	Push 			domain.PushPort
	Publisher 		*kafka.KafkaPublisher
	Subscriber 		domain.SubscriberPort
	Cache 			usecase.ReferralCodeCache
	EventLog 		logger.DistributionEventLogger
	Metrics 		*metrics.ReferralMetrics
	Policy 			config.RewardPolicy
	IntakeTopic 	string
	IntakeGroup 	string
	CallbackURL 	string
	Logger 			*zap.Logger
}

func NewDefaultDistributionUsecase(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	earningRepo domain.EarningRepository,
	push domain.PushPort,
	publisher *kafka.KafkaPublisher,
	subscriber domain.SubscriberPort,
	cache usecase.ReferralCodeCache,
	eventLog logger.DistributionEventLogger,
	referralMetrics *metrics.ReferralMetrics,
	cfg *config.ReferralConfig,
	log *zap.Logger) *DefaultDistributionUsecase {

	return &DefaultDistributionUsecase{
		AccountRepo: accountRepo,
		TransactionRepo: transactionRepo,
		EarningRepo: earningRepo,
		Push: push,
		Publisher: publisher,
		Subscriber: subscriber,
		Cache: cache,
		EventLog: eventLog,
		Metrics: referralMetrics,
		Policy: cfg.RewardPolicy,
		IntakeTopic: cfg.KafkaService.IntakeTopic,
		IntakeGroup: cfg.KafkaService.IntakeGroup,
		CallbackURL: cfg.Webhook.TransactionCallbackURL,
		Logger: log,
	}
}

func (uc *DefaultDistributionUsecase) resolveByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	if uc.Cache != nil {
		if accountID, ok := uc.Cache.GetAccountID(ctx, code); ok {
			account, err := uc.AccountRepo.GetAccountByID(ctx, accountID)
			if err == nil {
				return account, nil
			}
			uc.Cache.Invalidate(ctx, code)
		}
	}

	account, err := uc.AccountRepo.GetAccountByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if uc.Cache != nil {
		if err := uc.Cache.SetAccountID(ctx, code, account.ID); err != nil {
			uc.Logger.Warn("failed to cache referral code", zap.Error(err))
		}
	}
	return account, nil
}
