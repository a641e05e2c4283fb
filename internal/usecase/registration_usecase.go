package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/metrics"
	registrationdto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/registration"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

const (
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referralCodeLength 	 = 8
	codeGenMaxAttempts 	 = 5
)

type RegistrationUsecase interface {
	Register(ctx context.Context, input *registrationdto.RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email string) (*domain.Account, error)
}

type DefaultRegistrationUsecase struct {
	AccountRepo 	   domain.AccountRepository
	Cache 			   ReferralCodeCache
	Metrics 		   *metrics.ReferralMetrics
	Logger 			   *zap.Logger
	MaxDirectReferrals int
}

func NewDefaultRegistrationUsecase(
	accountRepo domain.AccountRepository,
	cache ReferralCodeCache,
	referralMetrics *metrics.ReferralMetrics,
	logger *zap.Logger,
	maxDirectReferrals int) *DefaultRegistrationUsecase {

	return &DefaultRegistrationUsecase{
		AccountRepo: accountRepo,
		Cache: cache,
		Metrics: referralMetrics,
		Logger: logger,
		MaxDirectReferrals: maxDirectReferrals,
	}
}

func (uc *DefaultRegistrationUsecase) Register(ctx context.Context, input *registrationdto.RegisterInput) (*domain.Account, error) {
	if _, err := uc.AccountRepo.GetAccountByEmail(ctx, input.Email); err == nil {
		uc.recordError("duplicate_email")
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	var referrer *domain.Account
	if input.ReferredBy != "" {
		found, err := uc.resolveByReferralCode(ctx, input.ReferredBy)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				uc.recordError("invalid_referral_code")
				return nil, domain.ErrInvalidReferralCode
			}
			return nil, fmt.Errorf("resolve referrer: %w", err)
		}
		referrer = found

		count, err := uc.AccountRepo.CountDirectLinks(ctx, referrer.ID)
		if err != nil {
			return nil, fmt.Errorf("count direct links: %w", err)
		}
		if count >= int64(uc.MaxDirectReferrals) {
			uc.recordError("referral_limit_exceeded")
			return nil, domain.ErrReferralLimitExceeded
		}
	}

	code, err := uc.generateReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID: uuid.New().String(),
		Email: input.Email,
		Name: input.Name,
		Password: input.Password,
		ReferralCode: code,
		ReferredBy: input.ReferredBy,
		TotalEarnings: 0,
		CreatedAt: time.Now(),
	}

	if err := uc.AccountRepo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			uc.recordError("duplicate_email")
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: create account: %v", domain.ErrStorageUnavailable, err)
	}

	// Referral list updates are deliberately applied after the account
	// write without a surrounding transaction. A failure here leaves a
	// registered account with a missing link row, which distribution
	// reports as an integrity warning instead of crashing.
	if referrer != nil {
		uc.attachToReferrer(ctx, account, referrer)
	}

	uc.recordRegistration(referrer != nil)
	return account, nil
}

// Login is a plain lookup by email. Session issuance and password
// verification live in the outer API layer, not here.
func (uc *DefaultRegistrationUsecase) Login(ctx context.Context, email string) (*domain.Account, error) {
	return uc.AccountRepo.GetAccountByEmail(ctx, email)
}

func (uc *DefaultRegistrationUsecase) attachToReferrer(ctx context.Context, account, referrer *domain.Account) {
	if err := uc.AccountRepo.AddDirectLink(ctx, referrer.ID, domain.DirectLink{AccountID: account.ID}); err != nil {
		uc.Logger.Error("failed to append direct link",
			zap.String("referrer_id", referrer.ID),
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
		return
	}

	if referrer.ReferredBy == "" {
		return
	}

	// Grandparent lookup is tolerant: a stale code is skipped silently,
	// matching the registration contract.
	grandparent, err := uc.resolveByReferralCode(ctx, referrer.ReferredBy)
	if err != nil {
		uc.Logger.Warn("grandparent referral code did not resolve, skipping indirect link",
			zap.String("referrer_id", referrer.ID),
			zap.String("code", referrer.ReferredBy),
		)
		return
	}

	link := domain.IndirectLink{AccountID: account.ID, ViaAccountID: referrer.ID}
	if err := uc.AccountRepo.AddIndirectLink(ctx, grandparent.ID, link); err != nil {
		uc.Logger.Error("failed to append indirect link",
			zap.String("grandparent_id", grandparent.ID),
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
}

func (uc *DefaultRegistrationUsecase) resolveByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	if uc.Cache != nil {
		if accountID, ok := uc.Cache.GetAccountID(ctx, code); ok {
			account, err := uc.AccountRepo.GetAccountByID(ctx, accountID)
			if err == nil {
				return account, nil
			}
			// stale cache entry, fall through to storage
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

func (uc *DefaultRegistrationUsecase) generateReferralCode(ctx context.Context) (string, error) {
	codeGenerator, err := nanoid.CustomASCII(referralCodeAlphabet, referralCodeLength)
	if err != nil {
		return "", err
	}

	// the code space is large enough that collisions are near impossible,
	// but the unique index is authoritative so retry a few times anyway
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		code := codeGenerator()
		_, err := uc.AccountRepo.GetAccountByReferralCode(ctx, code)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
	}
	return "", fmt.Errorf("failed to generate unique referral code after %d attempts", codeGenMaxAttempts)
}

func (uc *DefaultRegistrationUsecase) recordRegistration(referred bool) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordRegistration(referred)
}

func (uc *DefaultRegistrationUsecase) recordError(reason string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordRegistrationError(reason)
}
