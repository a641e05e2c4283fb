package referral

import (
	"time"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
)

func (uc *DefaultDistributionUsecase) recordBelowThreshold() {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordBelowThreshold()
}

func (uc *DefaultDistributionUsecase) recordDistribution(started time.Time, value domain.Money, distributed bool) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordTransactionCreated(distributed, value.Float64())
	uc.Metrics.RecordDistributionDuration(time.Since(started).Seconds())
}

func (uc *DefaultDistributionUsecase) recordPayout(kind string, amount domain.Money) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordPayout(kind, amount.Float64())
}

func (uc *DefaultDistributionUsecase) recordError(stage string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordDistributionError(stage)
}

func (uc *DefaultDistributionUsecase) recordLinkWarning(kind string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordLinkIntegrityWarning(kind)
}

func (uc *DefaultDistributionUsecase) recordPushEvent(event string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordPushEvent(event)
}
