package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReferralMetrics содержит все метрики реферального сервиса
type ReferralMetrics struct {
	// Регистрации
	RegistrationsTotal prometheus.CounterVec
	RegistrationErrorsTotal prometheus.CounterVec

	// Транзакции
	TransactionsCreatedTotal prometheus.CounterVec
	TransactionsCreatedAmountTotal prometheus.CounterVec
	TransactionsBelowThresholdTotal prometheus.Counter

	// Выплаты по уровням
	PayoutsTotal prometheus.CounterVec
	PayoutsAmountTotal prometheus.CounterVec

	// Время обработки распределения
	DistributionDuration prometheus.Histogram

	// Push-уведомления
	PushEventsTotal prometheus.CounterVec

	// Ошибки
	DistributionErrorsTotal prometheus.CounterVec
	LinkIntegrityWarningsTotal prometheus.CounterVec
}

// NewReferralMetrics создает новый экземпляр метрик
func NewReferralMetrics() *ReferralMetrics {
	return &ReferralMetrics{
		RegistrationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_registrations_total",
				Help: "Общее количество регистраций",
			},
			[]string{"referred"},
		),

		RegistrationErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_registration_errors_total",
				Help: "Ошибки регистрации по причинам",
			},
			[]string{"reason"},
		),

		TransactionsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_transactions_created_total",
				Help: "Общее количество созданных транзакций",
			},
			[]string{"distributed"},
		),

		TransactionsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_transactions_created_amount_total",
				Help: "Общая сумма созданных транзакций",
			},
			[]string{"distributed"},
		),

		TransactionsBelowThresholdTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "referral_transactions_below_threshold_total",
				Help: "Транзакции ниже минимального порога",
			},
		),

		PayoutsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_payouts_total",
				Help: "Количество реферальных выплат по уровням",
			},
			[]string{"kind"},
		),

		PayoutsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_payouts_amount_total",
				Help: "Сумма реферальных выплат по уровням",
			},
			[]string{"kind"},
		),

		DistributionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "referral_distribution_duration_seconds",
				Help:    "Время распределения наград в секундах",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		PushEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_push_events_total",
				Help: "Количество отправленных push-событий",
			},
			[]string{"event"},
		),

		DistributionErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_distribution_errors_total",
				Help: "Ошибки распределения по стадиям",
			},
			[]string{"stage"},
		),

		LinkIntegrityWarningsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_link_integrity_warnings_total",
				Help: "Отсутствующие записи реферальных связей при инкременте",
			},
			[]string{"kind"},
		),
	}
}
