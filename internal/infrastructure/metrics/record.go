package metrics

import "strconv"

func (m *ReferralMetrics) RecordRegistration(referred bool) {
	m.RegistrationsTotal.WithLabelValues(strconv.FormatBool(referred)).Inc()
}

func (m *ReferralMetrics) RecordRegistrationError(reason string) {
	m.RegistrationErrorsTotal.WithLabelValues(reason).Inc()
}

func (m *ReferralMetrics) RecordTransactionCreated(distributed bool, amount float64) {
	label := strconv.FormatBool(distributed)
	m.TransactionsCreatedTotal.WithLabelValues(label).Inc()
	m.TransactionsCreatedAmountTotal.WithLabelValues(label).Add(amount)
}

func (m *ReferralMetrics) RecordBelowThreshold() {
	m.TransactionsBelowThresholdTotal.Inc()
}

func (m *ReferralMetrics) RecordPayout(kind string, amount float64) {
	m.PayoutsTotal.WithLabelValues(kind).Inc()
	m.PayoutsAmountTotal.WithLabelValues(kind).Add(amount)
}

func (m *ReferralMetrics) RecordDistributionDuration(seconds float64) {
	m.DistributionDuration.Observe(seconds)
}

func (m *ReferralMetrics) RecordPushEvent(event string) {
	m.PushEventsTotal.WithLabelValues(event).Inc()
}

func (m *ReferralMetrics) RecordDistributionError(stage string) {
	m.DistributionErrorsTotal.WithLabelValues(stage).Inc()
}

func (m *ReferralMetrics) RecordLinkIntegrityWarning(kind string) {
	m.LinkIntegrityWarningsTotal.WithLabelValues(kind).Inc()
}
