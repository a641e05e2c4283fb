package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DistributionCompletedEvent and DistributionFailedEvent are persisted
// so that partially applied distributions (transaction committed, payout
// write failed) can be audited later. Nothing is rolled back.

type DistributionCompletedEvent struct {
	ID 				uint 	`gorm:"primaryKey"`
	TransactionID 	string
	AccountID 		string
	Value 			float64
	DirectPayout 	float64
	IndirectPayout 	float64
	Timestamp 		time.Time
}

type DistributionFailedEvent struct {
	ID 				uint 	`gorm:"primaryKey"`
	TransactionID 	string
	AccountID 		string
	Stage 			string
	Reason 			string
	Value 			float64
	Timestamp 		time.Time
}

type DistributionEventLogger interface {
	LogDistributionCompleted(ctx context.Context, event DistributionCompletedEvent) error
	LogDistributionFailed(ctx context.Context, event DistributionFailedEvent) error
}

type PGDistributionEventLogger struct {
	db *gorm.DB
}

func NewPGDistributionEventLogger(db *gorm.DB) *PGDistributionEventLogger {
	db.AutoMigrate(&DistributionCompletedEvent{}, &DistributionFailedEvent{})
	return &PGDistributionEventLogger{db: db}
}

func (l *PGDistributionEventLogger) LogDistributionCompleted(ctx context.Context, event DistributionCompletedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGDistributionEventLogger) LogDistributionFailed(ctx context.Context, event DistributionFailedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
