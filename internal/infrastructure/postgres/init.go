package postgres

import (
	"log"

	"github.com/LavaJover/shvark-referral-service/internal/config"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.ReferralConfig) *gorm.DB {
	dsn := cfg.ReferralDB.Dsn
	// TranslateError maps unique violations to gorm.ErrDuplicatedKey,
	// which the repositories rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.AccountModel{},
		&models.DirectLinkModel{},
		&models.IndirectLinkModel{},
		&models.TransactionModel{},
		&models.EarningRecordModel{},
	)

	return db
}
