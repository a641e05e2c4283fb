package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-referral-service/internal/config"
	"github.com/LavaJover/shvark-referral-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/redis"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/ws"
	"github.com/LavaJover/shvark-referral-service/internal/usecase"
	"github.com/LavaJover/shvark-referral-service/internal/usecase/referral"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	zapLogger, err := zap.NewDevelopment()
	if cfg.Env == "prod" {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.ReferralDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.EventsTopic)
	sub := kafka.NewDefaultKafkaSubscriber(brokers)

	// Cache is optional: registration and distribution fall back to
	// direct lookups when redis is unreachable
	var cache usecase.ReferralCodeCache
	redisCache, err := redis.NewReferralCodeCache(cfg)
	if err != nil {
		zapLogger.Warn("redis unavailable, referral code cache disabled", zap.Error(err))
	} else {
		cache = redisCache
	}

	// Init repos
	accountRepo := repository.NewDefaultAccountRepository(db)
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	earningRepo := repository.NewDefaultEarningRepository(db)

	referralMetrics := metrics.NewReferralMetrics()
	eventLog := logger.NewPGDistributionEventLogger(db)
	hub := ws.NewHub(zapLogger)

	// Init usecases
	registrationUsecase := usecase.NewDefaultRegistrationUsecase(
		accountRepo,
		cache,
		referralMetrics,
		zapLogger,
		cfg.RewardPolicy.MaxDirectReferrals,
	)
	distributionUsecase := referral.NewDefaultDistributionUsecase(
		accountRepo,
		transactionRepo,
		earningRepo,
		hub,
		pub,
		sub,
		cache,
		eventLog,
		referralMetrics,
		cfg,
		zapLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go distributionUsecase.StartIntakeWorker(ctx)

	handler := handlers.NewReferralHandler(registrationUsecase, distributionUsecase, hub, zapLogger)

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: handler,
	}

	go func() {
		zapLogger.Info("referral service listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLogger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
