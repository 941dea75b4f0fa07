package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hibiken/asynq"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/config"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/coupon"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/obs"
	storemongo "github.com/usrinivasan240-cpu/shareplate-api/internal/store/mongo"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "shareplate")
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := storemongo.New(storemongo.Config{
		URI:      cfg.MongoURL,
		Database: cfg.MongoDatabase,
		Timeout:  cfg.MongoConnectTO,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("close mongodb")
		}
	}()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	asynqRedis := asynq.RedisClientOpt{
		Addr:     redisOpts.Addr,
		Username: redisOpts.Username,
		Password: redisOpts.Password,
		DB:       redisOpts.DB,
	}

	sweeper := tasks.CouponSweeper{
		Store:  coupon.NewMongoStore(storage.Database()),
		Logger: logger,
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCouponExpirySweep, sweeper.HandleCouponExpirySweep)

	srv := asynq.NewServer(asynqRedis, asynq.Config{
		Concurrency: 2,
		Logger:      asynqLogger{logger: logger},
	})

	scheduler := asynq.NewScheduler(asynqRedis, &asynq.SchedulerOpts{
		Logger: asynqLogger{logger: logger},
	})
	every := cfg.CouponSweepEvery
	if _, err := scheduler.Register(fmt.Sprintf("@every %s", every), tasks.NewCouponExpirySweepTask()); err != nil {
		logger.Fatal().Err(err).Msg("register coupon sweep schedule")
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	go func() {
		logger.Info().Dur("sweep_every", every).Msg("worker starting")
		if err := srv.Run(mux); err != nil {
			logger.Fatal().Err(err).Msg("worker stopped with error")
		}
	}()

	<-ctx.Done()
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info().Msg("worker shutdown complete")
}

// asynqLogger adapts zerolog to asynq's logging interface.
type asynqLogger struct {
	logger zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
