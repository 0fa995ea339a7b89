package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/auth"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/broker"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/database"
	httpHandlers "github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/http"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/live"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/repository"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/service"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/state"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if lvl, err := zerolog.ParseLevel(config.LogLevel()); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	devices, err := seed.Devices()
	if err != nil {
		log.Fatal().Err(err).Msg("seed fleet invalid")
	}
	fleet, err := state.NewFleet(devices)
	if err != nil {
		log.Fatal().Err(err).Msg("fleet init failed")
	}

	insights := live.NewInsightGenerator(seed.Insights(),
		live.WithInterval(config.InsightInterval()),
		live.WithWindow(config.InsightWindow()),
		live.WithLogger(log.Logger))

	deps := service.Deps{
		Fleet:    fleet,
		Insights: insights,
		Power:    live.NewPowerMeter(config.PowerInterval(), nil),
		Log:      log.Logger,
	}

	if config.UseCloudServices() {
		awsCfg, err := cloud.LoadConfig(ctx, config.AWSRegion())
		if err != nil {
			log.Fatal().Err(err).Msg("aws config failed")
		}
		deps.Archiver = cloud.NewS3Client(awsCfg, config.S3Bucket())
		if arn := config.SNSTopicArn(); arn != "" {
			deps.Notifier = cloud.NewSNSClient(awsCfg, arn, log.Logger)
		}
		log.Info().Str("region", config.AWSRegion()).Str("bucket", config.S3Bucket()).Msg("cloud services enabled")
	}

	if config.MQTTEnabled() {
		pub, err := broker.NewMQTT(config.MQTTBroker(), "renewable-ops-"+uuid.NewString()[:8], log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect")
		}
		defer pub.Close()
		deps.Publisher = pub
	}

	store, closeStore, err := sessionStore(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("backend", config.SessionBackend()).Msg("session store failed")
	}
	defer closeStore()

	authn := auth.New(auth.Options{
		Mode:              config.AuthMode(),
		AdminUser:         config.AdminUser(),
		AdminPasswordHash: config.AdminPasswordHash(),
		Store:             store,
		Log:               log.Logger,
	})

	svcs := service.New(ctx, deps)
	svcs.Live.Start()
	defer svcs.Live.Stop()

	app := fiber.New(fiber.Config{ErrorHandler: httpHandlers.ErrorHandler(log.Logger)})
	httpHandlers.Register(app, svcs, authn, log.Logger)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Str("auth", authn.Mode()).Msg("api listening")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server exit")
	}
}

// sessionStore opens the configured backend. The returned func releases it.
func sessionStore(ctx context.Context) (repository.SessionStore, func(), error) {
	ttl := config.SessionTTL()
	switch config.SessionBackend() {
	case config.SessionPostgres:
		db, err := database.Connect(ctx, config.DBDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewPostgresStore(db, ttl), func() { db.Close() }, nil
	case config.SessionRedis:
		rs, err := repository.NewRedisStore(ctx, config.RedisAddr(), ttl)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { rs.Close() }, nil
	}
	return repository.NewMemoryStore(ttl), func() {}, nil
}
