package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/client"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/feed"
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

	api := client.New(config.APIURL(), config.FeedToken(), config.FeedRole())
	s := feed.New(api, config.FeedPollInterval(), log.Logger)
	s.Start(ctx)

	srv := &http.Server{
		Addr:              config.FeedAddr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("api", config.APIURL()).Msg("feed listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("feed server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down feed")
	s.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("feed shutdown failed")
	}
}
