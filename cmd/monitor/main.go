// Command monitor tails the dashboard's MQTT topics and logs each event.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/broker"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := broker.NewMQTT(config.MQTTBroker(), "renewable-ops-monitor-"+uuid.NewString()[:8], log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("mqtt connect")
	}
	defer client.Close()

	handler := func(topic string, payload []byte) {
		ev, err := broker.Decode(topic, payload)
		if err != nil {
			log.Error().Err(err).Msg("decode failed")
			return
		}
		switch {
		case ev.Insight != nil:
			log.Info().Str("type", string(ev.Insight.Category)).Int("confidence", ev.Insight.Confidence).Msg(ev.Insight.Text)
		case ev.Alert != nil:
			log.Info().Str("alert_id", ev.Alert.ID).Str("device", ev.Alert.Device).Bool("resolved", ev.Alert.Resolved).Msg("alert update")
		case ev.Power != nil:
			log.Info().Float64("power_kw", ev.Power.PowerKW).Int64("at", ev.Power.Timestamp).Msg("power")
		}
	}

	if err := client.Subscribe(broker.TopicAll, handler); err != nil {
		log.Fatal().Err(err).Msg("subscribe failed")
	}

	log.Info().Msg("monitor running; Ctrl+C to stop")
	<-ctx.Done()
}
