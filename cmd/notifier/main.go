// Command notifier drains the notification topic and hands each event to the
// log gateway. An SMS or email provider plugs in as another notifier.Notifier.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tourismrelay/config"
	"tourismrelay/infras/kafka"
	"tourismrelay/infras/notifier"
	"tourismrelay/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitFromConfig(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("KAFKA_ENABLE is false, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.Topic).Str("group", cfg.Kafka.ConsumerGroup).Msg("Notifier consuming.")

	if err := client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, notifier.Handler(notifier.NewLog())); err != nil {
		log.Error().Err(err).Msg("Notifier stopped")
	}
}
