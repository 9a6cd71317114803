// notifier consumes booking confirmations from Kafka and hands each one to
// a delivery channel.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"boxoffice/internal/notifications"
	"boxoffice/internal/shared/config"
	"boxoffice/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	workers := pflag.IntP("workers", "w", 2, "consumer group members to run")
	fromStart := pflag.Bool("from-start", true, "read the topic from the oldest offset when the group has none")
	pflag.Parse()

	cfg := config.Load()
	log := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(log)

	ccfg := notifications.DefaultConsumerConfig()
	ccfg.Brokers = cfg.Kafka.Brokers
	ccfg.GroupID = cfg.Kafka.GroupID
	ccfg.Topics = []string{cfg.Kafka.BookingTopic}
	ccfg.OffsetOldest = *fromStart

	consumer, err := notifications.NewConsumer(ccfg, notifications.LogDeliverer{Log: log}, log)
	if err != nil {
		log.Error("Failed to start notifier", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("Shutting down notifier...")
		if err := consumer.Close(); err != nil {
			log.Error("Error closing consumer", slog.Any("error", err))
		}
	}()

	if err := consumer.Run(ctx, *workers); err != nil {
		log.Error("Notifier stopped", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("Notifier exited gracefully")
}
