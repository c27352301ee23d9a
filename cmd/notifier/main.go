package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"

	"courtops/internal/bookings/repository"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/internal/health"
	"courtops/internal/notifier/handler"
	"courtops/internal/notifier/service"
	"courtops/pkg/app"
	"courtops/pkg/client"
	"courtops/pkg/config"
	"courtops/pkg/kafka"
	kafka_config "courtops/pkg/kafka/config"
	kafka_middleware "courtops/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Notifier service")

	waitingRepo := repository.NewMongoWaitingListRepository(cfg)
	clubRepo := clubsrepository.NewMongoClubRepository(cfg)
	availabilityClient := client.NewAvailabilityClient(cfg.AvailabilityBaseURL)

	notifierService := service.NewNotifierService(waitingRepo, clubRepo, availabilityClient, cfg)

	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		cfg.KafkaBookingTopic,
		cfg.KafkaConsumerGroup,
		cfg.KafkaBookingTopic+".dlq",
		notifierService.HandleMessage,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware())
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Kafka consumer stopped", "error", err)
		}
	}()

	healthHandler := health.NewHandler(cfg.Client.Mongo, cfg.Log)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewStatsHandler(consumer, cfg.Log), healthHandler)
	serverApp.AddShutdownHook(func() {
		cancelConsumer()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
	})
	serverApp.Run()
}
