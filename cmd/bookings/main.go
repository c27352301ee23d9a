package main

import (
	"context"

	"github.com/joho/godotenv"

	"courtops/internal/bookings/handler"
	"courtops/internal/bookings/repository"
	"courtops/internal/bookings/service"
	"courtops/internal/bookings/validator"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/internal/health"
	"courtops/pkg/app"
	"courtops/pkg/config"
	"courtops/pkg/kafka"
	kafka_config "courtops/pkg/kafka/config"
	kafka_middleware "courtops/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer, err := kafka.NewProducer(kafka_config.Load(), cfg.KafkaBookingTopic, "")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware())
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	api, sweeper := initAPI(cfg, producer)
	healthHandler := health.NewHandler(cfg.Client.Mongo, cfg.Log)

	if err := sweeper.Start(); err != nil {
		cfg.Log.Fatal("Failed to start sweeper", "error", err)
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, api, healthHandler)
	serverApp.AddShutdownHook(sweeper.Stop)
	serverApp.AddShutdownHook(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})
	serverApp.Run()
}

func initAPI(cfg *config.Config, producer *kafka.Producer) (*handler.API, *service.Sweeper) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)

	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	waitingRepo := repository.NewMongoWaitingListRepository(cfg)
	clubRepo := clubsrepository.NewMongoClubRepository(cfg)
	courtRepo := clubsrepository.NewMongoCourtRepository(cfg)
	ruleRepo := clubsrepository.NewMongoPriceRuleRepository(cfg)

	if err := lockRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure slot lock indexes", "error", err)
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		clubRepo,
		courtRepo,
		ruleRepo,
		bookingValidator,
		producer,
		cfg,
	)
	waitingService := service.NewWaitingListService(waitingRepo, clubRepo, bookingValidator, cfg)
	sweeper := service.NewSweeper(bookingService, cfg)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	api := handler.NewAPI(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewWaitingListHandler(waitingService, cfg.Log),
	)
	return api, sweeper
}
