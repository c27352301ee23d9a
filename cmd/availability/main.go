package main

import (
	"github.com/joho/godotenv"

	"courtops/internal/availability/handler"
	"courtops/internal/availability/service"
	bookingsrepository "courtops/internal/bookings/repository"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/internal/health"
	"courtops/pkg/app"
	"courtops/pkg/config"
)

const ServiceName = "availability"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Availability service")

	api := initAPI(cfg)
	healthHandler := health.NewHandler(cfg.Client.Mongo, cfg.Log)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, api, healthHandler)
	serverApp.Run()
}

func initAPI(cfg *config.Config) *handler.API {
	clubRepo := clubsrepository.NewMongoClubRepository(cfg)
	courtRepo := clubsrepository.NewMongoCourtRepository(cfg)
	ruleRepo := clubsrepository.NewMongoPriceRuleRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)

	availabilityService := service.NewAvailabilityService(clubRepo, courtRepo, ruleRepo, bookingRepo, cfg)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return handler.NewAPI(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
}
