package main

import (
	"context"

	"github.com/joho/godotenv"

	"courtops/internal/clubs/handler"
	"courtops/internal/clubs/repository"
	"courtops/internal/clubs/service"
	"courtops/internal/clubs/validator"
	"courtops/internal/health"
	"courtops/pkg/app"
	"courtops/pkg/config"
)

const ServiceName = "clubs"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Clubs service")

	api := initAPI(cfg)
	healthHandler := health.NewHandler(cfg.Client.Mongo, cfg.Log)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, api, healthHandler)
	serverApp.Run()
}

func initAPI(cfg *config.Config) *handler.API {
	clubValidator := validator.NewClubValidator(cfg.Log)
	clubRepo := repository.NewMongoClubRepository(cfg)
	courtRepo := repository.NewMongoCourtRepository(cfg)
	ruleRepo := repository.NewMongoPriceRuleRepository(cfg)

	if err := clubRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure club indexes", "error", err)
	}

	clubService := service.NewClubService(clubRepo, ruleRepo, clubValidator, cfg)
	courtService := service.NewCourtService(courtRepo, clubRepo, clubValidator, cfg)
	ruleService := service.NewPriceRuleService(ruleRepo, clubRepo, clubValidator, cfg)

	cfg.Log.Info("Clubs service initialized", "database", cfg.MongoDatabaseName)
	return handler.NewAPI(
		handler.NewClubHandler(clubService, cfg.Log),
		handler.NewCourtHandler(courtService, cfg.Log),
		handler.NewPriceRuleHandler(ruleService, cfg.Log),
	)
}
