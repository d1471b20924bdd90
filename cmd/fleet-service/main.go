package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/M0steK/taxifleet-manager/internal/auth"
	"github.com/M0steK/taxifleet-manager/internal/config"
	"github.com/M0steK/taxifleet-manager/internal/db"
	httphandler "github.com/M0steK/taxifleet-manager/internal/http"
	"github.com/M0steK/taxifleet-manager/internal/http/middleware"
	"github.com/M0steK/taxifleet-manager/internal/logger"
	"github.com/M0steK/taxifleet-manager/internal/repository"
	"github.com/M0steK/taxifleet-manager/internal/service"
)

const pickupCleanupInterval = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	loc, err := cfg.Location()
	if err != nil {
		appLogger.Fatal().Err(err).Str("timezone", cfg.Schedule.Timezone).Msg("failed to load schedule timezone")
	}

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)
	pickupRepo := repository.NewPickupRepository(database)

	vehicleService := service.NewVehicleService(vehicleRepo, loc)
	userService := service.NewUserService(userRepo, auth.NewBcryptHasher())
	scheduleService := service.NewScheduleService(scheduleRepo, userRepo, vehicleRepo, loc)
	driverService := service.NewDriverService(database, userRepo, vehicleRepo, scheduleRepo, pickupRepo, loc, rand.Intn, appLogger)
	pickupService := service.NewPickupService(pickupRepo, userRepo, loc, appLogger)
	dashboardService := service.NewDashboardService(userRepo, vehicleRepo, scheduleRepo, pickupRepo, loc)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(
		vehicleService,
		userService,
		scheduleService,
		driverService,
		pickupService,
		dashboardService,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	go func() {
		ticker := time.NewTicker(pickupCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := pickupService.CleanupOld(context.Background()); err != nil {
				appLogger.Error().Err(err).Msg("pickup cleanup failed")
			}
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
