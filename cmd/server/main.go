package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"fleet/internal/app"
	"fleet/internal/config"
	"fleet/internal/handler"
	fleetredis "fleet/internal/redis"
	"fleet/internal/repository/postgres"
	"fleet/internal/service"
)

func main() {
	cfg := config.Load()

	var nrApp *newrelic.Application
	if cfg.NewRelicEnabled {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Printf("new relic init failed, continuing without: %v", err)
		}
	}

	db, err := app.NewDatabase(cfg, nrApp)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	lockStore := fleetredis.NewLockStore(redisClient)

	requestRepo := postgres.NewRequestRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	browseRepo := postgres.NewBrowseRepository(db)
	txFactory := postgres.NewTxFactory(db)

	seed := cfg.PickerSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	picker := service.NewSeededPicker(seed)

	assigner := service.NewApproverAssigner(employeeRepo, picker)
	requestService := service.NewRequestService(requestRepo, employeeRepo, assigner, txFactory, lockStore)
	allocationService := service.NewAllocationService(requestRepo, vehicleRepo, employeeRepo, txFactory, lockStore, picker)
	tripService := service.NewTripService(requestRepo, vehicleRepo, txFactory)
	fleetService := service.NewFleetService(vehicleRepo)

	router := app.NewRouter(app.RouterDeps{
		RequestHandler:  handler.NewRequestHandler(requestService, allocationService),
		TripHandler:     handler.NewTripHandler(tripService),
		VehicleHandler:  handler.NewVehicleHandler(fleetService, vehicleRepo),
		EmployeeHandler: handler.NewEmployeeHandler(employeeRepo),
		AdminHandler:    handler.NewAdminHandler(browseRepo),
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%d", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}
}
