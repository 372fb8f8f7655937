package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hverma/stock-tracker-backend/internal/api"
	"github.com/hverma/stock-tracker-backend/internal/config"
	"github.com/hverma/stock-tracker-backend/internal/database"
	"github.com/hverma/stock-tracker-backend/internal/netcheck"
	"github.com/hverma/stock-tracker-backend/internal/rates"
	"github.com/hverma/stock-tracker-backend/internal/repository"
	"github.com/hverma/stock-tracker-backend/internal/scheduler"
	"github.com/hverma/stock-tracker-backend/internal/service"
	"github.com/hverma/stock-tracker-backend/internal/yahoo"
)

// refreshJob reconciles all accounts; registered with the scheduler.
type refreshJob struct {
	valuationService *service.ValuationService
}

func (j *refreshJob) Name() string { return "daily-refresh" }

func (j *refreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return j.valuationService.RefreshAllAccounts(ctx)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	totalRepo := repository.NewTotalRepository(db)

	// Create gateways
	quoteClient := yahoo.NewFinanceClient()
	rateClient := rates.NewClient(cfg.Valuation.HomeCurrency)
	checker := netcheck.NewChecker("google.com", "https://"+yahoo.DefaultHost)

	// Create services
	systemService := service.NewSystemService(db)
	holdingService := service.NewHoldingService(holdingRepo)
	valuationService, err := service.NewValuationService(
		holdingRepo,
		snapshotRepo,
		totalRepo,
		quoteClient,
		rateClient,
		cfg.Valuation,
	)
	if err != nil {
		log.Fatalf("Failed to create valuation service: %v", err)
	}

	// Create router
	router := api.NewRouter(systemService, holdingService, valuationService, checker, cfg)

	// Schedule the daily refresh
	sched := scheduler.New()
	if err := sched.AddJob(cfg.Valuation.RefreshSchedule, &refreshJob{valuationService: valuationService}); err != nil {
		log.Fatalf("Failed to schedule refresh job: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
