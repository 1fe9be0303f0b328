package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-timetable/internal/api/router"
	"school-timetable/internal/config"
	"school-timetable/internal/infrastructure/database"
	"school-timetable/internal/infrastructure/repository"
	"school-timetable/internal/service"
	"school-timetable/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	port string
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the timetable HTTP server",
	Long: `Start the HTTP server with the timetable routes and middleware.
The server exposes teacher roster CRUD, schedule slot CRUD, the
class-schedule partial-update endpoint with conflict detection, and
grade-section configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port for the server to listen on")
}

func startServer() {
	cfg := config.Get()

	// Override port if flag is provided
	if port != "8080" {
		cfg.Server.Port = port
	}

	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.Username,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run database migrations: %v", err)
	}

	if err := database.HealthCheck(db); err != nil {
		logger.Fatal("Database health check failed: %v", err)
	}

	if cfg.Timetable.SeedOnStart {
		seedService := service.NewSeedService(
			repository.NewTeacherRepository(db),
			repository.NewGradeSectionRepository(db),
		)
		if err := seedService.Run(context.Background()); err != nil {
			logger.Fatal("Failed to seed default data: %v", err)
		}
	}

	components := router.NewTimetableRouter(db)
	if err := components.SyncQueue.Start(); err != nil {
		logger.Fatal("Failed to start cache sync queue: %v", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        components.Router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Info("Starting timetable server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	components.SyncQueue.Stop()

	// Give server 5 seconds to finish current requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	if components.Cache != nil {
		if err := components.Cache.Close(); err != nil {
			logger.Warn("Failed to close cache connection: %v", err)
		}
	}

	logger.Info("Server exited")
}
