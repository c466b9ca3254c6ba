package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/thisistanvirjoy/university-club-election/cliparse"
	"github.com/thisistanvirjoy/university-club-election/db"
	"github.com/thisistanvirjoy/university-club-election/handlers"
	"github.com/thisistanvirjoy/university-club-election/middleware"
	"github.com/thisistanvirjoy/university-club-election/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect, verify, and create schema
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "error", err, "database_type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "database_type", cfg.DatabaseType)

	// Load the saved election or seed a new one
	store := db.NewStore(dbConn)
	svc, err := handlers.LoadElection(context.Background(), store, cfg)
	if err != nil {
		slog.Error("failed to load election", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(svc, store, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Every mutation is saved as it happens; this catches anything in flight
	if err := handlers.SaveElection(context.Background(), svc, store); err != nil {
		slog.Error("final save failed", "error", err)
	}
}
