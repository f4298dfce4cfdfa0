// @title           Panel rekordów API
// @version         1.0
// @description     Admin CRUD service for user and file records.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panel-rekordow/internal/api"
	"panel-rekordow/internal/config"
	"panel-rekordow/internal/database"
	"panel-rekordow/internal/logging"
	"panel-rekordow/internal/storage"
	"panel-rekordow/internal/websocket"

	"golang.org/x/sync/errgroup"

	_ "panel-rekordow/docs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	logging.Init(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client, err := database.NewDynamoClient(ctx, cfg.DynamoDB)
	if err != nil {
		return err
	}

	store, err := database.NewStore(client, database.Tables{
		Users: cfg.DynamoDB.UsersTable,
		Files: cfg.DynamoDB.FilesTable,
	}, database.WithScanPageSize(cfg.DynamoDB.ScanPageSize))
	if err != nil {
		return err
	}

	if cfg.DynamoDB.AutoCreateTables {
		if err := store.EnsureTables(ctx); err != nil {
			return err
		}
	}

	if err := store.Ping(ctx); err != nil {
		slog.Error("record tables are not reachable, run initdb first", "endpoint", cfg.DynamoDB.Endpoint, "error", err)
		return err
	}
	slog.Info("connected to record store", "endpoint", cfg.DynamoDB.Endpoint)

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	slog.Info("blob storage ready", "driver", cfg.Storage.Driver)

	wsHub := websocket.NewHub()
	server := api.NewServer(cfg, store, blobs, wsHub)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return wsHub.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("starting http server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
