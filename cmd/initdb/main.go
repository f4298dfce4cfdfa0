package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"panel-rekordow/internal/auth"
	"panel-rekordow/internal/config"
	"panel-rekordow/internal/database"
	"panel-rekordow/internal/logging"

	"github.com/spf13/pflag"
)

func main() {
	hashPassword := pflag.String("hash-password", "", "print a bcrypt hash for auth.admin_password_hash and exit")
	pflag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Nie można wygenerować hasha: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}
	logging.Init(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.NewDynamoClient(ctx, cfg.DynamoDB)
	if err != nil {
		slog.Error("failed to build dynamodb client", "error", err)
		os.Exit(1)
	}

	store, err := database.NewStore(client, database.Tables{
		Users: cfg.DynamoDB.UsersTable,
		Files: cfg.DynamoDB.FilesTable,
	})
	if err != nil {
		slog.Error("failed to build record store", "error", err)
		os.Exit(1)
	}

	if err := store.EnsureTables(ctx); err != nil {
		slog.Error("failed to create tables", "endpoint", cfg.DynamoDB.Endpoint, "error", err)
		os.Exit(1)
	}
}
