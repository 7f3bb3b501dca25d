package main

import (
	"batepapo/infrastructure/httpapi"
	"batepapo/internal"
	"batepapo/moderation"
	"batepapo/repositories"
	"batepapo/runtime/workers"
	"batepapo/services"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (database cleanup included)
// executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Optional moderation
	var moderator *moderation.Moderator
	if config.CensoredFilepath != "" {
		replacement, err := internal.CharacterRune(config.ModerationCharReplacement)
		if err != nil {
			return err
		}
		words, err := moderation.LoadWords(config.CensoredFilepath)
		if err != nil {
			return fmt.Errorf("loading censored words: %w", err)
		}
		moderator, err = moderation.NewModerator(words, replacement)
		if err != nil {
			return fmt.Errorf("building moderator: %w", err)
		}
	}

	// 4. Services around one exclusive section shared with the sweeper
	var mu sync.Mutex
	participantRepository := repositories.NewParticipantRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)
	registry := services.NewRegistryService(log, participantRepository, messageRepository, &mu)
	messages := services.NewMessageService(log, registry, messageRepository, moderator, &mu)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Presence sweeper under supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewSweeperWorker(log, registry))
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 7. HTTP server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := httpapi.NewServer(log, registry, messages, config.Origins())
	httpServer := &http.Server{Addr: address, Handler: server.Handler()}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
