package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/internal"
	"github.com/hwannow/PartyUp/moderation"
	"github.com/hwannow/PartyUp/projection"
	"github.com/hwannow/PartyUp/repositories"
	"github.com/hwannow/PartyUp/runtime"
	"github.com/hwannow/PartyUp/runtime/workers"
	"github.com/hwannow/PartyUp/services"
	"github.com/hwannow/PartyUp/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the engine lifecycle, and
// centralizes error reporting so that deferred cleanups always execute
// before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB archive)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Moderation
	censored, err := runtime.DefaultCensoredWords()
	if err != nil {
		return fmt.Errorf("loading censored words: %w", err)
	}
	replacement, err := internal.CharacterRune(config.ModerationCharReplacement)
	if err != nil {
		return err
	}
	moderator, err := moderation.NewModerator(censored.Words, replacement, log)
	if err != nil {
		return fmt.Errorf("building moderator: %w", err)
	}
	log.Info("Censored words loaded",
		"words", len(censored.Words), "languages", censored.Languages)

	// 4. Engine, sinks, services
	sup := workers.NewSupervisor(log, config.RestartInterval)
	engine := runtime.NewEngine(log, sup, domain.DefaultCatalog(),
		config.BufferSize, config.SinkTimeout)

	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	activity := projection.NewActivity()
	engine.AddSinks(sink.NewArchiveSink(messageRepository, log), activity)

	partyService := services.NewPartyService(engine.Registry(), log)
	chatService := services.NewChatService(engine.Registry(), &moderator,
		config.RequireMembership, log)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Start the engine and the inspect endpoint. The presentation
	// layer calls the services in-process; there is no wire transport
	// in the core, so the inspect page is the only port this binary
	// opens.
	engine.Start(ctx)
	internal.StartDebugServer(db, config.DebugPort,
		func() map[string]any {
			stats := engine.Stats()
			stats["ArchivedMessages"] = activity.TotalMessages()
			return stats
		},
		func() []domain.Party {
			var parties []domain.Party
			for party := range partyService.ListParties(domain.ListFilter{}) {
				parties = append(parties, party)
			}
			return parties
		},
		chatService.ReadMessages,
	)
	log.Info("PartyUp engine running", "inspect_port", config.DebugPort)

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	// 8. Final Cleanup
	engine.Stop()
	log.Info("Program stopped cleanly")
	return nil
}
