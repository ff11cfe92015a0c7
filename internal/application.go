package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-bot/transport/discord"
	"github.com/rocketscienceinc/tictactoe-bot/transport/rest"
)

type factRepo interface {
	GetRandom(ctx context.Context, character string) (string, error)
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	facts, closeFacts, err := initFacts(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeFacts()

	gameRegistry := repository.NewGameRegistry()
	gameUseCase := usecase.NewGameManager(logger, gameRegistry)
	factService := service.NewFactService(logger, facts)

	handler := discord.NewHandler(logger, conf.Discord.Prefix, gameUseCase, factService)
	bot, err := discord.NewBot(logger, conf.Discord.Token, handler)
	if err != nil {
		return fmt.Errorf("could not create discord bot: %w", err)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, gameUseCase); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Discord bot
	botErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting Discord bot", "prefix", conf.Discord.Prefix)
		if botErr := bot.Start(ctx); botErr != nil {
			log.Error("Discord bot error", "error", botErr)
			botErrCh <- botErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-botErrCh:
		return fmt.Errorf("discord bot error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initFacts - picks the facts backend. The redis backend is seeded from the facts
// directory on every start.
func initFacts(ctx context.Context, log *slog.Logger, conf *config.Config) (factRepo, func(), error) {
	fileRepo := repository.NewFactFileRepository(conf.Facts.Dir)

	dirErr := service.CheckDir(conf.Facts.Dir)
	if dirErr != nil {
		log.Warn("facts directory is not available, ~fact will not know anyone", "error", dirErr)
	}

	if conf.Facts.Backend != config.FactsBackendRedis {
		return fileRepo, func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	redisRepo := repository.NewFactRepository(redisStorage.Connection)

	if dirErr == nil {
		imported, err := service.ImportFacts(ctx, fileRepo, redisRepo)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("could not import facts: %w", err)
		}

		log.Info("facts imported", "characters", imported)
	}

	return redisRepo, closeFn, nil
}
