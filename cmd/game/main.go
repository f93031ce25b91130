package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/spacerunner/internal/config"
	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/loop/client"
	"github.com/tomz197/spacerunner/internal/loop/server"
	"github.com/tomz197/spacerunner/internal/shop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Stdout is the game screen, so logs only go to LOG_FILE.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, "spacerunner")
	if err != nil {
		return err
	}

	gameCfg, err := loadGameConfig(logger)
	if err != nil {
		return err
	}

	progressPath, err := progressFile()
	if err != nil {
		return err
	}
	sh, err := shop.Open(shop.NewFileStore(progressPath), shop.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open progress: %w", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gs := server.NewServer(server.WithLogger(logger))
	c, err := client.NewClient(gs, os.Stdin, os.Stdout, client.ClientOptions{
		Username:   config.GetEnv("USER", "pilot"),
		Shop:       sh,
		GameConfig: gameCfg,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

// loadGameConfig reads GAME_CONFIG when it is set. Nil means defaults.
func loadGameConfig(logger *log.Logger) (*game.Config, error) {
	path := config.GetEnv("GAME_CONFIG", "")
	if path == "" {
		return nil, nil
	}
	cfg, err := game.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded game config", "path", path)
	return &cfg, nil
}

// progressFile returns SPACERUNNER_PROGRESS, or progress.json in the
// user's config directory.
func progressFile() (string, error) {
	if path := config.GetEnv("SPACERUNNER_PROGRESS", ""); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "spacerunner", "progress.json"), nil
}
