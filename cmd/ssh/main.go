package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/spacerunner/internal/config"
	"github.com/tomz197/spacerunner/internal/draw"
	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/loop/client"
	"github.com/tomz197/spacerunner/internal/loop/server"
	"github.com/tomz197/spacerunner/internal/shop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDataDir     = "/app/data"

	defaultShutdownGrace = 15 * time.Second
)

// app holds what every SSH session shares.
type app struct {
	server  *server.Server
	gameCfg *game.Config
	dataDir string // Empty keeps progress in memory only
	logger  *log.Logger
}

func main() {
	// .env may carry the logging settings, so it is read first.
	envErr := config.LoadDotEnv()
	logger, err := config.NewLogger(os.Stderr, "ssh")
	if err != nil {
		logger.Fatal("bad logging settings", "err", err)
	}
	if envErr != nil {
		logger.Fatal("failed to load .env", "err", envErr)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dataDir := config.GetEnv("DATA_DIR", defaultDataDir)
	persist, err := config.GetEnvBool("PERSIST_PROGRESS", true)
	if err != nil {
		logger.Fatal("bad setting", "err", err)
	}
	if !persist {
		dataDir = ""
	}
	maxSessions, err := config.GetEnvInt("SSH_MAX_SESSIONS", 0)
	if err != nil {
		logger.Fatal("bad setting", "err", err)
	}
	shutdownGrace, err := config.GetEnvDuration("SHUTDOWN_GRACE", defaultShutdownGrace)
	if err != nil {
		logger.Fatal("bad setting", "err", err)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"dataDir", dataDir, "maxSessions", maxSessions, "shutdownGrace", shutdownGrace)

	gameCfg, err := loadGameConfig(logger)
	if err != nil {
		logger.Fatal("failed to load game config", "err", err)
	}

	a := &app{
		server:  server.NewServer(server.WithLogger(logger), server.WithMaxClients(maxSessions)),
		gameCfg: gameCfg,
		dataDir: dataDir,
		logger:  logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	a.server.Shutdown(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs a game client for each SSH session.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("remote", sess.RemoteAddr().String())
		logger.Info("New game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		sh, err := a.openShop(sess.User(), logger)
		if err != nil {
			logger.Error("failed to open progress", "err", err)
			fmt.Fprintln(sess, "Error: could not load your progress. Please try again later.")
			return
		}

		renderer := lipgloss.NewRenderer(sess, termenv.WithUnsafe())
		renderer.SetColorProfile(termenv.ANSI256)

		c, err := client.NewClient(a.server, sess, sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Shop:         sh,
			GameConfig:   a.gameCfg,
			Logger:       logger,
			Renderer:     renderer,
		})
		if errors.Is(err, server.ErrServerFull) {
			fmt.Fprintln(sess, "The server is full. Please try again later.")
			return
		}
		if err != nil {
			logger.Error("failed to start client", "err", err)
			return
		}
		if err := c.Run(sess.Context()); err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		next(sess)
	}
}

// openShop loads the progress of user. Each user keeps their own file; two
// sessions of one user share it and the last save wins.
func (a *app) openShop(user string, logger *log.Logger) (*shop.Shop, error) {
	if a.dataDir == "" {
		return shop.Open(shop.NewMemoryStore(), shop.WithLogger(logger))
	}
	return shop.Open(shop.NewFileStore(shop.PlayerFile(a.dataDir, user)), shop.WithLogger(logger))
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

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
