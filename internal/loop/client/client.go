// Package client runs one player's session: it reads input, drives a game
// engine at a fixed frame rate and draws the field and screens to a
// terminal writer.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/spacerunner/internal/draw"
	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/input"
	"github.com/tomz197/spacerunner/internal/loop/config"
	"github.com/tomz197/spacerunner/internal/loop/server"
	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/shop"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	engine       *game.Engine
	hud          *HUD
	shop         *shop.Shop
	scene        *scene
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	styles       styles
	logger       *log.Logger
	termSizeFunc draw.TermSizeFunc
	offsetCol    int
	offsetRow    int
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Shop         *shop.Shop         // Player progress; an in-memory shop when nil
	GameConfig   *game.Config       // Simulation tuning; defaults when nil
	Logger       *log.Logger        // Parent logger; discards when nil
	Renderer     *lipgloss.Renderer // Text styling; detected from the writer when nil
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r io.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	sh := opts.Shop
	if sh == nil {
		var err error
		if sh, err = shop.Open(shop.NewMemoryStore(), shop.WithLogger(logger)); err != nil {
			return nil, fmt.Errorf("open shop: %w", err)
		}
	}

	handle, err := gs.RegisterClient(opts.Username)
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}
	logger = logger.With("user", handle.Username, "session", handle.SessionID)

	hud := &HUD{}
	sc := newScene()
	gameOpts := []game.Option{
		game.WithFactory(object.NewFactory(sc.rng, object.WithVisuals(sc.attach))),
		game.WithRand(sc.rng),
		game.WithSink(hud),
		game.WithWallet(sh),
		game.WithLogger(logger),
		game.WithHighScore(sh.BestScore()),
	}
	if opts.GameConfig != nil {
		gameOpts = append(gameOpts, game.WithConfig(*opts.GameConfig))
	}
	engine, err := game.New(gameOpts...)
	if err != nil {
		gs.UnregisterClient(handle.ID)
		return nil, err
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		engine:       engine,
		hud:          hud,
		shop:         sh,
		scene:        sc,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		styles:       newStyles(renderer),
		logger:       logger,
		termSizeFunc: termSizeFunc,
		offsetCol:    offsetCol,
		offsetRow:    offsetRow,
	}, nil
}

// Run starts the client loop. Blocks until the client quits, goes inactive,
// ctx is cancelled or the server stops.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	// Unregister from server
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		if ctx.Err() != nil {
			break
		}
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle the visible screen
		switch c.state.View {
		case ViewGame:
			c.updateGameView()
		case ViewShop:
			c.updateShopView()
		case ViewShutdown:
			c.updateShutdownView()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	c.logger.Info("session closed", "high_score", c.engine.HighScore(), "coins", c.shop.Coins())
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
		// Nobody is watching, stop the run from ending on its own.
		if c.engine.State() == game.StatePlaying {
			c.engine.TogglePause()
		}
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventNewRecord:
				c.state.toast = fmt.Sprintf("%s set a new record: %d", event.Username, event.Score)
				c.state.toastUntil = time.Now().Add(4 * time.Second)
			case server.EventServerShutdown:
				if c.engine.State() == game.StatePlaying {
					c.engine.TogglePause()
				}
				c.state.View = ViewShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.offsetCol || offsetRow != c.offsetRow {
		draw.ClearScreen(c.writer)
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.ScreenCleared()
	}
	c.offsetCol, c.offsetRow = offsetCol, offsetRow
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateGameView maps keys to engine actions for the current engine state
// and advances the simulation by one tick.
func (c *Client) updateGameView() {
	in := c.state.Input
	e := c.engine

	switch e.State() {
	case game.StateMenu:
		switch {
		case in.Fire || in.Enter:
			input.ResetKeyInput(c.inputStream)
			e.Start()
		case in.Shop:
			c.openShop()
		}
	case game.StatePlaying:
		switch {
		case in.Pause:
			e.TogglePause()
		case in.Fire:
			e.Fire()
		}
	case game.StatePaused:
		switch {
		case in.Pause:
			e.TogglePause()
		case in.Menu:
			e.GoToMenu()
		}
	case game.StateGameOver:
		switch {
		case in.Restart || in.Fire || in.Enter:
			input.ResetKeyInput(c.inputStream)
			e.Restart()
		case in.Menu:
			e.GoToMenu()
		case in.Shop:
			c.openShop()
		}
	}

	e.Tick(game.Controls{Left: in.Left, Right: in.Right, Up: in.Up, Down: in.Down})
	c.reportFinishedRun()
}

// reportFinishedRun publishes a run that just ended to the leaderboard and
// the player's saved progress.
func (c *Client) reportFinishedRun() {
	summary, ok := c.hud.takeFinished()
	if !ok {
		return
	}
	c.server.SubmitScore(c.handle.ID, summary.Score)
	if err := c.shop.RecordScore(summary.Score); err != nil {
		c.logger.Error("failed to save best score", "err", err)
	}
}

func (c *Client) openShop() {
	c.state.View = ViewShop
	c.state.shopMessage = ""
	for i, s := range shop.Catalog {
		if s.ID == c.shop.Equipped().ID {
			c.state.shopSelected = i
		}
	}
}

// updateShopView handles the shop: digits select a ship, enter buys or
// equips it.
func (c *Client) updateShopView() {
	in := c.state.Input
	switch {
	case in.Menu || in.Shop || in.Pause:
		c.state.View = ViewGame
		return
	case in.Number >= 1 && in.Number <= len(shop.Catalog):
		c.state.shopSelected = in.Number - 1
		c.state.shopMessage = ""
	case in.Enter || in.Fire:
		c.state.shopMessage = c.shopAction(shop.Catalog[c.state.shopSelected])
	}
}

// shopAction buys a locked ship or equips an unlocked one and returns the
// message to display.
func (c *Client) shopAction(ship shop.Ship) string {
	if c.shop.IsUnlocked(ship.ID) {
		if err := c.shop.Equip(ship.ID); err != nil {
			c.logger.Error("equip failed", "ship", ship.ID, "err", err)
			return "Could not equip " + ship.Name
		}
		return ship.Name + " equipped"
	}

	err := c.shop.Buy(ship.ID)
	switch {
	case err == nil:
		c.hud.Coins(c.shop.Coins())
		c.logger.Info("ship purchased", "ship", ship.ID, "coins", c.shop.Coins())
		if err := c.shop.Equip(ship.ID); err != nil {
			c.logger.Error("equip failed", "ship", ship.ID, "err", err)
		}
		return "Purchased " + ship.Name
	case errors.Is(err, shop.ErrInsufficientCoins):
		return fmt.Sprintf("Not enough coins: %s costs %d", ship.Name, ship.Price)
	case c.shop.IsUnlocked(ship.ID):
		// Bought, but the progress file could not be written.
		c.hud.Coins(c.shop.Coins())
		c.logger.Error("purchase not saved", "ship", ship.ID, "err", err)
		return "Purchased " + ship.Name + " (not saved)"
	default:
		c.logger.Error("purchase failed", "ship", ship.ID, "err", err)
		return "Purchase failed"
	}
}

// updateShutdownView handles the shutdown screen countdown.
func (c *Client) updateShutdownView() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
