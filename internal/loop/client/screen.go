package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/loop/config"
	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/shop"
)

const repoURL = "https://github.com/tomz197/spacerunner"

// styles holds the text styles of one session. They are bound to the
// session's renderer so color support follows the remote terminal.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	key      lipgloss.Style
	good     lipgloss.Style
	warn     lipgloss.Style
	danger   lipgloss.Style
	coin     lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("117")).Italic(true),
		text:     r.NewStyle().Foreground(lipgloss.Color("252")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("244")),
		key:      r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		good:     r.NewStyle().Foreground(lipgloss.Color("46")),
		warn:     r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		danger:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		coin:     r.NewStyle().Foreground(lipgloss.Color("220")),
		selected: r.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("51")),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	key := screenKey{view: c.state.View, state: c.engine.State(), inactive: c.state.isInactive}
	if key != c.state.prevScreen || c.state.firstFrame {
		c.chunkWriter.ClearScreen()
		c.canvas.ScreenCleared()
		c.state.prevScreen = key
		c.state.firstFrame = false
	}

	c.canvas.Clear()
	showShip := !c.engine.Invulnerable() || shouldRenderBlink(time.Now(), config.PlayerBlinkFrequency)
	c.scene.draw(c.canvas, c.engine.World(), modelFor(c.shop.Equipped().ID), showShip)

	// Render changed canvas cells, then put text on top
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch {
	case c.state.View == ViewShutdown:
		c.drawShutdownScreen(centerX, centerY)
		return
	case c.state.isInactive:
		c.drawInactivityScreen(centerX, centerY)
		return
	case c.state.View == ViewShop:
		c.drawShopScreen(centerX, centerY)
		return
	}

	switch c.engine.State() {
	case game.StateMenu:
		c.drawMenuScreen(centerX, centerY, termHeight)
	case game.StatePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case game.StatePaused:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawPauseScreen(centerX, centerY)
	case game.StateGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// writeText writes s at a 1-based canvas position and marks the covered
// cells so the canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// writeCentered writes a possibly multi-line block centered on centerX,
// starting at row. Returns the number of rows used.
func (c *Client) writeCentered(centerX, row int, block string) int {
	col := max(centerX-lipgloss.Width(block)/2, 1)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		c.writeText(col, row+i, line)
	}
	return len(lines)
}

// blinkOn toggles a prompt on and off.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// controlLine formats a dotted "key . . . action" line of fixed width.
func controlLine(key, action string) string {
	const width = 26
	gap := max(width-len(key)-len(action)-2, 1)
	dots := strings.Repeat(". ", gap/2+1)[:gap]
	return key + " " + dots + " " + action
}

// ASCII art title (figlet "small" font)
var titleArt = []string{
	"  ___ ___  _   ___ ___   ___ _   _ _  _ _  _ ___ ___ ",
	" / __| _ \\/_\\ / __| __| | _ \\ | | | \\| | \\| | __| _ \\ ",
	" \\__ \\  _/ _ \\ (__| _|  |   / |_| | .` | .` | _||   / ",
	" |___/_|/_/ \\_\\___|___| |_|_\\\\___/|_|\\_|_|\\_|___|_|_\\ ",
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawMenuScreen draws the title screen.
func (c *Client) drawMenuScreen(centerX, centerY, termHeight int) {
	st := c.styles
	row := max(centerY-11, 1)

	row += c.writeCentered(centerX, row, st.title.Render(strings.Join(titleArt, "\n"))) + 1
	row += c.writeCentered(centerX, row, st.subtitle.Render("~ Endless space runner over SSH ~")) + 1

	stats := fmt.Sprintf("%s %d   %s %d   %s %s",
		st.dim.Render("Best:"), c.hud.highScore,
		st.dim.Render("Coins:"), c.hud.coins,
		st.dim.Render("Ship:"), c.shop.Equipped().Name)
	row += c.writeCentered(centerX, row, stats) + 1

	row += c.writeCentered(centerX, row, st.text.Bold(true).Render("Controls"))
	controls := []string{
		controlLine("WASD / arrows", "Steer"),
		controlLine("SPACE", "Fire"),
		controlLine("P / ESC", "Pause"),
		controlLine("B", "Shop"),
		controlLine("Q", "Quit"),
	}
	row += c.writeCentered(centerX, row, st.text.Render(strings.Join(controls, "\n"))) + 1

	// Blinking start prompt
	if blinkOn() {
		c.writeCentered(centerX, row, st.key.Render(">>  Press SPACE to Start  <<"))
	}
	row += 2

	// GitHub link (OSC 8 clickable hyperlink)
	ghLabel := "github.com/tomz197/spacerunner"
	ghLine := fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", repoURL, st.dim.Render(ghLabel))
	c.writeText(max(centerX-len(ghLabel)/2, 1), row, ghLine)
	row += 2

	board := c.leaderboard()
	if row+lipgloss.Height(board) <= termHeight {
		c.writeCentered(centerX, row, board)
	}
}

// leaderboard renders the server's top scores as a panel.
func (c *Client) leaderboard() string {
	st := c.styles
	snap := c.server.GetSnapshot()

	lines := []string{st.title.Render("Top pilots")}
	if len(snap.TopScores) == 0 {
		lines = append(lines, st.dim.Render("No runs yet"))
	}
	for i, e := range snap.TopScores {
		name := e.Username
		if name == c.handle.Username {
			name = st.good.Render(name)
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1,
			lipgloss.PlaceHorizontal(config.MaxUsernameLength, lipgloss.Left, name),
			st.coin.Render(fmt.Sprintf("%6d", e.Score))))
	}
	lines = append(lines, st.dim.Render(fmt.Sprintf("Players online: %d", snap.Players)))
	return st.panel.Render(strings.Join(lines, "\n"))
}

// powerUpLabel is the HUD name of a power-up kind.
func powerUpLabel(k object.PowerUpKind) string {
	return strings.ToUpper(strings.ReplaceAll(k.String(), "_", " "))
}

// drawPlayingHUD draws the in-game HUD.
// Text cells are marked dirty, so shrinking values need no padding.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	st := c.styles
	h := c.hud

	c.writeText(2, 1, fmt.Sprintf("%s %d", st.dim.Render("Score:"), h.score))
	c.writeText(18, 1, fmt.Sprintf("%s %d", st.dim.Render("Best:"), h.highScore))

	hearts := st.danger.Render(strings.Repeat("♥", max(h.lives, 0)))
	livesText := st.dim.Render("Lives: ") + hearts
	c.writeText(termWidth-lipgloss.Width(livesText)-1, 1, livesText)

	// Active power-ups with remaining seconds
	var parts []string
	for _, k := range h.powerUps {
		secs := int(math.Ceil(float64(c.engine.Effects().Remaining(k)) / config.ClientTargetFPS))
		ink := fmt.Sprint(powerUpInks[k])
		parts = append(parts, st.text.Foreground(lipgloss.Color(ink)).Render(
			fmt.Sprintf("%s %ds", powerUpLabel(k), secs)))
	}
	if len(parts) > 0 {
		c.writeText(2, 2, strings.Join(parts, "  "))
	}

	if c.state.toast != "" && time.Now().Before(c.state.toastUntil) {
		c.writeCentered(termWidth/2, 3, st.warn.Render(c.state.toast))
	}

	c.writeText(2, termHeight, fmt.Sprintf("%s %.2f", st.dim.Render("Speed:"), c.engine.Speed()))
	coins := fmt.Sprintf("%s %s", st.dim.Render("Coins:"), st.coin.Render(fmt.Sprint(h.coins)))
	c.writeText(termWidth-lipgloss.Width(coins)-1, termHeight, coins)
}

// drawPauseScreen draws the pause panel over the frozen field.
func (c *Client) drawPauseScreen(centerX, centerY int) {
	st := c.styles
	body := strings.Join([]string{
		st.title.Render("PAUSED"),
		"",
		st.key.Render("P") + st.text.Render("  resume"),
		st.key.Render("M") + st.text.Render("  main menu"),
		st.key.Render("Q") + st.text.Render("  quit"),
	}, "\n")
	panel := st.panel.Render(body)
	c.writeCentered(centerX, centerY-lipgloss.Height(panel)/2, panel)
}

// drawGameOverScreen draws the run summary.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	st := c.styles
	row := max(centerY-8, 1)
	row += c.writeCentered(centerX, row, st.danger.Render(strings.Join(gameOverArt, "\n"))) + 1

	if summary, ok := c.hud.LastRun(); ok {
		best := fmt.Sprint(summary.HighScore)
		if summary.Score > 0 && summary.Score == summary.HighScore {
			best += "  " + st.warn.Render("NEW BEST!")
		}
		lines := []string{
			fmt.Sprintf("%s %d", st.dim.Render("Score:       "), summary.Score),
			fmt.Sprintf("%s %s", st.dim.Render("High score:  "), best),
			fmt.Sprintf("%s %s", st.dim.Render("Coins earned:"), st.coin.Render(fmt.Sprintf("+%d", summary.CoinsEarned))),
			fmt.Sprintf("%s %s", st.dim.Render("Coins:       "), st.coin.Render(fmt.Sprint(summary.Coins))),
		}
		row += c.writeCentered(centerX, row, st.panel.Render(strings.Join(lines, "\n"))) + 1
	}

	if blinkOn() {
		c.writeCentered(centerX, row, st.key.Render(">>  Press R to Restart  <<"))
	}
	row += 2
	c.writeCentered(centerX, row, st.dim.Render("M  menu    B  shop    Q  quit"))
}

// drawShopScreen draws the ship catalog.
func (c *Client) drawShopScreen(centerX, centerY int) {
	st := c.styles
	row := max(centerY-9, 1)

	row += c.writeCentered(centerX, row, st.title.Render("SHIP SHOP")) + 1
	row += c.writeCentered(centerX, row, fmt.Sprintf("%s %s", st.dim.Render("Coins:"), st.coin.Render(fmt.Sprint(c.shop.Coins())))) + 1

	equipped := c.shop.Equipped().ID
	var lines []string
	for i, s := range shop.Catalog {
		var status string
		switch {
		case s.ID == equipped:
			status = st.good.Render("EQUIPPED")
		case c.shop.IsUnlocked(s.ID):
			status = st.text.Render("OWNED")
		case c.shop.CanBuy(s.ID):
			status = st.coin.Render(fmt.Sprintf("%d coins", s.Price))
		default:
			status = st.danger.Render(fmt.Sprintf("%d coins", s.Price))
		}
		name := fmt.Sprintf("%d. [%s] %-22s", i+1, s.Icon, s.Name)
		if i == c.state.shopSelected {
			name = st.selected.Render(name)
		}
		lines = append(lines, name+"  "+status)
	}
	row += c.writeCentered(centerX, row, st.panel.Render(strings.Join(lines, "\n"))) + 1

	selected := shop.Catalog[c.state.shopSelected]
	row += c.writeCentered(centerX, row, st.subtitle.Render(selected.Description)) + 1
	if c.state.shopMessage != "" {
		c.writeCentered(centerX, row, st.warn.Render(c.state.shopMessage))
	}
	row += 2
	c.writeCentered(centerX, row, st.dim.Render("1-5  select    ENTER  buy / equip    B  back"))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	st := c.styles
	c.writeCentered(centerX, centerY-2, st.warn.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, st.text.Render(msg))
	c.writeCentered(centerX, centerY+2, st.dim.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	st := c.styles
	c.writeCentered(centerX, centerY-3, st.danger.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, st.text.Render("The server is restarting for maintenance."))
	c.writeCentered(centerX, centerY, st.text.Render("Your coins and ships are saved. Please reconnect in a moment."))

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, st.text.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.writeCentered(centerX, centerY+4, st.dim.Render("Press Q to disconnect now"))
}
