// Package shop converts run scores into coins and manages the ship
// catalog a player can unlock and equip.
package shop

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

var (
	ErrUnknownShip       = errors.New("unknown ship")
	ErrAlreadyUnlocked   = errors.New("ship already unlocked")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrLocked            = errors.New("ship not unlocked")
)

// Shop holds one player's coins and ships. Every mutation is saved to the
// store. A Shop is not safe for concurrent use.
type Shop struct {
	store    Store
	logger   *log.Logger
	progress Progress
}

// Option configures a Shop.
type Option func(*Shop)

// WithLogger sets the logger used to report save failures from AddCoins.
func WithLogger(l *log.Logger) Option {
	return func(s *Shop) { s.logger = l }
}

// Open loads the player's progress from store, starting fresh if nothing
// was saved.
func Open(store Store, opts ...Option) (*Shop, error) {
	s := &Shop{store: store, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	p, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p != nil {
		s.progress = *p
	}
	s.normalize()
	return s, nil
}

// normalize drops unknown ships and makes sure the default ship is owned
// and something owned is equipped.
func (s *Shop) normalize() {
	p := &s.progress
	unlocked := []string{DefaultShipID}
	for _, id := range p.UnlockedShips {
		if _, ok := Lookup(id); ok && !slices.Contains(unlocked, id) {
			unlocked = append(unlocked, id)
		}
	}
	p.UnlockedShips = unlocked
	if !slices.Contains(unlocked, p.EquippedShip) {
		p.EquippedShip = DefaultShipID
	}
	p.Coins = max(p.Coins, 0)
	p.TotalCoins = max(p.TotalCoins, p.Coins)
}

func (s *Shop) save() error {
	if err := s.store.Save(s.progress); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// AddCoins credits floor(score/PointsPerCoin) coins and returns that amount.
func (s *Shop) AddCoins(score int) int {
	earned := max(score, 0) / PointsPerCoin
	s.progress.Coins += earned
	s.progress.TotalCoins += earned
	if err := s.save(); err != nil {
		s.logger.Error("failed to save coins", "err", err)
	}
	return earned
}

// Coins returns the spendable balance.
func (s *Shop) Coins() int { return s.progress.Coins }

// TotalCoins returns every coin ever earned.
func (s *Shop) TotalCoins() int { return s.progress.TotalCoins }

// BestScore returns the highest recorded run score.
func (s *Shop) BestScore() int { return s.progress.BestScore }

// RecordScore stores score if it beats the best one.
func (s *Shop) RecordScore(score int) error {
	if score <= s.progress.BestScore {
		return nil
	}
	s.progress.BestScore = score
	return s.save()
}

// IsUnlocked reports whether the player owns id.
func (s *Shop) IsUnlocked(id string) bool {
	return slices.Contains(s.progress.UnlockedShips, id)
}

// CanBuy reports whether id exists, is not owned and is affordable.
func (s *Shop) CanBuy(id string) bool {
	ship, ok := Lookup(id)
	return ok && !s.IsUnlocked(id) && s.progress.Coins >= ship.Price
}

// Buy unlocks id, spending its price.
func (s *Shop) Buy(id string) error {
	ship, ok := Lookup(id)
	switch {
	case !ok:
		return fmt.Errorf("%w: %q", ErrUnknownShip, id)
	case s.IsUnlocked(id):
		return fmt.Errorf("%w: %s", ErrAlreadyUnlocked, ship.Name)
	case s.progress.Coins < ship.Price:
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientCoins, ship.Price, s.progress.Coins)
	}
	s.progress.Coins -= ship.Price
	s.progress.UnlockedShips = append(s.progress.UnlockedShips, id)
	return s.save()
}

// Equip selects an owned ship.
func (s *Shop) Equip(id string) error {
	ship, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShip, id)
	}
	if !s.IsUnlocked(id) {
		return fmt.Errorf("%w: %s", ErrLocked, ship.Name)
	}
	s.progress.EquippedShip = id
	return s.save()
}

// Equipped returns the selected ship.
func (s *Shop) Equipped() Ship {
	ship, _ := Lookup(s.progress.EquippedShip)
	return ship
}

// Unlocked returns the owned ships in catalog order.
func (s *Shop) Unlocked() []Ship {
	return s.filter(true)
}

// Locked returns the ships still for sale in catalog order.
func (s *Shop) Locked() []Ship {
	return s.filter(false)
}

func (s *Shop) filter(unlocked bool) []Ship {
	var out []Ship
	for _, ship := range Catalog {
		if s.IsUnlocked(ship.ID) == unlocked {
			out = append(out, ship)
		}
	}
	return out
}

// Reset wipes all progress.
func (s *Shop) Reset() error {
	s.progress = Progress{}
	s.normalize()
	return s.save()
}
