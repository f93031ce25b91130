package shop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, p *Progress) (*Shop, *MemoryStore) {
	t.Helper()
	store := &MemoryStore{}
	if p != nil {
		require.NoError(t, store.Save(*p))
	}
	s, err := Open(store)
	require.NoError(t, err)
	return s, store
}

func TestFreshShop(t *testing.T) {
	s, _ := openMemory(t, nil)
	assert.Zero(t, s.Coins())
	assert.Equal(t, DefaultShipID, s.Equipped().ID)
	require.Len(t, s.Unlocked(), 1)
	assert.Len(t, s.Locked(), len(Catalog)-1)
}

func TestAddCoins(t *testing.T) {
	s, store := openMemory(t, nil)
	assert.Equal(t, 12, s.AddCoins(129))
	assert.Equal(t, 0, s.AddCoins(9))
	assert.Equal(t, 0, s.AddCoins(-50))
	assert.Equal(t, 12, s.Coins())
	assert.Equal(t, 12, s.TotalCoins())
	assert.Equal(t, 3, store.Saves())
}

func TestBuyAndEquip(t *testing.T) {
	s, store := openMemory(t, &Progress{Coins: 600})

	assert.True(t, s.CanBuy("flying-car"))
	assert.False(t, s.CanBuy("futuristic-spaceship"))
	assert.False(t, s.CanBuy(DefaultShipID))
	assert.False(t, s.CanBuy("submarine"))

	assert.ErrorIs(t, s.Equip("flying-car"), ErrLocked)
	require.NoError(t, s.Buy("flying-car"))
	assert.Equal(t, 100, s.Coins())
	assert.Equal(t, 600, s.TotalCoins(), "spending does not reduce lifetime coins")
	assert.ErrorIs(t, s.Buy("flying-car"), ErrAlreadyUnlocked)
	assert.ErrorIs(t, s.Buy("space-fighter"), ErrInsufficientCoins)
	assert.ErrorIs(t, s.Buy("submarine"), ErrUnknownShip)
	assert.ErrorIs(t, s.Equip("submarine"), ErrUnknownShip)

	require.NoError(t, s.Equip("flying-car"))
	assert.Equal(t, "Flying Car", s.Equipped().Name)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "flying-car", saved.EquippedShip)
	assert.ElementsMatch(t, []string{DefaultShipID, "flying-car"}, saved.UnlockedShips)
}

func TestOpenNormalizesProgress(t *testing.T) {
	s, _ := openMemory(t, &Progress{
		Coins:         -5,
		EquippedShip:  "space-fighter",
		UnlockedShips: []string{"flying-car", "bogus", "flying-car"},
	})
	assert.Zero(t, s.Coins())
	assert.Equal(t, DefaultShipID, s.Equipped().ID)
	ids := make([]string, 0)
	for _, ship := range s.Unlocked() {
		ids = append(ids, ship.ID)
	}
	assert.Equal(t, []string{DefaultShipID, "flying-car"}, ids)
}

func TestRecordScoreAndReset(t *testing.T) {
	s, _ := openMemory(t, &Progress{Coins: 3000, UnlockedShips: []string{"flying-saucer"}})
	require.NoError(t, s.RecordScore(400))
	require.NoError(t, s.RecordScore(100))
	assert.Equal(t, 400, s.BestScore())

	require.NoError(t, s.Reset())
	assert.Zero(t, s.Coins())
	assert.Zero(t, s.BestScore())
	assert.Len(t, s.Unlocked(), 1)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players", "alice.json")
	store := NewFileStore(path)

	p, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := Open(store)
	require.NoError(t, err)
	assert.Equal(t, 2000, s.AddCoins(20000))
	require.NoError(t, s.Buy("space-fighter"))
	require.NoError(t, s.Equip("space-fighter"))

	reopened, err := Open(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, 500, reopened.Coins())
	assert.Equal(t, 2000, reopened.TotalCoins())
	assert.Equal(t, "space-fighter", reopened.Equipped().ID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
	_, err := Open(NewFileStore(path))
	assert.Error(t, err)
}

func TestPlayerFile(t *testing.T) {
	dir := filepath.Join("data", "players")
	assert.Equal(t, filepath.Join(dir, "alice.json"), PlayerFile(dir, "Alice"))
	assert.Equal(t, filepath.Join(dir, "______etc_passwd.json"), PlayerFile(dir, "../../etc/passwd"))
	assert.Equal(t, filepath.Join(dir, "anonymous.json"), PlayerFile(dir, ""))
}
