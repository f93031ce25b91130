package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Progress is the persisted state of one player.
type Progress struct {
	Coins         int      `json:"coins"`
	TotalCoins    int      `json:"totalCoins"`
	EquippedShip  string   `json:"equippedShip"`
	UnlockedShips []string `json:"unlockedShips"`
	BestScore     int      `json:"bestScore"`
}

// Store persists Progress.
type Store interface {
	// Load returns the saved progress. It MUST return (nil, nil) if nothing
	// has been saved yet.
	Load() (*Progress, error)
	// Save replaces the saved progress.
	Save(p Progress) error
}

// FileStore keeps progress as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file and its
// directory are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (*Progress, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode progress %s: %w", s.path, err)
	}
	return &p, nil
}

func (s *FileStore) Save(p Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return atomicWriteFile(s.path, data, 0o600)
}

// atomicWriteFile writes data to a temporary file in the target directory
// and renames it over filename, so readers never see a partial file.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-progress-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	success := false
	defer func() {
		if !success {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	success = true
	return nil
}

// MemoryStore keeps progress in memory. Used for guests and tests.
type MemoryStore struct {
	mu    sync.Mutex
	saved *Progress
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return nil, nil
	}
	p := *s.saved
	p.UnlockedShips = slices.Clone(p.UnlockedShips)
	return &p, nil
}

func (s *MemoryStore) Save(p Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UnlockedShips = slices.Clone(p.UnlockedShips)
	s.saved = &p
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// PlayerFile returns the progress file for username inside dir. Characters
// outside [a-z0-9_-] are replaced so the name cannot escape dir.
func PlayerFile(dir, username string) string {
	name := []byte(strings.ToLower(username))
	for i, b := range name {
		switch {
		case b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '_', b == '-':
		default:
			name[i] = '_'
		}
	}
	if len(name) == 0 {
		name = []byte("anonymous")
	}
	return filepath.Join(dir, string(name)+".json")
}
