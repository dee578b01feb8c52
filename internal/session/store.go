// ABOUTME: Durable session storage for portal tokens and identity flags
// ABOUTME: Persists opaque named slots as JSON in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Slot names mirror the keys the portal web client keeps in browser storage.
const (
	SlotAccess      = "access"
	SlotRefresh     = "refresh"
	SlotTimeout     = "timeout"
	SlotName        = "name"
	SlotCreator     = "creator"
	SlotContributor = "contributor"
)

// authSlots is every slot cleared on logout or unrecoverable refresh failure.
var authSlots = []string{SlotAccess, SlotRefresh, SlotTimeout, SlotName, SlotCreator, SlotContributor}

// Store is a durable key-value store for session slots. Values are opaque
// strings; the store never inspects token contents.
type Store struct {
	configDir string

	mu     sync.Mutex
	values map[string]string
	loaded bool
}

type storeData struct {
	Slots map[string]string `json:"slots"`
}

// NewStore creates a store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "produk")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "produk")
}

// sessionFile returns the path to the session slots JSON
func (s *Store) sessionFile() string {
	return filepath.Join(s.configDir, "session.json")
}

// load reads the slots from disk. A missing or corrupt file starts fresh
// rather than failing; the session is simply unauthenticated.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.values = map[string]string{}

	data, err := os.ReadFile(s.sessionFile())
	if err != nil {
		return
	}

	var stored storeData
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	if stored.Slots != nil {
		s.values = stored.Slots
	}
}

// persist writes the slots to disk. Token material gets 0600 permissions.
func (s *Store) persist() {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return
	}

	data, err := json.MarshalIndent(storeData{Slots: s.values}, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(s.sessionFile(), data, 0600)
}

// Get returns the value for a slot, or the empty string when absent.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.values[key]
}

// Set stores a value under a slot and persists immediately.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.values[key] = value
	s.persist()
}

// Remove deletes a slot.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	delete(s.values, key)
	s.persist()
}

// Clear removes every auth-related slot. Called on logout and on
// unrecoverable refresh failure.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	for _, key := range authSlots {
		delete(s.values, key)
	}
	s.persist()
}
