// Package client is the farmer, shopkeeper and admin side of Kisan Unnati:
// it keeps the session in a small key/value store, gates views on it, talks
// to the auth and moderation endpoints and broadcasts credential changes.
//
// Session validity is never checked here. A non-empty token means logged
// in; the backend decides on every request whether the token still holds.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys
const (
	KeyToken           = "token"
	KeyUser            = "user"
	KeyRole            = "role"
	KeyUserData        = "userData"
	KeyUserPreferences = "userPreferences"
	KeyUserOnboarded   = "userOnboarded"
	KeyAdminToken      = "adminToken"
)

// Storage is a flat string key/value store. Writes to different keys are
// independent; there are no transactions.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStorage keeps values in process memory
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileStorage keeps values in a JSON object on disk. Every Get re-reads the
// file so writes made by other processes are visible; concurrent writers
// are last-write-wins.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage returns a store backed by path. The file and its
// directory are created on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: filepath.Clean(path)}
}

// Path returns the backing file
func (f *FileStorage) Path() string {
	return f.path
}

// EnsureDir creates the directory holding the store file
func (f *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

func (f *FileStorage) load() (map[string]string, error) {
	data := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode store %s: %w", f.path, err)
	}
	return data, nil
}

// save writes to a temp file and renames it over the store so readers
// never see a half-written object
func (f *FileStorage) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := f.EnsureDir(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		log.Printf("WARN: %v", err)
		return "", false
	}
	v, ok := data[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return err
	}
	data[key] = value
	return f.save(data)
}

func (f *FileStorage) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.save(data)
}

// User is the minimal profile kept with a session. Shopkeeper responses
// carry ownerName and shopName instead of name.
type User struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	OwnerName string `json:"ownerName,omitempty"`
	ShopName  string `json:"shopName,omitempty"`
}

// UserData is the denormalized display profile headers render from
type UserData struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Location string `json:"location,omitempty"`
	ShopName string `json:"shopName,omitempty"`
}

// Session is the client-held proof of authentication
type Session struct {
	Token string
	Role  string
	User  User
}

func (s Session) userData() UserData {
	return UserData{
		Name:     s.User.Name,
		Email:    s.User.Email,
		Phone:    s.User.Phone,
		Role:     s.Role,
		Location: s.User.Location,
		ShopName: s.User.ShopName,
	}
}

// CredentialStore reads and writes the session keys of a Storage
type CredentialStore struct {
	storage Storage
}

func NewCredentialStore(storage Storage) *CredentialStore {
	return &CredentialStore{storage: storage}
}

// Set writes token, user, role and userData in that order. A failing write
// is logged and the remaining keys are skipped, so a partial session can
// be left behind. Nothing is returned; readers must tolerate that.
func (cs *CredentialStore) Set(s Session) {
	user, err := json.Marshal(s.User)
	if err != nil {
		log.Printf("ERROR: encoding session user: %v", err)
		return
	}
	userData, err := json.Marshal(s.userData())
	if err != nil {
		log.Printf("ERROR: encoding session user data: %v", err)
		return
	}

	writes := []struct{ key, value string }{
		{KeyToken, s.Token},
		{KeyUser, string(user)},
		{KeyRole, s.Role},
		{KeyUserData, string(userData)},
	}
	for _, w := range writes {
		if err := cs.storage.Set(w.key, w.value); err != nil {
			log.Printf("ERROR: writing %s to credential store: %v", w.key, err)
			return
		}
	}
}

// Get returns the raw value stored under key
func (cs *CredentialStore) Get(key string) (string, bool) {
	return cs.storage.Get(key)
}

// Token returns the stored token, "" when logged out
func (cs *CredentialStore) Token() string {
	token, _ := cs.storage.Get(KeyToken)
	return token
}

// IsAuthenticated reports whether a non-empty token is stored
func (cs *CredentialStore) IsAuthenticated() bool {
	return cs.Token() != ""
}

// Role returns the stored role claim
func (cs *CredentialStore) Role() string {
	role, _ := cs.storage.Get(KeyRole)
	return role
}

// Session rebuilds the session from the stored keys. ok is false when no
// token is stored; a missing or unreadable user record yields a zero User.
func (cs *CredentialStore) Session() (Session, bool) {
	token := cs.Token()
	if token == "" {
		return Session{}, false
	}
	s := Session{Token: token, Role: cs.Role()}
	if raw, ok := cs.storage.Get(KeyUser); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			log.Printf("WARN: stored user is not valid JSON: %v", err)
		}
	}
	return s, true
}

// UserData returns the stored display profile
func (cs *CredentialStore) UserData() (UserData, bool) {
	var ud UserData
	raw, ok := cs.storage.Get(KeyUserData)
	if !ok || raw == "" {
		return ud, false
	}
	if err := json.Unmarshal([]byte(raw), &ud); err != nil {
		log.Printf("WARN: stored userData is not valid JSON: %v", err)
		return ud, false
	}
	return ud, true
}

// SetAdminToken stores the token the moderation panel authenticates with
func (cs *CredentialStore) SetAdminToken(token string) {
	if err := cs.storage.Set(KeyAdminToken, token); err != nil {
		log.Printf("ERROR: writing %s to credential store: %v", KeyAdminToken, err)
	}
}

// AdminToken returns the admin-scoped token, "" when absent
func (cs *CredentialStore) AdminToken() string {
	token, _ := cs.storage.Get(KeyAdminToken)
	return token
}

// Clear removes every session key. Onboarding state is kept.
func (cs *CredentialStore) Clear() {
	for _, key := range []string{KeyToken, KeyUser, KeyRole, KeyUserData, KeyAdminToken} {
		if err := cs.storage.Remove(key); err != nil {
			log.Printf("ERROR: removing %s from credential store: %v", key, err)
		}
	}
}
