package client

import (
	"encoding/json"
	"fmt"
)

// UserPreferences is what onboarding collects. It is independent of the
// session and never required for authenticated access.
type UserPreferences struct {
	Language   string `json:"language"`
	Name       string `json:"name"`
	State      string `json:"state"`
	District   string `json:"district"`
	Pincode    string `json:"pincode"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// Preferences persists onboarding state next to the session keys
type Preferences struct {
	store *CredentialStore
}

func NewPreferences(store *CredentialStore) *Preferences {
	return &Preferences{store: store}
}

// Onboarded reports whether onboarding was completed or skipped
func (p *Preferences) Onboarded() bool {
	v, ok := p.store.Get(KeyUserOnboarded)
	return ok && v != ""
}

// Load returns the saved preferences, nil when onboarding stored none
func (p *Preferences) Load() (*UserPreferences, error) {
	raw, ok := p.store.Get(KeyUserPreferences)
	if !ok || raw == "" {
		return nil, nil
	}
	var prefs UserPreferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, fmt.Errorf("stored preferences are not valid JSON: %w", err)
	}
	return &prefs, nil
}

// Complete marks onboarding done and saves prefs
func (p *Preferences) Complete(prefs UserPreferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := p.store.storage.Set(KeyUserOnboarded, "true"); err != nil {
		return fmt.Errorf("failed to save onboarding flag: %w", err)
	}
	if err := p.store.storage.Set(KeyUserPreferences, string(raw)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Skip marks onboarding done without saving preferences
func (p *Preferences) Skip() error {
	if err := p.store.storage.Set(KeyUserOnboarded, "true"); err != nil {
		return fmt.Errorf("failed to save onboarding flag: %w", err)
	}
	return nil
}
