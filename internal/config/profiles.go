package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	profilesFileName = "profiles.json"
	envProfilesPath  = "STOREFRONT_PROFILES_PATH"
)

var (
	// ErrProfilesNotFound is returned when the profiles file does not exist.
	ErrProfilesNotFound = errors.New("profiles file not found")
	// ErrInvalidProfiles is returned when the profiles payload is malformed.
	ErrInvalidProfiles = errors.New("profiles file is invalid")
	// ErrProfileNotFound indicates the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Profile stores saved customer details used to pre-fill checkout forms.
// Explicit command flags always override these values.
type Profile struct {
	Name           string `json:"name"`
	IsDefault      bool   `json:"is_default"`
	CustomerName   string `json:"customer_name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
	Payment        string `json:"payment,omitempty"`
	PaypalEmail    string `json:"paypal_email,omitempty"`
	CardNumber     string `json:"card_number,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// Profiles stores all saved customer profiles.
type Profiles struct {
	Entries []Profile `json:"profiles"`
}

// Find resolves an explicit profile name, or the default profile when the
// name is empty.
func (p Profiles) Find(profileName string) (Profile, error) {
	if strings.TrimSpace(profileName) == "" {
		for _, profile := range p.Entries {
			if profile.IsDefault {
				return profile, nil
			}
		}
		return Profile{}, fmt.Errorf("%w: no default profile configured", ErrProfileNotFound)
	}

	want := strings.ToLower(strings.TrimSpace(profileName))
	for _, profile := range p.Entries {
		if strings.ToLower(profile.Name) == want {
			return profile, nil
		}
	}
	available := make([]string, 0, len(p.Entries))
	for _, profile := range p.Entries {
		available = append(available, profile.Name)
	}
	return Profile{}, fmt.Errorf("%w: %s (available: %s)", ErrProfileNotFound, want, strings.Join(available, ", "))
}

// Store loads and writes customer profiles.
type Store struct {
	path string
}

// NewStore creates a store using env overrides or defaults.
func NewStore() (*Store, error) {
	if path := os.Getenv(envProfilesPath); path != "" {
		return &Store{path: path}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Store{path: filepath.Join(home, defaultDirName, profilesFileName)}, nil
}

// Path returns the current profiles path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the profiles payload.
func (s *Store) Load(_ context.Context) (Profiles, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Profiles{}, ErrProfilesNotFound
		}
		return Profiles{}, fmt.Errorf("read profiles: %w", err)
	}

	var profiles Profiles
	if err := json.Unmarshal(payload, &profiles); err != nil {
		return Profiles{}, fmt.Errorf("%w: %v", ErrInvalidProfiles, err)
	}
	if len(profiles.Entries) == 0 {
		return Profiles{}, fmt.Errorf("%w: profiles is empty", ErrInvalidProfiles)
	}
	return profiles, nil
}

// Save writes a profiles payload.
func (s *Store) Save(_ context.Context, profiles Profiles) error {
	if len(profiles.Entries) == 0 {
		return fmt.Errorf("%w: profiles is empty", ErrInvalidProfiles)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}
	payload, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}
