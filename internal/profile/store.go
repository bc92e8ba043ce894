package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// Sentinel errors
var (
	// ErrProfileNotFound is returned when a profile doesn't exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoDefaultProfile is returned when no default is set.
	ErrNoDefaultProfile = errors.New("no default profile set")

	// ErrInvalidName is returned for names that can't be stored.
	ErrInvalidName = errors.New("invalid profile name")
)

// Profile is a named set of ambient settings.
type Profile struct {
	Name     string `json:"name"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	// AWSProfile selects a profile from the shared AWS config files.
	AWSProfile string    `json:"aws_profile,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Apply fills the settings fields that are still empty from the profile.
// Values already set, from flags or the environment, win.
func (p *Profile) Apply(s pipeline.Settings) pipeline.Settings {
	if s.Region == "" {
		s.Region = p.Region
	}
	if s.Endpoint == "" {
		s.Endpoint = p.Endpoint
	}
	if s.Profile == "" {
		s.Profile = p.AWSProfile
	}
	return s
}

// Config represents the profiles configuration file.
type Config struct {
	Version        int                `json:"version"`
	DefaultProfile string             `json:"default_profile,omitempty"`
	Profiles       map[string]Profile `json:"profiles"`
}

// Store manages profile storage on the local filesystem.
type Store struct {
	baseDir string
}

// NewStore creates a new profile store.
// If baseDir is empty, uses ~/.gwctl/profiles/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".gwctl", "profiles")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create profiles directory: %w", err)
	}

	store := &Store{baseDir: baseDir}

	if err := store.ensureConfig(); err != nil {
		return nil, err
	}

	log.Debug().Str("baseDir", baseDir).Msg("profile store initialized")

	return store, nil
}

// Set creates or replaces a profile, keeping the original creation time.
// The first profile stored becomes the default.
func (s *Store) Set(p Profile) (*Profile, error) {
	if p.Name == "" || filepath.Base(p.Name) != p.Name {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if existing, ok := cfg.Profiles[p.Name]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	cfg.Profiles[p.Name] = p
	if len(cfg.Profiles) == 1 {
		cfg.DefaultProfile = p.Name
	}

	if err := s.saveConfig(cfg); err != nil {
		return nil, err
	}

	log.Info().
		Str("name", p.Name).
		Str("region", p.Region).
		Str("endpoint", p.Endpoint).
		Msg("profile saved")

	return &p, nil
}

// Get retrieves a profile by name.
func (s *Store) Get(name string) (*Profile, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	p, ok := cfg.Profiles[name]
	if !ok {
		return nil, ErrProfileNotFound
	}

	return &p, nil
}

// GetDefault retrieves the default profile.
// Returns ErrNoDefaultProfile if none is set.
func (s *Store) GetDefault() (*Profile, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.DefaultProfile == "" {
		return nil, ErrNoDefaultProfile
	}

	return s.Get(cfg.DefaultProfile)
}

// Resolve returns the named profile, or the default when name is empty. A
// missing default is not an error, it returns nil.
func (s *Store) Resolve(name string) (*Profile, error) {
	if name != "" {
		p, err := s.Get(name)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		return p, nil
	}

	p, err := s.GetDefault()
	if errors.Is(err, ErrNoDefaultProfile) {
		return nil, nil
	}
	return p, err
}

// List returns all stored profiles sorted by name.
func (s *Store) List() ([]Profile, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	return profiles, nil
}

// Delete removes a profile.
func (s *Store) Delete(name string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}

	if _, ok := cfg.Profiles[name]; !ok {
		return ErrProfileNotFound
	}

	delete(cfg.Profiles, name)

	// Clear default if this was the default profile
	if cfg.DefaultProfile == name {
		cfg.DefaultProfile = ""
	}

	if err := s.saveConfig(cfg); err != nil {
		return err
	}

	log.Info().Str("name", name).Msg("profile deleted")

	return nil
}

// SetDefault sets the default profile.
func (s *Store) SetDefault(name string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}

	if _, ok := cfg.Profiles[name]; !ok {
		return ErrProfileNotFound
	}

	cfg.DefaultProfile = name

	if err := s.saveConfig(cfg); err != nil {
		return err
	}

	log.Info().Str("name", name).Msg("default profile set")

	return nil
}

// DefaultName returns the name of the default profile, empty if none.
func (s *Store) DefaultName() (string, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.DefaultProfile, nil
}

func (s *Store) configPath() string {
	return filepath.Join(s.baseDir, "config.json")
}

// ensureConfig creates an empty config if it doesn't exist.
func (s *Store) ensureConfig() error {
	if _, err := os.Stat(s.configPath()); err == nil {
		return nil
	}

	return s.saveConfig(&Config{
		Version:  1,
		Profiles: make(map[string]Profile),
	})
}

func (s *Store) loadConfig() (*Config, error) {
	data, err := os.ReadFile(s.configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}

	return &cfg, nil
}

// saveConfig writes the config file atomically.
func (s *Store) saveConfig(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := s.configPath()
	tempPath := configPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
