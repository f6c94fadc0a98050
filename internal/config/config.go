package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"selekt/internal/dispatch"
	"selekt/internal/domain"
	"selekt/internal/eventbus"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version int               `toml:"version"`
	Engine  EngineSettings    `toml:"engine"`
	Lists   []domain.ListSpec `toml:"lists"`
}

// EngineSettings are the defaults applied to every engine
type EngineSettings struct {
	SelectedMarker         string `toml:"selected_marker"`
	IgnoreMarker           string `toml:"ignore_marker"`
	SingleSelect           bool   `toml:"single_select"`
	ForceCtrl              bool   `toml:"force_ctrl"`
	ClearOn                string `toml:"clear_on"` // "press" or "release"
	PreserveRangeDirection bool   `toml:"preserve_range_direction"`
}

// ClearOnKind returns the interaction kind that clears on outside clicks.
// Validate must have accepted the config.
func (s EngineSettings) ClearOnKind() dispatch.Kind {
	k, _ := dispatch.ParseKind(s.ClearOn)
	return k
}

// Validate checks the settings and the list definitions.
func (c *Config) Validate() error {
	if _, ok := dispatch.ParseKind(c.Engine.ClearOn); !ok {
		return fmt.Errorf("%w: clear_on must be press or release, got %q", ErrInvalidConfig, c.Engine.ClearOn)
	}
	for key, m := range map[string]string{
		"selected_marker": c.Engine.SelectedMarker,
		"ignore_marker":   c.Engine.IgnoreMarker,
	} {
		if m == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, key)
		}
		if strings.ContainsAny(m, " \t\r\n") {
			return fmt.Errorf("%w: %s %q contains whitespace", ErrInvalidConfig, key, m)
		}
	}
	if c.Engine.SelectedMarker == c.Engine.IgnoreMarker {
		return fmt.Errorf("%w: selected_marker and ignore_marker are both %q", ErrInvalidConfig, c.Engine.SelectedMarker)
	}

	seen := make(map[string]bool, len(c.Lists))
	for i, l := range c.Lists {
		if l.Name == "" {
			return fmt.Errorf("%w: lists[%d]: name is required", ErrInvalidConfig, i)
		}
		if seen[l.Name] {
			return fmt.Errorf("%w: lists[%d]: duplicate name %q", ErrInvalidConfig, i, l.Name)
		}
		seen[l.Name] = true
		for _, ig := range l.Ignore {
			if !contains(l.Items, ig) {
				return fmt.Errorf("%w: list %q ignores unknown item %q", ErrInvalidConfig, l.Name, ig)
			}
		}
	}
	return nil
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "selekt", "config.toml"),
	}
}

// NewConfigServiceWithPath creates a config service for a fixed file.
// bus may be nil.
func NewConfigServiceWithPath(path string, bus eventbus.EventBus) ConfigService {
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration file, or the defaults when there is none.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = readConfig(cs.filePath)
		if err != nil {
			if cs.bus != nil {
				cs.bus.Publish(eventbus.ErrorEvent{Message: "config load failed", Err: err})
			}
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:  cs.filePath,
			Lists: len(cfg.Lists),
		})
	}

	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return readConfig(path)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// readConfig parses path over the defaults, so a file only needs the keys
// it changes. Lists in the file replace the default lists.
func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	defaults := cfg.Lists
	cfg.Lists = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Lists == nil {
		cfg.Lists = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration: three independent lists.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Engine: EngineSettings{
			SelectedMarker: "is-selected",
			IgnoreMarker:   "ignore",
			ClearOn:        "press",
		},
		Lists: []domain.ListSpec{
			{Name: "list-one", Items: []string{"Apple", "Banana", "Cherry", "Date", "Elderberry"}},
			{Name: "list-two", Items: []string{"Red", "Green", "-- warm --", "Orange", "Yellow"}, Ignore: []string{"-- warm --"}},
			{Name: "list-tre", Items: []string{"One", "Two", "Three", "Four", "Five", "Six"}},
		},
	}
}
