package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Wave     WaveConfig     `yaml:"wave"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type WaveConfig struct {
	PixelsPerSecond float64    `yaml:"pixels_per_second"`
	FPS             int        `yaml:"fps"`
	NumPoints       int        `yaml:"num_points"`
	LengthScale     float64    `yaml:"length_scale"`
	SwingsPerLength float64    `yaml:"swings_per_length"`
	Small           ViewConfig `yaml:"small"`
	Large           ViewConfig `yaml:"large"`
}

// ViewConfig is a wave view size in terminal cells.
type ViewConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	// Path is the log file; empty disables logging.
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Wave: WaveConfig{
			PixelsPerSecond: 25,
			FPS:             20,
			NumPoints:       20,
			LengthScale:     0.5,
			SwingsPerLength: 2,
			Small:           ViewConfig{Cols: 40, Rows: 3},
			Large:           ViewConfig{Cols: 72, Rows: 8},
		},
		Database: DatabaseConfig{
			Path: "scratchpad.db",
		},
		Log: LogConfig{
			Path:  "",
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	w := c.Wave
	if w.PixelsPerSecond < 0 {
		return fmt.Errorf("wave.pixels_per_second must not be negative, got %v", w.PixelsPerSecond)
	}
	if w.FPS <= 0 {
		return fmt.Errorf("wave.fps must be positive, got %d", w.FPS)
	}
	if w.NumPoints < 0 {
		return fmt.Errorf("wave.num_points must not be negative, got %d", w.NumPoints)
	}
	for name, v := range map[string]ViewConfig{"small": w.Small, "large": w.Large} {
		if v.Cols <= 0 || v.Rows <= 0 {
			return fmt.Errorf("wave.%s must have positive cols and rows, got %dx%d", name, v.Cols, v.Rows)
		}
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager loads the config at path, or from the default location when
// path is empty. A missing file is created with the defaults.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		configDir, err := getConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "config.yaml")
	}

	manager := &Manager{configPath: path}

	if err := manager.loadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	if err := manager.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".scratchpad"), nil
}
