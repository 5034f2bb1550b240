package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Letterboxd LetterboxdConfig `toml:"letterboxd"`
	TMDB       TMDBConfig       `toml:"tmdb"`
	Data       DataConfig       `toml:"data"`
	Render     RenderConfig     `toml:"render"`
}

// LetterboxdConfig contains account credentials for authenticated operations.
type LetterboxdConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// TMDBConfig contains the TMDB API credentials and lookup options.
type TMDBConfig struct {
	APIKey          string `toml:"api_key"`
	GetListRuntimes bool   `toml:"get_list_runtimes"`
}

// DataConfig locates the unpacked CSV exports and the film id cache.
type DataConfig struct {
	Directory string `toml:"directory"`
	CachePath string `toml:"cache_path"`
}

// RenderConfig contains terminal rendering options.
//
// PosterColumns is the width of ASCII poster art; 0 disables posters.
type RenderConfig struct {
	PosterColumns int  `toml:"poster_columns"`
	Limit         int  `toml:"limit"`
	Ascending     bool `toml:"ascending"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExportPath returns the path of a named CSV export inside the data directory.
func (c *Config) ExportPath(filename string) string {
	return filepath.Join(c.Data.Directory, filename)
}
