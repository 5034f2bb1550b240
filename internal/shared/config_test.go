package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("parses a full config file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `[letterboxd]
username = "moviefan"
password = "hunter2"

[tmdb]
api_key = "tmdb-key"
get_list_runtimes = true

[data]
directory = "exports"
cache_path = "films.db"

[render]
poster_columns = 60
limit = 25
ascending = true
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected load to succeed, got %v", err)
			}

			if config.Letterboxd.Username != "moviefan" {
				t.Errorf("expected username, got %q", config.Letterboxd.Username)
			}
			if config.TMDB.APIKey != "tmdb-key" {
				t.Errorf("expected api key, got %q", config.TMDB.APIKey)
			}
			if !config.TMDB.GetListRuntimes {
				t.Error("expected get_list_runtimes to be true")
			}
			if config.Data.Directory != "exports" {
				t.Errorf("expected data directory, got %q", config.Data.Directory)
			}
			if config.Render.PosterColumns != 60 {
				t.Errorf("expected 60 poster columns, got %d", config.Render.PosterColumns)
			}
			if config.Render.Limit != 25 {
				t.Errorf("expected limit 25, got %d", config.Render.Limit)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
				t.Error("expected missing file to fail")
			}
		})

		t.Run("malformed file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected malformed file to fail")
			}
		})
	})

	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()
		if config.Data.Directory == "" {
			t.Error("expected a default data directory")
		}
		if config.Data.CachePath == "" {
			t.Error("expected a default cache path")
		}
		if config.Render.PosterColumns <= 0 {
			t.Error("expected default poster columns")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected create to succeed, got %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read created config: %v", err)
		}
		if !strings.Contains(string(content), "[letterboxd]") {
			t.Error("expected example content in config file")
		}

		t.Run("refuses to overwrite", func(t *testing.T) {
			if err := CreateConfigFile(path); err == nil {
				t.Error("expected overwrite to fail")
			}
		})
	})

	t.Run("ExportPath", func(t *testing.T) {
		config := &Config{Data: DataConfig{Directory: "static"}}
		if got := config.ExportPath("watchlist.csv"); got != filepath.Join("static", "watchlist.csv") {
			t.Errorf("unexpected export path %q", got)
		}
	})
}
