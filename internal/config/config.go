package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error" (default: "info")

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// Playlist source paths
	Playlists PlaylistsConfig `koanf:"playlists"`

	// Listener session database (empty means the XDG data dir)
	SessionDB string `koanf:"session_db"`
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// PlaylistsConfig holds the playlist source paths. Empty fields disable
// the corresponding source.
type PlaylistsConfig struct {
	StrawberryDB  string `koanf:"strawberry_db"`
	XSPFDir       string `koanf:"xspf_dir"`
	CollectionDir string `koanf:"collection_dir"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		LogLevel: "info",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Environment overrides so credentials can stay out of the file
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		cfg.Lastfm.APIKey = v
	}
	if v := os.Getenv("LASTFM_API_SECRET"); v != "" {
		cfg.Lastfm.APISecret = v
	}

	cfg.Playlists.StrawberryDB = expandPath(cfg.Playlists.StrawberryDB)
	cfg.Playlists.XSPFDir = expandPath(cfg.Playlists.XSPFDir)
	cfg.Playlists.CollectionDir = expandPath(cfg.Playlists.CollectionDir)
	cfg.SessionDB = expandPath(cfg.SessionDB)

	if cfg.Playlists.StrawberryDB == "" {
		cfg.Playlists.StrawberryDB = defaultStrawberryDB()
	}

	return cfg, nil
}

func defaultStrawberryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "strawberry", "strawberry", "strawberry.db")
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/music-bot/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "music-bot", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}
