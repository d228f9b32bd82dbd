package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the daemon configuration (~/.parley/config.toml).
type Config struct {
	Listen    string    `toml:"listen"`
	DataDir   string    `toml:"data_dir"`
	Translate Translate `toml:"translate"`
}

// Translate configures the translation backends.
type Translate struct {
	Endpoint      string `toml:"endpoint"`
	APIKey        string `toml:"api_key"`
	Model         string `toml:"model"`
	LocalEndpoint string `toml:"local_endpoint"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Listen:  "127.0.0.1:7350",
		DataDir: filepath.Join(home, ".parley"),
		Translate: Translate{
			Endpoint:      "https://generativelanguage.googleapis.com",
			Model:         "gemini-2.5-flash",
			LocalEndpoint: "http://127.0.0.1:7351/translate",
		},
	}
}

// DBPath returns the document store path inside the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "parley.db")
}

// LogPath returns the daemon log file path inside the data dir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "parleyd.log")
}

// Load reads config from the given path. Returns an error if the file is missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
