package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/fx"
	"parley/internal/config"
	"parley/internal/daemon"
)

func main() {
	configFlag := flag.String("config", "", "path to config file (default ~/.parley/config.toml)")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := fx.New(
		daemon.Module(daemon.Params{Config: cfg}),
	)

	app.Run()
}

// loadConfig reads the config file at path, or the default location when path
// is empty. A missing default file falls back to config.Default; an explicit
// path that cannot be read is an error.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return config.Default(), nil
	}
	defaultPath := filepath.Join(home, ".parley", "config.toml")
	cfg, err := config.Load(defaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
