package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/texit/internal/log"
)

// Save writes the settings as a flat JSON object. Persistence is best
// effort by contract: callers decide whether a failure matters (the app
// ignores it, the CLI reports it).
func Save(configPath string, cfg Config) error {
	log.Debug(log.CatConfig, "Writing settings", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write settings", err, "path", configPath)
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
