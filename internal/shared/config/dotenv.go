package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"resume-builder/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE files that exist. Variables already present in the
// process environment are not overridden.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "error": err})
			}
		}
	}
}
