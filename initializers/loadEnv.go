package initializers

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the process environment when one exists.
// Variables already set are left untouched.
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
}
