package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv and PathFromEnv.
const (
	EnvConfigPath = "TURNTABLE_CONFIG"
	EnvDebug      = "TURNTABLE_DEBUG"
	EnvLogLevel   = "TURNTABLE_LOG_LEVEL"
)

// LoadEnv reads the given dotenv file (e.g. ".env") into the process environment.
// Variables already set are not overridden. The file may be missing; that is not an error.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// PathFromEnv returns TURNTABLE_CONFIG when set, else DefaultPath.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

// ApplyEnv overrides the debug flag and log level from the environment.
// Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvDebug); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Tuning.Debug = b
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}
