package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven defaults for the CLI. Flags override
// every value.
type Config struct {
	DBPath   string
	SpoolDir string
	LogFile  string
	User     string
	Timezone string

	Concurrency int
}

const (
	defaultDBPath   = "~/.go-timer-workbench/workbench.db"
	defaultSpoolDir = "~/.go-timer-workbench/spool"
	defaultLogFile  = "~/.go-timer-workbench/logs/app.log"
)

// Load reads an optional .env file and the process environment. A missing
// .env file is not an error; system environment variables still apply.
func Load() *Config {
	godotenv.Load()

	return &Config{
		DBPath:      ExpandPath(getEnv("WORKBENCH_DB", defaultDBPath)),
		SpoolDir:    ExpandPath(getEnv("WORKBENCH_SPOOL", defaultSpoolDir)),
		LogFile:     ExpandPath(getEnv("WORKBENCH_LOG", defaultLogFile)),
		User:        getEnv("WORKBENCH_USER", ""),
		Timezone:    getEnv("WORKBENCH_TZ", "Local"),
		Concurrency: getEnvInt("WORKBENCH_CONCURRENCY", 4),
	}
}

// ExpandPath resolves a leading ~/ against the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}
	return defaultVal
}
