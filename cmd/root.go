package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds CLI configuration.
type Config struct {
	DBPath            string
	NaverClientID     string
	NaverClientSecret string
	SlackWebhookURL   string
	ImportCSV         string
	AddURL            string
	ShowVersion       bool
}

// ParseFlags parses command-line flags and the environment.
func ParseFlags(version string) (*Config, error) {
	config := &Config{}

	// .env.local wins over .env; neither overrides real environment vars.
	_ = godotenv.Load(".env.local", ".env")

	flag.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (default: ~/.lunchmate/lunchmate.db)")
	flag.StringVar(&config.ImportCSV, "import", "", "Import favorites from a CSV file and exit")
	flag.StringVar(&config.AddURL, "add-url", "", "Add a favorite from a Naver map link and exit")
	flag.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")
	flag.Parse()

	if config.ShowVersion {
		fmt.Println("lunchmate " + version)
		os.Exit(0)
	}

	config.NaverClientID = os.Getenv("NAVER_CLIENT_ID")
	config.NaverClientSecret = os.Getenv("NAVER_CLIENT_SECRET")
	config.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")

	if config.NaverClientID == "" || config.NaverClientSecret == "" {
		return nil, fmt.Errorf("NAVER_CLIENT_ID and NAVER_CLIENT_SECRET must be set (flags, env, or .env file)")
	}

	if config.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, ".lunchmate")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.DBPath = filepath.Join(configDir, "lunchmate.db")
	}

	return config, nil
}
