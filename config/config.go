// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LinksConfig struct {
	// FeedbackURL is where NotFound errors send users to report a missing
	// flight (issue tracker, form, etc.).
	FeedbackURL string `yaml:"feedback_url"`
}

type TimetableConfig struct {
	LocalCSVPath          string `yaml:"local_csv_path"`
	CSVURL                string `yaml:"csv_url"`
	EffectiveDatePage     string `yaml:"effective_date_page"`
	EffectiveDateSelector string `yaml:"effective_date_selector"`
	CheckIntervalStr      string `yaml:"check_interval"`
	CheckInterval         time.Duration // parsed duration
}

type ResolverConfig struct {
	// Mode selects the route resolution source: "static" (timetable lookup)
	// or "remote" (retrieval service).
	Mode         string `yaml:"mode"`
	MaxAttempts  int    `yaml:"max_attempts"`
	BaseDelayStr string `yaml:"base_delay"`
	BaseDelay    time.Duration // parsed duration
}

type RetrievalConfig struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutStr string `yaml:"timeout"`
	Timeout    time.Duration // parsed duration

	// APIKey comes from the OPENAI_API_KEY environment variable (or .env),
	// never from the yaml file.
	APIKey string `yaml:"-"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Links     LinksConfig     `yaml:"links"`
	Timetable TimetableConfig `yaml:"timetable"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

var AppConfig Config

// LoadConfig reads configuration from the yaml file at configPath and pulls
// secrets from the environment (.env is loaded first if present).
func LoadConfig(configPath string) error {
	// Secrets live in the environment, not in the config file. A missing .env
	// is fine - deployments may export the variables directly.
	_ = godotenv.Load(".env")

	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Defaults for everything the file may omit.
	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}
	if AppConfig.Resolver.Mode == "" {
		AppConfig.Resolver.Mode = "static"
	}
	if AppConfig.Resolver.MaxAttempts <= 0 {
		AppConfig.Resolver.MaxAttempts = 3
	}
	if AppConfig.Retrieval.BaseURL == "" {
		AppConfig.Retrieval.BaseURL = "https://api.openai.com/v1"
	}
	if AppConfig.Retrieval.Model == "" {
		AppConfig.Retrieval.Model = "gpt-5-nano"
	}

	// Parse durations.
	AppConfig.Resolver.BaseDelay = time.Second
	if AppConfig.Resolver.BaseDelayStr != "" {
		AppConfig.Resolver.BaseDelay, err = time.ParseDuration(AppConfig.Resolver.BaseDelayStr)
		if err != nil {
			return fmt.Errorf("failed to parse resolver base_delay: %w", err)
		}
	}
	AppConfig.Retrieval.Timeout = 60 * time.Second
	if AppConfig.Retrieval.TimeoutStr != "" {
		AppConfig.Retrieval.Timeout, err = time.ParseDuration(AppConfig.Retrieval.TimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse retrieval timeout: %w", err)
		}
	}
	AppConfig.Timetable.CheckInterval = 24 * time.Hour
	if AppConfig.Timetable.CheckIntervalStr != "" {
		AppConfig.Timetable.CheckInterval, err = time.ParseDuration(AppConfig.Timetable.CheckIntervalStr)
		if err != nil {
			return fmt.Errorf("failed to parse timetable check_interval: %w", err)
		}
	}

	AppConfig.Retrieval.APIKey = os.Getenv("OPENAI_API_KEY")

	// Make sure the directory for the downloaded timetable CSV exists.
	if AppConfig.Timetable.LocalCSVPath != "" {
		if err := os.MkdirAll(filepath.Dir(AppConfig.Timetable.LocalCSVPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for timetable CSV: %w", err)
		}
	}

	return nil
}
