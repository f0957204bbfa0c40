package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. Values come from, in order of
// precedence: bound command flags, environment variables (a .env file is
// loaded into the environment first), an optional config file, defaults.
type Config struct {
	APIBaseURL    string
	CatalogSource string
	SiteURL       string
	ChromeBin     string

	PageSize       int
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SnapshotEnabled  bool

	CSVOutputPath     string
	ReferenceDataPath string
	LogLevel          string
}

const (
	SourceREST    = "rest"
	SourceBrowser = "browser"
)

var defaults = map[string]any{
	"catalog_api_url":     "http://localhost:3000/api",
	"catalog_source":      SourceREST,
	"site_url":            "http://localhost:3000",
	"chrome_bin":          "",
	"page_size":           6,
	"max_concurrency":     3,
	"rate_limit_ms":       500,
	"max_retries":         3,
	"postgres_host":       "localhost",
	"postgres_port":       "5432",
	"postgres_user":       "hotel",
	"postgres_password":   "hotel123",
	"postgres_db":         "hotel_catalog",
	"postgres_sslmode":    "disable",
	"snapshot_enabled":    false,
	"csv_output_path":     "",
	"reference_data_path": "./reference.yaml",
	"log_level":           "info",
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// Load reads the .env file and returns the Config resolved through v.
// A nil v uses the global viper instance that the CLI binds its flags to.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	if v == nil {
		v = viper.GetViper()
	}

	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		APIBaseURL:    v.GetString("catalog_api_url"),
		CatalogSource: strings.ToLower(v.GetString("catalog_source")),
		SiteURL:       v.GetString("site_url"),
		ChromeBin:     v.GetString("chrome_bin"),

		PageSize:       v.GetInt("page_size"),
		MaxConcurrency: v.GetInt("max_concurrency"),
		RateLimitMs:    v.GetInt("rate_limit_ms"),
		MaxRetries:     v.GetInt("max_retries"),

		PostgresHost:     v.GetString("postgres_host"),
		PostgresPort:     v.GetString("postgres_port"),
		PostgresUser:     v.GetString("postgres_user"),
		PostgresPassword: v.GetString("postgres_password"),
		PostgresDB:       v.GetString("postgres_db"),
		PostgresSSLMode:  v.GetString("postgres_sslmode"),
		SnapshotEnabled:  v.GetBool("snapshot_enabled"),

		CSVOutputPath:     v.GetString("csv_output_path"),
		ReferenceDataPath: v.GetString("reference_data_path"),
		LogLevel:          v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceREST:
		if c.APIBaseURL == "" {
			return fmt.Errorf("config: CATALOG_API_URL is required for the rest source")
		}
	case SourceBrowser:
		if c.SiteURL == "" {
			return fmt.Errorf("config: SITE_URL is required for the browser source")
		}
	default:
		return fmt.Errorf("config: unknown CATALOG_SOURCE %q (want rest or browser)", c.CatalogSource)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
