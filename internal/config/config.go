package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host   string `yaml:"host"`
		Port   int    `yaml:"port"`
		Env    string `yaml:"env"`
		Origin string `yaml:"origin"` // public base URL used in email links
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // sqlite, postgres, mysql
		Path   string `yaml:"path"`   // sqlite file
		DSN    string `yaml:"url"`    // postgres / mysql
	} `yaml:"database"`

	Session struct {
		Secret     string `yaml:"secret"`
		CookieName string `yaml:"cookie_name"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"session"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		SMTPSecure   bool   `yaml:"smtp_secure"` // implicit TLS (port 465)
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Admin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`

	Events struct {
		Timezone      string `yaml:"timezone"`
		Weekday       string `yaml:"weekday"`
		UpcomingCount int    `yaml:"upcoming_count"`

		// Shown when an event has no value of its own
		DefaultTitle       string `yaml:"default_title"`
		DefaultDescription string `yaml:"default_description"`
		DefaultLocation    string `yaml:"default_location"`
	} `yaml:"events"`

	Content struct {
		FAQPath string `yaml:"faq_path"` // empty uses the built-in FAQ
	} `yaml:"content"`
}

var AppConfig *Config

const defaultSessionSecret = "dev-secret-change-in-production"

// Defaults returns the configuration used when nothing else is set
func Defaults() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.Origin = "http://localhost:5173"

	cfg.Database.Driver = "sqlite"

	cfg.Session.Secret = defaultSessionSecret
	cfg.Session.CookieName = "__session"
	cfg.Session.MaxAgeDays = 30

	cfg.Email.SMTPHost = "smtp.protonmail.ch"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Terrible Football Liverpool"

	cfg.Events.Timezone = "Europe/London"
	cfg.Events.Weekday = "saturday"
	cfg.Events.UpcomingCount = 12
	cfg.Events.DefaultTitle = "Terrible Football Liverpool"
	cfg.Events.DefaultDescription = "Saturday football session"
	cfg.Events.DefaultLocation = "Wavertree Botanic Gardens, Edge Lane, Innovation Boulevard, Liverpool"

	return &cfg
}

// Load builds the configuration: defaults, then the optional YAML file
// (CONFIG_PATH, default config/config.yaml), then .env, then environment.
func Load() (*Config, error) {
	cfg := Defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if err := loadFile(configPath, cfg); err != nil {
		return nil, err
	}

	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Origin, "ORIGIN")
	if err := setInt(&cfg.Server.Port, "SERVER_PORT"); err != nil {
		return err
	}

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.Path, "DATABASE_PATH")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setString(&cfg.Session.CookieName, "SESSION_COOKIE")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASS")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	setString(&cfg.Email.FromName, "SMTP_FROM_NAME")
	if err := setInt(&cfg.Email.SMTPPort, "SMTP_PORT"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("SMTP_SECURE"); ok {
		cfg.Email.SMTPSecure = v == "true" || v == "1"
	}

	setString(&cfg.Admin.Username, "FIRST_ADMIN_USERNAME")
	setString(&cfg.Admin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "FIRST_ADMIN_PASSWORD")

	setString(&cfg.Events.Timezone, "EVENT_TIMEZONE")
	setString(&cfg.Events.Weekday, "EVENT_WEEKDAY")
	setString(&cfg.Events.DefaultTitle, "EVENT_DEFAULT_TITLE")
	setString(&cfg.Events.DefaultDescription, "EVENT_DEFAULT_DESCRIPTION")
	setString(&cfg.Events.DefaultLocation, "EVENT_DEFAULT_LOCATION")
	setString(&cfg.Content.FAQPath, "FAQ_PATH")
	if err := setInt(&cfg.Events.UpcomingCount, "EVENT_UPCOMING_COUNT"); err != nil {
		return err
	}

	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUsername
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.Driver != "sqlite" && c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required for driver %s", c.Database.Driver)
	}
	if _, err := time.LoadLocation(c.Events.Timezone); err != nil {
		return fmt.Errorf("invalid EVENT_TIMEZONE %q: %w", c.Events.Timezone, err)
	}
	if _, err := c.EventWeekday(); err != nil {
		return err
	}
	if c.Events.UpcomingCount < 1 {
		return fmt.Errorf("EVENT_UPCOMING_COUNT must be positive")
	}
	if c.IsProduction() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Location returns the timezone events are scheduled in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Events.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// EventWeekday returns the day of the week sessions are played on
func (c *Config) EventWeekday() (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(c.Events.Weekday)]
	if !ok {
		return 0, fmt.Errorf("invalid EVENT_WEEKDAY %q", c.Events.Weekday)
	}
	return wd, nil
}

// SessionMaxAge is the cookie lifetime in seconds
func (c *Config) SessionMaxAge() int {
	return c.Session.MaxAgeDays * 24 * 60 * 60
}

// LoadConfig loads the global configuration or exits
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
