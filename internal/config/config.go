package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	_ "time/tzdata" // display.timezone accepts IANA names on hosts without zoneinfo.
)

type Config struct {
	DB      DBConfig      `toml:"database"`
	User    UserConfig    `toml:"user"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // File path, file: URI or libsql:// URL.
}

type UserConfig struct {
	ID string `toml:"id"`
}

type LogConfig struct {
	Level    string `toml:"level"`
	File     string `toml:"file"`
	ToStderr bool   `toml:"to_stderr"`
	JSON     bool   `toml:"json"`
}

type DisplayConfig struct {
	Timezone string `toml:"timezone"` // IANA name; empty means the host zone.
}

const (
	DefaultUserID   = "local"
	DefaultLogLevel = "warn"
	devDatabaseURL  = "file:./local.db?cache=shared&mode=rwc"
)

// GetConfigDir returns ~/.config/liftlog.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "liftlog"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default keeps the database next to the config file.
func Default(dir string) *Config {
	return &Config{
		DB:   DBConfig{ConnectionString: filepath.Join(dir, "liftlog.db")},
		User: UserConfig{ID: DefaultUserID},
		Log:  LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads the config file at path (the default location when empty), then
// applies .env and environment overrides. A missing file means defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default(filepath.Dir(path))
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key   string
		field *string
	}{
		{"LIFTLOG_DATABASE_URL", &c.DB.ConnectionString},
		{"LIFTLOG_USER_ID", &c.User.ID},
		{"LIFTLOG_LOG_LEVEL", &c.Log.Level},
		{"LIFTLOG_LOG_FILE", &c.Log.File},
		{"LIFTLOG_TIMEZONE", &c.Display.Timezone},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.field = v
		}
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		c.DB.ConnectionString = devDatabaseURL
	}
}

func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.DB.ConnectionString) == "" {
		problems = append(problems, "database.connection_string is empty")
	}
	if strings.TrimSpace(c.User.ID) == "" {
		problems = append(problems, "user.id is empty")
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location is the zone used for calendar dates.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("display.timezone: %w", err)
	}
	return loc, nil
}

// Write stores c as TOML at path, creating the directory if needed.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
