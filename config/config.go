package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Location   LocationConfig   `yaml:"location"`
	Store      StoreConfig      `yaml:"store"`
	Slack      SlackConfig      `yaml:"slack"`
	Export     ExportConfig     `yaml:"export"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
	// base64 HS256 secret used to verify dashboard tokens
	SigningSecret string `yaml:"signingSecret" validate:"required,base64"`
}

type AttendanceConfig struct {
	BaseURL         string `yaml:"baseUrl" validate:"required,url"`
	SigningSecret   string `yaml:"signingSecret" validate:"omitempty,base64"`
	TokenTTLSeconds int64  `yaml:"tokenTtlSeconds" validate:"gte=60"`
	BreakType       string `yaml:"breakType" validate:"required"`
}

type LocationConfig struct {
	TimeoutSeconds int          `yaml:"timeoutSeconds" validate:"gte=1,lte=60"`
	GeocoderURL    string       `yaml:"geocoderUrl" validate:"omitempty,url"`
	UserAgent      string       `yaml:"userAgent"`
	Device         *DeviceCoord `yaml:"device"`
}

// DeviceCoord pins a kiosk to a fixed position.
type DeviceCoord struct {
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	Accuracy  float64 `yaml:"accuracy" validate:"gte=0"`
}

type StoreConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"logLevel" validate:"omitempty,oneof=silent error warn info"`
	TimeZone string `yaml:"timeZone"`
}

type SlackConfig struct {
	Token          string `yaml:"token"`
	InfoChannelID  string `yaml:"infoChannel"`
	ErrorChannelID string `yaml:"errorChannel"`
}

type ExportConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

func (c LocationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: "0.0.0.0:8090"},
		Attendance: AttendanceConfig{
			TokenTTLSeconds: 3600,
			BreakType:       "general",
		},
		Location: LocationConfig{
			TimeoutSeconds: 10,
			UserAgent:      "punchclock/1.0",
		},
		Store: StoreConfig{
			Dir:      "data/snapshots",
			LogLevel: "warn",
			TimeZone: "UTC",
		},
		Export: ExportConfig{Prefix: "attendance/"},
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "ADDR")
	setString(&c.Server.SigningSecret, "SIGNING_SECRET")
	setString(&c.Attendance.BaseURL, "ATTENDANCE_URL")
	setString(&c.Attendance.SigningSecret, "ATTENDANCE_SIGNING_SECRET")
	setString(&c.Attendance.BreakType, "BREAK_TYPE")
	setString(&c.Location.GeocoderURL, "GEOCODER_URL")
	setString(&c.Store.Dir, "STORE_DIR")
	setString(&c.Store.DSN, "DSN")
	setString(&c.Store.LogLevel, "DB_LOG_LEVEL")
	setString(&c.Store.TimeZone, "TIME_ZONE")
	setString(&c.Slack.Token, "SLACK_BOT_TOKEN")
	setString(&c.Slack.InfoChannelID, "SLACK_INFO_CHANNEL")
	setString(&c.Slack.ErrorChannelID, "SLACK_ERROR_CHANNEL")
	setString(&c.Export.Bucket, "EXPORT_BUCKET")

	if v := os.Getenv("LOCATION_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOCATION_TIMEOUT_SECONDS: %w", err)
		}
		c.Location.TimeoutSeconds = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
