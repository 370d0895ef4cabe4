package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr       string `mapstructure:"addr"`
	DBPath         string `mapstructure:"db_path"`
	BlobBackend    string `mapstructure:"blob_backend"`
	BlobDir        string `mapstructure:"blob_dir"`
	PublicURL      string `mapstructure:"public_url"`
	S3Bucket       string `mapstructure:"s3_bucket"`
	S3Region       string `mapstructure:"s3_region"`
	S3Endpoint     string `mapstructure:"s3_endpoint"`
	GCSBucket      string `mapstructure:"gcs_bucket"`
	GelfAddr       string `mapstructure:"gelf_addr"`
	ExportTimezone string `mapstructure:"export_timezone"`
	MaxUploadMB    int64  `mapstructure:"max_upload_mb"`
}

var defaults = map[string]any{
	"addr":            ":8080",
	"db_path":         "data/portal.db",
	"blob_backend":    "local",
	"blob_dir":        "data/files",
	"public_url":      "",
	"s3_bucket":       "",
	"s3_region":       "us-east-1",
	"s3_endpoint":     "",
	"gcs_bucket":      "",
	"gelf_addr":       "",
	"export_timezone": "Local",
	"max_upload_mb":   32,
}

// Load reads defaults, an optional YAML file and PORTAL_* environment
// variables, in increasing order of precedence. The S3 region and endpoint
// also honour the standard AWS_REGION and AWS_ENDPOINT_URL variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("s3_region", "PORTAL_S3_REGION", "AWS_REGION")
	v.BindEnv("s3_endpoint", "PORTAL_S3_ENDPOINT", "AWS_ENDPOINT_URL")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.BlobBackend {
	case "local":
		if c.BlobDir == "" {
			return fmt.Errorf("config: blob_dir is required for the local backend")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("config: s3_bucket is required for the s3 backend")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("config: gcs_bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("config: unknown blob_backend %q", c.BlobBackend)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: max_upload_mb must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the timezone export timestamps are rendered in.
func (c *Config) Location() (*time.Location, error) {
	if c.ExportTimezone == "" || c.ExportTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.ExportTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: export_timezone: %w", err)
	}
	return loc, nil
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
