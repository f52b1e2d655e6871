package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location, overridable via CONFIG_PATH.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML. Secrets are expected
// to arrive via environment overrides, not the file.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`
	AppURL   string `yaml:"appURL"`

	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	MaxAuditsPerDay  int  `yaml:"maxAuditsPerDay"`
	EnforceRateLimit bool `yaml:"enforceRateLimit"`

	AnthropicBaseURL string `yaml:"anthropicBaseURL"`
	AnthropicAPIKey  string `yaml:"anthropicApiKey"`
	AnthropicModel   string `yaml:"anthropicModel"`

	ScrapeNavigateTimeoutSeconds int `yaml:"scrapeNavigateTimeoutSeconds"`
	ScrapeLandmarkTimeoutSeconds int `yaml:"scrapeLandmarkTimeoutSeconds"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`

	MailBaseURL string `yaml:"mailBaseURL"`
	MailAPIKey  string `yaml:"mailApiKey"`
	MailFrom    string `yaml:"mailFrom"`

	CheckoutBaseURL   string `yaml:"checkoutBaseURL"`
	CheckoutAPIKey    string `yaml:"checkoutApiKey"`
	CheckoutStoreID   string `yaml:"checkoutStoreID"`
	CheckoutVariantID string `yaml:"checkoutVariantID"`
	WebhookSecret     string `yaml:"webhookSecret"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("APP_URL"); v != "" {
		cfg.AppURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("MAX_AUDITS_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.MaxAuditsPerDay = n
		}
	}
	if v := os.Getenv("ENFORCE_RATE_LIMIT"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.EnforceRateLimit = b
		}
	}
	if v := os.Getenv("ANTHROPIC_BASE_URL"); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		cfg.AnthropicModel = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MinioUseSSL = b
		}
	}
	if v := os.Getenv("MAIL_BASE_URL"); v != "" {
		cfg.MailBaseURL = v
	}
	if v := os.Getenv("MAIL_API_KEY"); v != "" {
		cfg.MailAPIKey = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.MailFrom = v
	}
	if v := os.Getenv("CHECKOUT_BASE_URL"); v != "" {
		cfg.CheckoutBaseURL = v
	}
	if v := os.Getenv("CHECKOUT_API_KEY"); v != "" {
		cfg.CheckoutAPIKey = v
	}
	if v := os.Getenv("CHECKOUT_STORE_ID"); v != "" {
		cfg.CheckoutStoreID = v
	}
	if v := os.Getenv("CHECKOUT_VARIANT_ID"); v != "" {
		cfg.CheckoutVariantID = v
	}
	if v := os.Getenv("WEBHOOK_SECRET"); v != "" {
		cfg.WebhookSecret = v
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if strings.TrimSpace(cfg.AppURL) == "" {
		return errors.New("config: appURL is required (set in config.yaml or APP_URL)")
	}
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return errors.New("config: redisAddr is required (set in config.yaml or REDIS_ADDR)")
	}
	if cfg.MaxAuditsPerDay <= 0 {
		return errors.New("config: maxAuditsPerDay must be > 0")
	}
	if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
		return errors.New("config: anthropicApiKey is required (set ANTHROPIC_API_KEY)")
	}
	if strings.TrimSpace(cfg.AnthropicModel) == "" {
		return errors.New("config: anthropicModel is required")
	}
	if strings.TrimSpace(cfg.MinioEndpoint) == "" || strings.TrimSpace(cfg.MinioBucket) == "" {
		return errors.New("config: minioEndpoint and minioBucket are required for report storage")
	}
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		return errors.New("config: webhookSecret is required (set WEBHOOK_SECRET)")
	}
	return nil
}
