package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all relabel configuration.
type Config struct {
	Logger      LoggerConfig
	LabelStudio LabelStudioConfig
	Relabel     RelabelConfig
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type LabelStudioConfig struct {
	URL               string
	Token             string
	AuthScheme        string // "Token" (legacy API key) or "Bearer"
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

type RelabelConfig struct {
	Concurrency  int
	ControlName  string
	ResultFields []string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/relabel/.
// A non-empty path is read instead of searching.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/relabel/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	cfg.LabelStudio.URL = v.GetString("label_studio.url")
	cfg.LabelStudio.Token = v.GetString("label_studio.token")
	cfg.LabelStudio.AuthScheme = v.GetString("label_studio.auth_scheme")
	cfg.LabelStudio.Timeout = v.GetDuration("label_studio.timeout")
	cfg.LabelStudio.RequestsPerSecond = v.GetFloat64("label_studio.requests_per_second")
	cfg.LabelStudio.Burst = v.GetInt("label_studio.burst")
	if lsURL := v.GetString("label_studio_url"); lsURL != "" {
		cfg.LabelStudio.URL = lsURL
	}
	if lsToken := v.GetString("label_studio_token"); lsToken != "" {
		cfg.LabelStudio.Token = lsToken
	}

	cfg.Relabel.Concurrency = v.GetInt("relabel.concurrency")
	cfg.Relabel.ControlName = v.GetString("relabel.control_name")
	cfg.Relabel.ResultFields = splitList(v.GetStringSlice("relabel.result_fields"))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("label_studio.url", "http://localhost:8080")
	v.SetDefault("label_studio.auth_scheme", "Token")
	v.SetDefault("label_studio.timeout", "30s")
	v.SetDefault("label_studio.requests_per_second", 0)
	v.SetDefault("label_studio.burst", 1)

	v.SetDefault("relabel.concurrency", 8)
	v.SetDefault("relabel.control_name", "label")
	v.SetDefault("relabel.result_fields", []string{"rectanglelabels"})
}

func validate(cfg *Config) error {
	if cfg.LabelStudio.URL == "" {
		return fmt.Errorf("label_studio.url is required")
	}
	if cfg.LabelStudio.Token == "" {
		return fmt.Errorf("label_studio.token is required - set it in config.yaml or LABEL_STUDIO_TOKEN")
	}
	if cfg.Relabel.Concurrency < 1 {
		return fmt.Errorf("relabel.concurrency must be at least 1, got %d", cfg.Relabel.Concurrency)
	}
	return nil
}

// splitList flattens comma separated entries, since a list coming from an
// env var arrives as a single string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
