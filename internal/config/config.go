package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIURL         = "https://api.github.com/"
	DefaultDebounce       = 250 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds application configuration loaded from the environment and an
// optional config file.
type Config struct {
	GitHubToken    string
	APIURL         string
	SlackMode      bool
	DebugMode      bool
	Debounce       time.Duration
	RequestTimeout time.Duration

	// S3Bucket and S3ObjectKey are only used by the Lambda handler.
	S3Bucket    string
	S3ObjectKey string
	AWSRegion   string
}

// TokenConfigured reports whether requests are authenticated.
func (c Config) TokenConfigured() bool {
	return c.GitHubToken != ""
}

// FromEnvironment creates a Config from environment variables.
func FromEnvironment() Config {
	cfg, _ := Load("")
	return cfg
}

// Load reads configuration from the environment, layered over configFile
// when one is given. Environment variables win.
func Load(configFile string) (Config, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fromViper(v), fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	return fromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("github_api_url", DefaultAPIURL)
	v.SetDefault("search_debounce", DefaultDebounce)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.AutomaticEnv()
	for _, key := range []string{"github_token", "slack_mode", "debug", "s3_bucket_name", "s3_object_key", "aws_region"} {
		_ = v.BindEnv(key)
	}
	return v
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		GitHubToken:    v.GetString("github_token"),
		APIURL:         v.GetString("github_api_url"),
		SlackMode:      truthy(v.GetString("slack_mode")),
		DebugMode:      truthy(v.GetString("debug")),
		Debounce:       v.GetDuration("search_debounce"),
		RequestTimeout: v.GetDuration("request_timeout"),
		S3Bucket:       v.GetString("s3_bucket_name"),
		S3ObjectKey:    v.GetString("s3_object_key"),
		AWSRegion:      v.GetString("aws_region"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return cfg
}

// truthy treats any value other than empty, "0" and "false" as set.
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "0" && strings.ToLower(s) != "false"
}
