package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Session  SessionConfig  `mapstructure:"session"`
	AI       AIConfig       `mapstructure:"ai"`
	S3       S3Config       `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Type         string `mapstructure:"type"` // postgres or sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// OAuthConfig configures the external identity provider. ClientID and
// ClientSecret have no defaults and must be supplied.
type OAuthConfig struct {
	IssuerURL    string `mapstructure:"issuer_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type SessionConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Secure bool          `mapstructure:"secure"`
	Domain string        `mapstructure:"domain"`
}

// AIConfig configures the external text-generation endpoint.
type AIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars: oauth.client_id -> OAUTH_CLIENT_ID
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.type", "postgres")
	viper.SetDefault("database.dsn", "host=localhost user=gym password=gym dbname=gym_tracker port=5432 sslmode=disable")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("session.ttl", "720h")
	viper.SetDefault("session.secure", false)
	viper.SetDefault("ai.base_url", "http://localhost:11434")
	viper.SetDefault("ai.model", "llama3")
	viper.SetDefault("ai.timeout", "120s")
	viper.SetDefault("s3.use_ssl", true)

	// Keys without a real default still need one registered, or
	// AutomaticEnv never surfaces them through Unmarshal.
	for _, key := range []string{
		"oauth.issuer_url", "oauth.client_id", "oauth.client_secret", "oauth.redirect_url",
		"session.domain",
		"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name",
	} {
		viper.SetDefault(key, "")
	}

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; env vars and defaults can carry it all.
		err = nil
	} else if err != nil {
		return
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	// The identity provider credentials are the only hard requirement.
	if config.OAuth.ClientID == "" || config.OAuth.ClientSecret == "" {
		return config, errors.New("oauth.client_id and oauth.client_secret are required")
	}

	return config, nil
}

// CookieName returns the session cookie name. Secure deployments use the
// __Secure- prefix so browsers enforce the secure attribute.
func (s SessionConfig) CookieName() string {
	if s.Secure {
		return "__Secure-gym-tracker.session-token"
	}
	return "gym-tracker.session-token"
}
