package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // Request zones must resolve on minimal images

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Time     TimeConfig     `mapstructure:"time"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig selects the document store. Driver is "mongo" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// RedisConfig is optional; an empty Addr disables the catalog cache and
// keeps device flags in the database store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// S3Config is optional; an empty BucketName disables media signing.
type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// JWTConfig holds the shared secret used to verify bearer tokens issued by
// the auth provider. The token subject is the user id.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// AdminConfig holds the bcrypt hash of the operator key. Empty disables admin routes.
type AdminConfig struct {
	KeyHash string `mapstructure:"key_hash"`
}

type LoggingConfig struct {
	Mode string `mapstructure:"mode"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// TimeConfig sets the zone used when a request does not name one.
type TimeConfig struct {
	DefaultZone string `mapstructure:"default_zone"`
}

// Location resolves DefaultZone. LoadConfig rejects unknown zones, so the UTC
// fallback only applies to an empty or hand-built TimeConfig.
func (t TimeConfig) Location() *time.Location {
	if t.DefaultZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.DefaultZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfig reads configuration from an optional .env file, an optional
// config.yaml in path, and environment variables (server.address -> SERVER_ADDRESS).
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "innovafit")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("admin.key_hash", "")
	v.SetDefault("logging.mode", "dev")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "innovafit-gym-backend")
	v.SetDefault("tracing.sample_ratio", 0.1)
	v.SetDefault("time.default_zone", "America/Lima")

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file; defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.JWT.Secret == "" {
		err = errors.New("jwt.secret is required")
		return
	}
	if config.Time.DefaultZone != "" {
		if _, zerr := time.LoadLocation(config.Time.DefaultZone); zerr != nil {
			err = fmt.Errorf("time.default_zone %q: %w", config.Time.DefaultZone, zerr)
			return
		}
	}
	return config, nil
}
