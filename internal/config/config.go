package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for database.driver.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// Mode is passed to gin.SetMode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig selects the storage backend.
// DSN is used by the sqlite driver, URI and Name by the mongo driver.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// S3Config configures exercise video storage. Media routes are disabled
// when BucketName is empty.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig configures bearer tokens. Authentication is off when Secret is empty.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	// Required makes write routes reject requests without a token.
	Required bool `mapstructure:"required"`
}

// Enabled reports whether a signing secret is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// LoadConfig reads config.yaml from path, then applies environment overrides
// (server.address -> SERVER_ADDRESS). A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "workouthub.db")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workouthub")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("jwt.required", false)
	// Declared so AutomaticEnv can see them through Unmarshal.
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.DSN == "" {
			return errors.New("config: database.dsn is required for the sqlite driver")
		}
	case DriverMongo:
		if c.Database.URI == "" || c.Database.Name == "" {
			return errors.New("config: database.uri and database.name are required for the mongo driver")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.JWT.Required && !c.JWT.Enabled() {
		return errors.New("config: jwt.required needs jwt.secret")
	}
	return nil
}
