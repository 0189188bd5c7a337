package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env               string        `mapstructure:"ENV"`
	Port              string        `mapstructure:"PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	CORSAllowed       string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB   int64         `mapstructure:"MAX_UPLOAD_MB"`
	UploadDir         string        `mapstructure:"UPLOAD_DIR"`
	UploadBaseURL     string        `mapstructure:"UPLOAD_BASE_URL"`
	FileStore         string        `mapstructure:"FILE_STORE"`
	AgentDeletePolicy string        `mapstructure:"AGENT_DELETE_POLICY"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_BASE_URL", "/media")
	v.SetDefault("FILE_STORE", "disk")
	v.SetDefault("AGENT_DELETE_POLICY", "owner_only")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
