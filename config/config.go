package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port         string `mapstructure:"PORT"`
	Timezone     string `mapstructure:"TZ"`
	DBPath       string `mapstructure:"DB_PATH"`
	DefaultLang  string `mapstructure:"DEFAULT_LANG"`
	SeedDemo     bool   `mapstructure:"SEED_DEMO"`
	RequireAuth  bool   `mapstructure:"REQUIRE_AUTH"`
	ScheduleCSV  string `mapstructure:"SCHEDULE_CSV"`
	ScheduleXLSX string `mapstructure:"SCHEDULE_XLSX"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogFormat    string `mapstructure:"LOG_FORMAT"`
}

var keys = []string{
	"PORT", "TZ", "DB_PATH", "DEFAULT_LANG", "SEED_DEMO", "REQUIRE_AUTH",
	"SCHEDULE_CSV", "SCHEDULE_XLSX", "LOG_LEVEL", "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("TZ", "Asia/Kolkata")
	v.SetDefault("DB_PATH", "krishi.db")
	v.SetDefault("DEFAULT_LANG", "en")
	v.SetDefault("SEED_DEMO", true)
	v.SetDefault("REQUIRE_AUTH", false)
	v.SetDefault("SCHEDULE_CSV", "")
	v.SetDefault("SCHEDULE_XLSX", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads .env, then an optional config file named by KRISHI_CONFIG, then the
// environment. Later sources win.
func Load() (AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	if path := v.GetString("KRISHI_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DefaultLang = strings.ToLower(strings.TrimSpace(cfg.DefaultLang))
	if cfg.Port == "" {
		return AppConfig{}, fmt.Errorf("config: PORT is empty")
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to UTC when the zone is unknown.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
