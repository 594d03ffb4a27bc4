package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds service configuration. Every key can be set in the optional
// config file named by TAX_FOOTPRINT_CONFIG or overridden by an environment
// variable of the same name in upper case.
type Config struct {
	Port                    string `mapstructure:"port"`
	DatabaseURL             string `mapstructure:"database_url"`
	TaxRatesPath            string `mapstructure:"tax_rates_path"`
	AdminEnabled            bool   `mapstructure:"admin_enabled"`
	AdminUsername           string `mapstructure:"admin_username"`
	AdminPassword           string `mapstructure:"admin_password"`
	EnableSubmissionLogging bool   `mapstructure:"enable_submission_logging"`
	GeoLookupURL            string `mapstructure:"geo_lookup_url"`
	Debug                   bool   `mapstructure:"debug"`
}

func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("tax_rates_path", "data/tax_rates.yml")
	v.SetDefault("admin_enabled", true)
	v.SetDefault("admin_username", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("enable_submission_logging", false)
	v.SetDefault("geo_lookup_url", "http://ip-api.com/json/")
	v.SetDefault("debug", false)

	if cfgPath := os.Getenv("TAX_FOOTPRINT_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return c, nil
}

// AdminAuthConfigured reports whether basic auth credentials are set.
func (c Config) AdminAuthConfigured() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}
