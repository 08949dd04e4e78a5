package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

type SheetsConfig struct {
	ScriptURL string `mapstructure:"scriptURL"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type SeedConfig struct {
	OnStartup bool `mapstructure:"onStartup"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// LoadConfig reads the configuration from file and overrides it with
// environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("sheets.scriptURL", "SHEETS_SCRIPT_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("seed.onStartup", "SEED_ON_STARTUP")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("seed.onStartup", false)

	// Reading the file is optional, env vars alone are enough.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
