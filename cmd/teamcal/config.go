package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"teamcal/internal/backend"
	"teamcal/internal/logger"
	internalhttp "teamcal/internal/server/http"
)

const envConfigPrefix = "$env:"

type RefreshConfig struct {
	Cron string
}

type Config struct {
	Backend      backend.Config
	StatusServer internalhttp.Config
	Logger       logger.Config
	Refresh      RefreshConfig
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	viper.SetConfigFile(configFile)

	viper.SetDefault("backend.baseurl", "http://127.0.0.1:8000")
	viper.SetDefault("backend.sessioncookie", "")
	viper.SetDefault("statusServer.host", "127.0.0.1")
	viper.SetDefault("statusServer.port", "8014")
	viper.SetDefault("logger.level", "WARN")
	viper.SetDefault("refresh.cron", "*/5 * * * *")

	err := viper.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	keys := viper.AllKeys()
	for _, key := range keys {
		env := viper.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			err := viper.BindEnv(key, env[len(envConfigPrefix):])
			if err != nil {
				return Config{}, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
