package api

import (
	"sync"

	"github.com/hackday-platform/judging-api/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
}

type StorageConfig struct {
	TableNameSubmissions string
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	// Judges maps a judge token to the judge identity it authenticates.
	Judges map[string]string
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameSubmissions: viper.GetString("storage.TableNameSubmissions"),
		},
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		AuthConfig: AuthConfig{
			Judges: viper.GetStringMapString("auth.judges"),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	if len(conf.Judges) == 0 {
		logging.Log.Warn("no judge tokens configured, every judging route will reject")
	}

	return conf
}
