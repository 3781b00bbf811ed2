// @title Hackathon Judging API
// @version 1.0
// @description Backend API coordinating submission judging, finalist scoring and winner ranking

// @securityDefinitions.apikey JudgeToken
// @in header
// @name x-judge-token
package main

import (
	_ "github.com/hackday-platform/judging-api/docs"

	"github.com/hackday-platform/judging-api/api"
	"github.com/hackday-platform/judging-api/logging"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
