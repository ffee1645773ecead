package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)
	viper.SetDefault("API_TIMEOUT", "30s")

	viper.SetDefault("TOPOLOGY_PATH", "./data/junctions.json")
	viper.SetDefault("ROAD_LENGTHS_PATH", "./data/road_lengths.json")

	viper.SetDefault("FLOOD_CSV_URL", "")
	viper.SetDefault("FLOOD_POLL_INTERVAL", 5*time.Second)
	viper.SetDefault("FLOOD_FETCH_TIMEOUT", 10*time.Second)
}

// ReadConfig loads ./data/config.yaml on top of the defaults. a missing config file is not fatal,
// every key can also come from the environment.
func ReadConfig() error {
	SetConfigDefaults()
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
