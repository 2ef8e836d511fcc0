package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Grader       Grader
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Grader configures the free-text grading delegate. Provider is "http"
// (default) or "gemini".
type Grader struct {
	Provider string
	URL      string
	Timeout  time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("GRADER_PROVIDER", "http")
	viper.SetDefault("GRADER_URL", "http://localhost:8001/evaluate")
	viper.SetDefault("GRADER_TIMEOUT_MS", 5000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Grader.Provider = viper.GetString("GRADER_PROVIDER")
	config.Grader.URL = viper.GetString("GRADER_URL")
	config.Grader.Timeout = time.Duration(viper.GetInt("GRADER_TIMEOUT_MS")) * time.Millisecond
	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("port", config.Server.Port).Str("grader", config.Grader.Provider).Msg("Config loaded")
	return &config, nil
}
