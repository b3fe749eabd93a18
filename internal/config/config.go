package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Cache   CacheConfig
	Sources SourcesConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type CacheConfig struct {
	Enabled        bool
	RedisURL       string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	PlanTTLSeconds int
}

// SourcesConfig points at the four published-CSV inputs. Planning constants
// (cover targets, allocation cap, run-rate window) are fixed in code and
// deliberately not configurable here.
type SourcesConfig struct {
	SalesURL         string
	FCStockURL       string
	CentralStockURL  string
	RemarksURL       string
	FetchTimeoutSecs int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_PLAN_TTL_SECONDS", 300)
		viper.SetDefault("SOURCE_SALES_URL", "")
		viper.SetDefault("SOURCE_FC_STOCK_URL", "")
		viper.SetDefault("SOURCE_CENTRAL_STOCK_URL", "")
		viper.SetDefault("SOURCE_REMARKS_URL", "")
		viper.SetDefault("SOURCE_FETCH_TIMEOUT_SECONDS", 30)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Cache: CacheConfig{
				Enabled:        viper.GetBool("CACHE_ENABLED"),
				RedisURL:       viper.GetString("REDIS_URL"),
				RedisHost:      viper.GetString("REDIS_HOST"),
				RedisPort:      viper.GetString("REDIS_PORT"),
				RedisPassword:  viper.GetString("REDIS_PASSWORD"),
				RedisDB:        viper.GetInt("REDIS_DB"),
				PlanTTLSeconds: viper.GetInt("CACHE_PLAN_TTL_SECONDS"),
			},
			Sources: SourcesConfig{
				SalesURL:         viper.GetString("SOURCE_SALES_URL"),
				FCStockURL:       viper.GetString("SOURCE_FC_STOCK_URL"),
				CentralStockURL:  viper.GetString("SOURCE_CENTRAL_STOCK_URL"),
				RemarksURL:       viper.GetString("SOURCE_REMARKS_URL"),
				FetchTimeoutSecs: viper.GetInt("SOURCE_FETCH_TIMEOUT_SECONDS"),
			},
		}
	})

	return instance
}
