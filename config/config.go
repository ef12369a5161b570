package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	DB        Database        `mapstructure:"database"`
	API       API             `mapstructure:"api"`
	Trading   Trading         `mapstructure:"trading"`
	Predictor Predictor       `mapstructure:"predictor"`
	Cache     Cache           `mapstructure:"cache"`
	Scheduler SignalScheduler `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Trading memusatkan semua parameter simulasi dan pembobotan sinyal komposit
// yang sebelumnya tersebar sebagai konstanta. Nilai default ada di applyDefaults.
type Trading struct {
	TechnicalWeight float64 `mapstructure:"technical_weight"`
	MLWeight        float64 `mapstructure:"ml_weight"`
	SentimentWeight float64 `mapstructure:"sentiment_weight"`
	InitialCapital  float64 `mapstructure:"initial_capital"`
	PositionSize    float64 `mapstructure:"position_size"`
	StopLoss        float64 `mapstructure:"stop_loss"`
	MaxConcurrency  int     `mapstructure:"max_concurrency"`
	DefaultExchange string  `mapstructure:"default_exchange"`

	// Parameter kaskade compounding: porsi profit siklus yang diputar kembali
	// dan ukuran posisi minimum supaya kaskade berhenti saat modal habis.
	ReinvestmentRate float64 `mapstructure:"reinvestment_rate"`
	MinTradeSize     float64 `mapstructure:"min_trade_size"`
}

type Predictor struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
	BearerToken      string        `mapstructure:"bearer_token"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type SignalScheduler struct {
	Enabled      bool     `mapstructure:"enabled"`
	CronSchedule string   `mapstructure:"cron_schedule"`
	Watchlist    []string `mapstructure:"watchlist"`
}

func Load() (*Config, error) {
	// .env is optional, real environment variables win either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	// Bobot sinyal komposit: teknikal 40%, ML 35%, sentimen 25%.
	viper.SetDefault("trading.technical_weight", 0.4)
	viper.SetDefault("trading.ml_weight", 0.35)
	viper.SetDefault("trading.sentiment_weight", 0.25)
	viper.SetDefault("trading.initial_capital", 10000.0)
	viper.SetDefault("trading.position_size", 0.1)
	viper.SetDefault("trading.stop_loss", 0.05)
	viper.SetDefault("trading.max_concurrency", 4)
	viper.SetDefault("trading.default_exchange", "binance")
	viper.SetDefault("trading.reinvestment_rate", 0.8)
	viper.SetDefault("trading.min_trade_size", 10.0)

	viper.SetDefault("predictor.timeout", 10*time.Second)
	viper.SetDefault("predictor.max_request_per_min", 60)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.cron_schedule", "*/15 * * * *")
}
