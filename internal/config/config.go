package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the harbinger system.
type Config struct {
	Storage Storage       `yaml:"storage"`
	Server  Server        `yaml:"server"`
	OANDA   OANDA         `yaml:"oanda"`
	Alpaca  Alpaca        `yaml:"alpaca"`
	Logging Logging       `yaml:"logging"`
	News    NewsConfig    `yaml:"news"`
	Trading TradingConfig `yaml:"trading"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir       string `yaml:"data_dir"`
	SQLitePath    string `yaml:"sqlite_path"`
	HeartbeatPath string `yaml:"heartbeat_path"`
}

// Server holds network listener configuration.
type Server struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	GRPCPort int    `yaml:"grpc_port"`
}

// OANDA holds credentials and the endpoint for the OANDA v3 REST API.
type OANDA struct {
	Host      string `yaml:"host"`
	Token     string `yaml:"token"`
	AccountID string `yaml:"account_id"`
}

// Alpaca holds credentials for the Alpaca market-news API. Optional; when
// empty the news fetcher runs on RSS sources only.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewsConfig controls headline acquisition.
type NewsConfig struct {
	MaxHeadlines    int `yaml:"max_headlines"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
}

// TradingConfig defines the engine's admission, sizing, and execution
// parameters.
type TradingConfig struct {
	Instrument         string  `yaml:"instrument"`
	SentimentThreshold float64 `yaml:"sentiment_threshold"`
	// MinSpread is the maximum acceptable spread: quotes wider than this are
	// rejected. The inverted name matches the externally observed knob
	// (BOT_MIN_SPREAD) and is kept for config compatibility.
	MinSpread        float64 `yaml:"min_spread"`
	MaxConcurrent    int     `yaml:"max_concurrent"`
	CooldownMin      float64 `yaml:"cooldown_min"`
	CheckIntervalMin float64 `yaml:"check_interval_min"`
	TakeProfitPips   float64 `yaml:"tp_pips"`
	StopLossPips     float64 `yaml:"sl_pips"`
	RiskUSD          float64 `yaml:"risk_usd"`
	MaxDailyLossUSD  float64 `yaml:"max_daily_loss_usd"`
	DryRun           bool    `yaml:"dry_run"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies environment variable overrides, and validates it.
// Validation failure is returned as an error and is intended to be fatal at
// process start.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the trading and news parameters. All numeric knobs must be
// positive; the sentiment threshold is a magnitude and only needs to be
// non-negative. A zero news rate would starve the fetcher mid-cycle, so it is
// rejected here rather than discovered in the loop.
func (c *Config) Validate() error {
	t := &c.Trading
	if t.Instrument == "" {
		return fmt.Errorf("trading.instrument must be set")
	}
	if t.SentimentThreshold < 0 {
		return fmt.Errorf("trading.sentiment_threshold must be non-negative, got %v", t.SentimentThreshold)
	}
	positives := []struct {
		name  string
		value float64
	}{
		{"trading.min_spread", t.MinSpread},
		{"trading.max_concurrent", float64(t.MaxConcurrent)},
		{"trading.cooldown_min", t.CooldownMin},
		{"trading.check_interval_min", t.CheckIntervalMin},
		{"trading.tp_pips", t.TakeProfitPips},
		{"trading.sl_pips", t.StopLossPips},
		{"trading.risk_usd", t.RiskUSD},
		{"trading.max_daily_loss_usd", t.MaxDailyLossUSD},
		{"news.max_headlines", float64(c.News.MaxHeadlines)},
		{"news.rate_limit_per_min", float64(c.News.RateLimitPerMin)},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}
	return nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("HEARTBEAT_PATH"); v != "" {
		cfg.Storage.HeartbeatPath = v
	}

	if v := os.Getenv("OANDA_HOST"); v != "" {
		cfg.OANDA.Host = v
	}
	if v := os.Getenv("OANDA_TOKEN"); v != "" {
		cfg.OANDA.Token = v
	}
	if v := os.Getenv("OANDA_ACCOUNT"); v != "" {
		cfg.OANDA.AccountID = v
	}

	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Strategy knobs keep their BOT_* names from the original deployment.
	if v := os.Getenv("BOT_INSTRUMENT"); v != "" {
		cfg.Trading.Instrument = v
	}
	if v, ok := envFloat("BOT_SENT_THRESHOLD"); ok {
		cfg.Trading.SentimentThreshold = v
	}
	if v, ok := envFloat("BOT_MIN_SPREAD"); ok {
		cfg.Trading.MinSpread = v
	}
	if v, ok := envInt("BOT_MAX_CONCURRENT"); ok {
		cfg.Trading.MaxConcurrent = v
	}
	if v, ok := envFloat("BOT_COOLDOWN_MIN"); ok {
		cfg.Trading.CooldownMin = v
	}
	if v, ok := envFloat("BOT_TRADE_INTERVAL_MIN"); ok {
		cfg.Trading.CheckIntervalMin = v
	}
	if v, ok := envFloat("BOT_TP_PIPS"); ok {
		cfg.Trading.TakeProfitPips = v
	}
	if v, ok := envFloat("BOT_SL_PIPS"); ok {
		cfg.Trading.StopLossPips = v
	}
	if v, ok := envFloat("BOT_RISK_USD"); ok {
		cfg.Trading.RiskUSD = v
	}
	if v, ok := envFloat("BOT_MAX_DAILY_LOSS"); ok {
		cfg.Trading.MaxDailyLossUSD = v
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		cfg.Trading.DryRun = strings.EqualFold(v, "true") || v == "1"
	}
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
