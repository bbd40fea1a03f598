package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
storage:
  data_dir: "/tmp/harbinger/data"
  sqlite_path: "/tmp/harbinger/harbinger.db"
  heartbeat_path: "/tmp/harbinger/heartbeat.json"
server:
  host: "0.0.0.0"
  port: 8080
  grpc_port: 9090
oanda:
  host: "https://api-fxpractice.oanda.com"
  token: "test-token"
  account_id: "test-account"
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
logging:
  level: "info"
  format: "json"
news:
  max_headlines: 10
  rate_limit_per_min: 30
trading:
  instrument: "EUR_USD"
  sentiment_threshold: 0.15
  min_spread: 0.0002
  max_concurrent: 3
  cooldown_min: 30
  check_interval_min: 1
  tp_pips: 38
  sl_pips: 25
  risk_usd: 500
  max_daily_loss_usd: 1500
  dry_run: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "harbinger.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATA_DIR", "SQLITE_PATH", "HEARTBEAT_PATH",
		"OANDA_HOST", "OANDA_TOKEN", "OANDA_ACCOUNT",
		"APCA_API_KEY_ID", "APCA_API_SECRET_KEY", "LOG_LEVEL",
		"BOT_INSTRUMENT", "BOT_SENT_THRESHOLD", "BOT_MIN_SPREAD",
		"BOT_MAX_CONCURRENT", "BOT_COOLDOWN_MIN", "BOT_TRADE_INTERVAL_MIN",
		"BOT_TP_PIPS", "BOT_SL_PIPS", "BOT_RISK_USD", "BOT_MAX_DAILY_LOSS",
		"DRY_RUN",
	} {
		os.Unsetenv(k)
	}
}

func TestLoadValid(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Storage.SQLitePath != "/tmp/harbinger/harbinger.db" {
		t.Errorf("Storage.SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Server.Port != 8080 || cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server ports = %d/%d, want 8080/9090", cfg.Server.Port, cfg.Server.GRPCPort)
	}
	if cfg.OANDA.Host != "https://api-fxpractice.oanda.com" {
		t.Errorf("OANDA.Host = %q", cfg.OANDA.Host)
	}
	if cfg.Trading.Instrument != "EUR_USD" {
		t.Errorf("Trading.Instrument = %q, want EUR_USD", cfg.Trading.Instrument)
	}
	if cfg.Trading.SentimentThreshold != 0.15 {
		t.Errorf("Trading.SentimentThreshold = %v, want 0.15", cfg.Trading.SentimentThreshold)
	}
	if cfg.Trading.MinSpread != 0.0002 {
		t.Errorf("Trading.MinSpread = %v, want 0.0002", cfg.Trading.MinSpread)
	}
	if cfg.Trading.MaxConcurrent != 3 {
		t.Errorf("Trading.MaxConcurrent = %d, want 3", cfg.Trading.MaxConcurrent)
	}
	if cfg.Trading.CooldownMin != 30 {
		t.Errorf("Trading.CooldownMin = %v, want 30", cfg.Trading.CooldownMin)
	}
	if !cfg.Trading.DryRun {
		t.Error("Trading.DryRun = false, want true")
	}
	if cfg.News.MaxHeadlines != 10 {
		t.Errorf("News.MaxHeadlines = %d, want 10", cfg.News.MaxHeadlines)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv("OANDA_TOKEN", "env-token")
	os.Setenv("BOT_RISK_USD", "750")
	os.Setenv("BOT_MAX_CONCURRENT", "5")
	os.Setenv("DRY_RUN", "false")
	defer clearEnv(t)

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.OANDA.Token != "env-token" {
		t.Errorf("OANDA.Token = %q, want env-token", cfg.OANDA.Token)
	}
	// account_id should remain from YAML since no env override was set.
	if cfg.OANDA.AccountID != "test-account" {
		t.Errorf("OANDA.AccountID = %q, want test-account", cfg.OANDA.AccountID)
	}
	if cfg.Trading.RiskUSD != 750 {
		t.Errorf("Trading.RiskUSD = %v, want 750 (env override)", cfg.Trading.RiskUSD)
	}
	if cfg.Trading.MaxConcurrent != 5 {
		t.Errorf("Trading.MaxConcurrent = %d, want 5 (env override)", cfg.Trading.MaxConcurrent)
	}
	if cfg.Trading.DryRun {
		t.Error("Trading.DryRun = true, want false (env override)")
	}
}

func TestValidateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing instrument", func(c *Config) { c.Trading.Instrument = "" }, "instrument"},
		{"negative threshold", func(c *Config) { c.Trading.SentimentThreshold = -0.1 }, "sentiment_threshold"},
		{"zero spread limit", func(c *Config) { c.Trading.MinSpread = 0 }, "min_spread"},
		{"zero max concurrent", func(c *Config) { c.Trading.MaxConcurrent = 0 }, "max_concurrent"},
		{"negative cooldown", func(c *Config) { c.Trading.CooldownMin = -1 }, "cooldown_min"},
		{"zero interval", func(c *Config) { c.Trading.CheckIntervalMin = 0 }, "check_interval_min"},
		{"zero tp", func(c *Config) { c.Trading.TakeProfitPips = 0 }, "tp_pips"},
		{"zero sl", func(c *Config) { c.Trading.StopLossPips = 0 }, "sl_pips"},
		{"zero risk", func(c *Config) { c.Trading.RiskUSD = 0 }, "risk_usd"},
		{"zero daily loss cap", func(c *Config) { c.Trading.MaxDailyLossUSD = 0 }, "max_daily_loss_usd"},
		{"zero max headlines", func(c *Config) { c.News.MaxHeadlines = 0 }, "max_headlines"},
		{"zero news rate limit", func(c *Config) { c.News.RateLimitPerMin = 0 }, "rate_limit_per_min"},
	}

	clearEnv(t)
	base, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}

	// A zero threshold is a magnitude of zero and must be accepted.
	cfg := *base
	cfg.Trading.SentimentThreshold = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with zero threshold = %v, want nil", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	clearEnv(t)
	bad := strings.Replace(validYAML, "sl_pips: 25", "sl_pips: 0", 1)
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatal("Load() with sl_pips=0 succeeded, want validation error")
	}
}
