package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	defaultLocation = "Delhi"

	configPathEnv     = "SAFESPACE_CONFIG"
	serverAddrEnv     = "SERVER_ADDR"
	allowedOriginEnv  = "CORS_ALLOWED_ORIGIN"
	newsProviderEnv   = "NEWS_PROVIDER"
	newsAPIKeyEnv     = "NEWSAPI_KEY"
	adviceAPIKeyEnv   = "OPENROUTER_API_KEY"
	adviceModelEnv    = "OPENROUTER_MODEL"
	adviceEndpointEnv = "ADVICE_ENDPOINT"
	linearModelEnv    = "ML_LINEAR_MODEL"
	vocabEnv          = "ML_VOCAB"
	inferenceURLEnv   = "ML_INFERENCE_URL"
	modelNameEnv      = "ML_MODEL_NAME"
	scanCronEnv       = "SCAN_CRON"
	scanLocationEnv   = "SCAN_LOCATION"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
	logFileEnv        = "LOG_FILE"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server        ServerConfig       `yaml:"server"`
	News          NewsConfig         `yaml:"news"`
	Advice        AdviceConfig       `yaml:"advice"`
	ML            MLConfig           `yaml:"ml"`
	Scan          ScanConfig         `yaml:"scan"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// ServerConfig describes the HTTP listener and CORS policy.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowedOrigin"`
}

// NewsConfig groups settings for the news search providers.
type NewsConfig struct {
	Provider        string   `yaml:"provider"`
	Endpoint        string   `yaml:"endpoint"`
	RSSEndpoint     string   `yaml:"rssEndpoint"`
	APIKey          string   `yaml:"apiKey"`
	Language        string   `yaml:"language"`
	PageSize        int      `yaml:"pageSize"`
	DefaultLocation string   `yaml:"defaultLocation"`
	Keywords        []string `yaml:"keywords"`
}

// AdviceConfig defines how to contact the chat completion API.
type AdviceConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
}

// MLConfig describes the pre-trained model artifacts used by the offline job.
type MLConfig struct {
	LinearModelPath string  `yaml:"linearModelPath"`
	VocabPath       string  `yaml:"vocabPath"`
	InferenceURL    string  `yaml:"inferenceUrl"`
	ModelName       string  `yaml:"modelName"`
	MaxTokens       int     `yaml:"maxTokens"`
	Threshold       float64 `yaml:"threshold"`
}

// ScanConfig configures a single offline confirmation run.
type ScanConfig struct {
	Location    string `yaml:"location"`
	MaxArticles int    `yaml:"maxArticles"`
}

// SchedulerConfig defines when the offline job should repeat. An empty
// cron expression means a single pass.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatId"`
}

// LoggingConfig selects the log level and an optional rotating log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Server.Addr, serverAddrEnv)
	setString(&c.Server.AllowedOrigin, allowedOriginEnv)
	setString(&c.News.Provider, newsProviderEnv)
	setString(&c.News.APIKey, newsAPIKeyEnv)
	setString(&c.Advice.APIKey, adviceAPIKeyEnv)
	setString(&c.Advice.Model, adviceModelEnv)
	setString(&c.Advice.Endpoint, adviceEndpointEnv)
	setString(&c.ML.LinearModelPath, linearModelEnv)
	setString(&c.ML.VocabPath, vocabEnv)
	setString(&c.ML.InferenceURL, inferenceURLEnv)
	setString(&c.ML.ModelName, modelNameEnv)
	setString(&c.Scheduler.CronExpression, scanCronEnv)
	setString(&c.Scan.Location, scanLocationEnv)
	setString(&c.Notifications.Telegram.BotToken, telegramTokenEnv)
	setString(&c.Logging.Level, logLevelEnv)
	setString(&c.Logging.File, logFileEnv)

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			log.Printf("config: invalid %s %q: %v", telegramChatIDEnv, v, err)
		} else {
			c.Notifications.Telegram.ChatID = id
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	mergeString(&base.Server.Addr, override.Server.Addr)
	mergeString(&base.Server.AllowedOrigin, override.Server.AllowedOrigin)

	mergeString(&base.News.Provider, override.News.Provider)
	mergeString(&base.News.Endpoint, override.News.Endpoint)
	mergeString(&base.News.RSSEndpoint, override.News.RSSEndpoint)
	mergeString(&base.News.APIKey, override.News.APIKey)
	mergeString(&base.News.Language, override.News.Language)
	mergeString(&base.News.DefaultLocation, override.News.DefaultLocation)
	if override.News.PageSize > 0 {
		base.News.PageSize = override.News.PageSize
	}
	if len(override.News.Keywords) > 0 {
		base.News.Keywords = override.News.Keywords
	}

	mergeString(&base.Advice.Endpoint, override.Advice.Endpoint)
	mergeString(&base.Advice.Model, override.Advice.Model)
	mergeString(&base.Advice.APIKey, override.Advice.APIKey)
	if override.Advice.Timeout > 0 {
		base.Advice.Timeout = override.Advice.Timeout
	}

	mergeString(&base.ML.LinearModelPath, override.ML.LinearModelPath)
	mergeString(&base.ML.VocabPath, override.ML.VocabPath)
	mergeString(&base.ML.InferenceURL, override.ML.InferenceURL)
	mergeString(&base.ML.ModelName, override.ML.ModelName)
	if override.ML.MaxTokens > 0 {
		base.ML.MaxTokens = override.ML.MaxTokens
	}
	if override.ML.Threshold > 0 {
		base.ML.Threshold = override.ML.Threshold
	}

	mergeString(&base.Scan.Location, override.Scan.Location)
	if override.Scan.MaxArticles > 0 {
		base.Scan.MaxArticles = override.Scan.MaxArticles
	}

	mergeString(&base.Scheduler.CronExpression, override.Scheduler.CronExpression)
	mergeString(&base.Scheduler.Timezone, override.Scheduler.Timezone)

	mergeString(&base.Notifications.Telegram.BotToken, override.Notifications.Telegram.BotToken)
	if override.Notifications.Telegram.ChatID != 0 {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	mergeString(&base.Logging.Level, override.Logging.Level)
	mergeString(&base.Logging.File, override.Logging.File)
	if override.Logging.MaxSizeMB > 0 {
		base.Logging.MaxSizeMB = override.Logging.MaxSizeMB
	}
	if override.Logging.MaxBackups > 0 {
		base.Logging.MaxBackups = override.Logging.MaxBackups
	}
	if override.Logging.MaxAgeDays > 0 {
		base.Logging.MaxAgeDays = override.Logging.MaxAgeDays
	}

	return base
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server: ServerConfig{
			Addr:          ":8000",
			AllowedOrigin: "http://localhost:3000",
		},
		News: NewsConfig{
			Provider:        "newsapi",
			Endpoint:        "https://newsapi.org/v2/everything",
			RSSEndpoint:     "https://news.google.com/rss/search",
			Language:        "en",
			PageSize:        20,
			DefaultLocation: defaultLocation,
			Keywords: []string{
				"attack", "violence", "theft", "shooting", "assault", "kidnap",
				"fire", "riot", "accident", "flood", "earthquake",
			},
		},
		Advice: AdviceConfig{
			Endpoint: "https://openrouter.ai/api/v1",
			Model:    "mistralai/mistral-7b-instruct:free",
			Timeout:  60 * time.Second,
		},
		ML: MLConfig{
			LinearModelPath: "models/threat_nbsvm.json",
			VocabPath:       "models/vocab.txt",
			InferenceURL:    "http://localhost:8001",
			ModelName:       "threat_bert",
			MaxTokens:       128,
			Threshold:       0.6,
		},
		Scan: ScanConfig{
			Location:    defaultLocation,
			MaxArticles: 10,
		},
		Scheduler: SchedulerConfig{Timezone: defaultTimezone, location: tz},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
