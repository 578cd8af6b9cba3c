package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Режимы показа вопроса.
const (
	ModePoll    = "poll"
	ModeButtons = "buttons"
)

// Config содержит всю конфигурацию бота.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	Periodic PeriodicConfig `yaml:"periodic"`
	Status   StatusConfig   `yaml:"status"`
	Log      LogConfig      `yaml:"log"`
}

type TelegramConfig struct {
	Token       string        `yaml:"token"`
	PollTimeout time.Duration `yaml:"poll_timeout"`
}

type GeminiConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

type QuizConfig struct {
	Topic          string        `yaml:"topic"`
	Mode           string        `yaml:"mode"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	Workers        int           `yaml:"workers"`
}

type SessionConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	Capacity int           `yaml:"capacity"`
}

// RedisConfig включает общий кэш сессий, если задан Addr.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PeriodicConfig описывает рассылку квизов по таймеру. ChatID == 0 выключает рассылку.
type PeriodicConfig struct {
	ChatID   int64         `yaml:"chat_id"`
	Interval time.Duration `yaml:"interval"`
}

type StatusConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 30 * time.Second,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.85,
		},
		Quiz: QuizConfig{
			Topic:          "Cucumber and Capybara testing",
			Mode:           ModePoll,
			MaxRetries:     3,
			RetryBaseDelay: time.Second,
			Workers:        4,
		},
		Session: SessionConfig{
			TTL:      time.Hour,
			Capacity: 10000,
		},
		Periodic: PeriodicConfig{
			Interval: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "color",
		},
	}
}

// Load собирает конфигурацию по слоям: значения по умолчанию, YAML файл path
// (если задан), файл .env в рабочей директории, переменные окружения.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и допустимые значения.
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("missing telegram token (TELEGRAM_TOKEN)"))
	}

	if c.Telegram.PollTimeout < time.Second {
		errs = append(errs, errors.New("poll timeout must be at least 1s"))
	}

	if c.Gemini.APIKey == "" {
		errs = append(errs, errors.New("missing gemini api key (GOOGLE_API_KEY)"))
	}

	if c.Quiz.Mode != ModePoll && c.Quiz.Mode != ModeButtons {
		errs = append(errs, fmt.Errorf("unknown quiz mode %q", c.Quiz.Mode))
	}

	if c.Quiz.MaxRetries < 1 {
		errs = append(errs, errors.New("max retries must be at least 1"))
	}

	if c.Quiz.Workers < 1 {
		errs = append(errs, errors.New("workers must be at least 1"))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}

	if c.Session.Capacity < 1 {
		errs = append(errs, errors.New("session capacity must be at least 1"))
	}

	if c.Periodic.ChatID != 0 && c.Periodic.Interval <= 0 {
		errs = append(errs, errors.New("periodic interval must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) applyEnv() error {
	var errs []error

	setString(&c.Telegram.Token, "TELEGRAM_TOKEN")
	errs = append(errs, setDuration(&c.Telegram.PollTimeout, "POLL_TIMEOUT"))

	setString(&c.Gemini.APIKey, "GOOGLE_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")
	errs = append(errs, setFloat32(&c.Gemini.Temperature, "GEMINI_TEMPERATURE"))

	setString(&c.Quiz.Topic, "QUIZ_TOPIC")
	setString(&c.Quiz.Mode, "QUIZ_MODE")
	errs = append(errs,
		setInt(&c.Quiz.MaxRetries, "MAX_RETRIES"),
		setDuration(&c.Quiz.RetryBaseDelay, "RETRY_BASE_DELAY"),
		setInt(&c.Quiz.Workers, "WORKERS"),
		setDuration(&c.Session.TTL, "SESSION_TTL"),
		setInt(&c.Session.Capacity, "SESSION_CAPACITY"),
	)

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	errs = append(errs, setInt(&c.Redis.DB, "REDIS_DB"))

	errs = append(errs,
		setInt64(&c.Periodic.ChatID, "PERIODIC_CHAT_ID"),
		setDuration(&c.Periodic.Interval, "PERIODIC_INTERVAL"),
	)

	setString(&c.Status.Addr, "STATUS_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	c.Quiz.Mode = strings.ToLower(strings.TrimSpace(c.Quiz.Mode))

	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat32(dst *float32, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}

	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = float32(f)
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
