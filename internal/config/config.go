package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Драйверы хранилища бронирований
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

// Config корневая конфигурация сервиса.
// Значения читаются из TOML файла, затем переопределяются переменными окружения.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Series    SeriesConfig    `toml:"series"`
	Reports   ReportsConfig   `toml:"reports"`
	Courses   []CourseConfig  `toml:"courses"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	// StoreTimeout ограничивает одно обращение к хранилищу (секунды)
	StoreTimeout int `toml:"store_timeout" env:"SERVER_STORE_TIMEOUT"`
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

type StorageConfig struct {
	Driver string `toml:"driver" env:"STORAGE_DRIVER"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type MongoConfig struct {
	URI        string `toml:"uri" env:"MONGO_URI"`
	Database   string `toml:"database" env:"MONGO_DATABASE"`
	Collection string `toml:"collection" env:"MONGO_COLLECTION"`
}

// RedisConfig настройки блокировки слотов. Пустой Addr отключает блокировку.
type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
	// LockTTL время жизни блокировки слота (миллисекунды)
	LockTTL int `toml:"lock_ttl" env:"REDIS_LOCK_TTL"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// RabbitMQConfig настройки публикации событий. Пустой URL отключает уведомления.
type RabbitMQConfig struct {
	URL      string `toml:"url" env:"RABBITMQ_URL"`
	Exchange string `toml:"exchange" env:"RABBITMQ_EXCHANGE"`
	// PublishTimeout ограничение на публикацию одного события (миллисекунды)
	PublishTimeout int `toml:"publish_timeout" env:"RABBITMQ_PUBLISH_TIMEOUT"`
}

func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

type AuthConfig struct {
	OperatorToken string `toml:"operator_token" env:"OPERATOR_TOKEN"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `toml:"burst" env:"RATE_LIMIT_BURST"`
}

type SeriesConfig struct {
	ConfirmationThreshold int `toml:"confirmation_threshold" env:"SERIES_CONFIRMATION_THRESHOLD"`
	InsertConcurrency     int `toml:"insert_concurrency" env:"SERIES_INSERT_CONCURRENCY"`
}

type ReportsConfig struct {
	// CategoryKey ключ группировки категорий: course_name или work_category
	CategoryKey string `toml:"category_key" env:"REPORTS_CATEGORY_KEY"`
}

type CourseConfig struct {
	ID             string `toml:"id"`
	Title          string `toml:"title"`
	Category       string `toml:"category"`
	Duration       string `toml:"duration"`
	Description    string `toml:"description"`
	TargetAudience string `toml:"target_audience"`
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
			StoreTimeout:    5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "lecture-booking",
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			Database:   "lecture_booking",
			Collection: "reservations",
		},
		Redis: RedisConfig{
			LockTTL: 5000,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange:       "lecture.events",
			PublishTimeout: 2000,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Series: SeriesConfig{
			ConfirmationThreshold: domain.SeriesConfirmationThreshold,
			InsertConcurrency:     4,
		},
		Reports: ReportsConfig{
			CategoryKey: domain.CategoryKeyCourseName,
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMongo, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Series.ConfirmationThreshold <= 0 {
		return fmt.Errorf("%w: series.confirmation_threshold must be positive", ErrInvalidConfig)
	}

	if c.Series.InsertConcurrency <= 0 {
		return fmt.Errorf("%w: series.insert_concurrency must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	switch c.Reports.CategoryKey {
	case domain.CategoryKeyCourseName, domain.CategoryKeyWorkCategory:
	default:
		return fmt.Errorf("%w: unknown reports.category_key %q", ErrInvalidConfig, c.Reports.CategoryKey)
	}

	seen := make(map[string]struct{}, len(c.Courses))
	for _, course := range c.Courses {
		id := strings.TrimSpace(course.ID)
		if id == "" {
			return fmt.Errorf("%w: course id is required", ErrInvalidConfig)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate course id %q", ErrInvalidConfig, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// CourseCatalog возвращает каталог курсов в доменном виде
func (c *Config) CourseCatalog() []domain.Course {
	courses := make([]domain.Course, 0, len(c.Courses))
	for _, cc := range c.Courses {
		courses = append(courses, domain.Course{
			ID:             strings.TrimSpace(cc.ID),
			Title:          cc.Title,
			Category:       cc.Category,
			Duration:       cc.Duration,
			Description:    cc.Description,
			TargetAudience: cc.TargetAudience,
		})
	}
	return courses
}
