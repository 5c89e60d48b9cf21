package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса, загружается из config.toml
// Секреты (пароль БД, пароль SMTP) можно переопределить через переменные
// окружения / .env, чтобы не хранить их в файле конфигурации
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Mailer   MailerConfig   `toml:"mailer"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// AllowedOrigins список origin'ов фронтенда для CORS
	AllowedOrigins []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`

	// HealthProbeTimeout максимальное время (в секундах) проверки
	// доступности БД перед приёмом записи в degraded-режиме
	HealthProbeTimeout int `toml:"health_probe_timeout"`
}

// DSN собирает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ProbeTimeout возвращает таймаут health-пробы как Duration
func (c DatabaseConfig) ProbeTimeout() time.Duration {
	if c.HealthProbeTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.HealthProbeTimeout) * time.Second
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig статическая политика генерации слотов (см. domain.SchedulePolicy)
type ScheduleConfig struct {
	// Policy "fixed" (явный список времён) или "hourly" (почасовой диапазон)
	Policy string `toml:"policy"`

	// FixedTimes список HH:MM для политики fixed
	FixedTimes []string `toml:"fixed_times"`

	// OpenHour/CloseHour границы для политики hourly, слоты генерируются
	// в [open_hour, close_hour)
	OpenHour  int `toml:"open_hour"`
	CloseHour int `toml:"close_hour"`
}

type MailerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// Load читает конфигурацию из TOML файла и применяет переопределения
// из окружения (.env подхватывается, если присутствует)
func Load(path string) (*Config, error) {
	// .env опционален, отсутствие файла не ошибка
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.Mailer.User = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.Mailer.Password = v
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	switch c.Schedule.Policy {
	case "fixed":
		if len(c.Schedule.FixedTimes) == 0 {
			return fmt.Errorf("config: schedule.fixed_times is required for the fixed policy")
		}
	case "hourly":
		if c.Schedule.OpenHour < 0 || c.Schedule.CloseHour > 24 || c.Schedule.OpenHour >= c.Schedule.CloseHour {
			return fmt.Errorf("config: schedule open/close hours are invalid")
		}
	default:
		return fmt.Errorf("config: schedule.policy must be \"fixed\" or \"hourly\", got %q", c.Schedule.Policy)
	}
	return nil
}
