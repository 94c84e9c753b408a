package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска сервера и движка
type Config struct {
	// Seed - мастер-зерно генератора. От него зависят спавн, ИИ и бонус урона.
	Seed int64 `yaml:"seed"`
	// TickRate - тиков симуляции в секунду
	TickRate int `yaml:"tick_rate"`
	// Diagonals - A* ищет путь в 8 направлениях
	Diagonals bool `yaml:"diagonals"`

	AttackBonusMax int `yaml:"attack_bonus_max"`

	// Интервалы в секундах симуляции
	AutoSpawnInterval float64 `yaml:"auto_spawn_interval"`
	DebugInterval     float64 `yaml:"debug_interval"`

	// SpawnRetryLimit - сколько тиков откладывать спавн без свободной клетки
	SpawnRetryLimit int `yaml:"spawn_retry_limit"`

	Port           int    `yaml:"port"`
	DatabasePath   string `yaml:"database_path"`
	JournalDir     string `yaml:"journal_dir"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	Bots           int    `yaml:"bots"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:              time.Now().UnixNano(),
		TickRate:          20,
		Diagonals:         false,
		AttackBonusMax:    2,
		AutoSpawnInterval: 5,
		DebugInterval:     0.5,
		SpawnRetryLimit:   20,
		Port:              8080,
		DatabasePath:      "goblin-boys.db",
		JournalDir:        "journal",
		MetricsEnabled:    true,
	}
}

// TickInterval - длительность одного тика
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// LoadConfig читает YAML поверх значений по умолчанию
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadConfigFromReader(f)
}

// LoadConfigFromReader декодирует конфиг. Неизвестные ключи - ошибка.
func LoadConfigFromReader(r io.Reader) (Config, error) {
	cfg := NewConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate собирает все ошибки конфига разом
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate must be in 1..1000, got %d", c.TickRate))
	}
	if c.AttackBonusMax < 0 {
		errs = append(errs, fmt.Errorf("attack_bonus_max cannot be negative, got %d", c.AttackBonusMax))
	}
	if c.AutoSpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("auto_spawn_interval must be positive, got %v", c.AutoSpawnInterval))
	}
	if c.DebugInterval <= 0 {
		errs = append(errs, fmt.Errorf("debug_interval must be positive, got %v", c.DebugInterval))
	}
	if c.SpawnRetryLimit < 0 {
		errs = append(errs, fmt.Errorf("spawn_retry_limit cannot be negative, got %d", c.SpawnRetryLimit))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be in 1..65535, got %d", c.Port))
	}
	if c.Bots < 0 {
		errs = append(errs, fmt.Errorf("bots cannot be negative, got %d", c.Bots))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
