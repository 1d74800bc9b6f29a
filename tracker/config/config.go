package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout        time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type DBConfig struct {
	Driver  string `yaml:"driver" env:"DB_DRIVER" env-default:"pgx"` // pgx | sqlite3
	Address string `yaml:"address" env:"DB_ADDRESS" env-required:"true"`
}

type SessionConfig struct {
	// empty - sessions live in process memory
	RedisAddress string        `yaml:"redis_address" env:"SESSION_REDIS_ADDRESS"`
	RedisDB      int           `yaml:"redis_db" env:"SESSION_REDIS_DB" env-default:"0"`
	TTL          time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"720h"`
}

type Config struct {
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	Session  SessionConfig `yaml:"session"`
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

// Load reads configPath, falling back to the environment when the path is
// empty or the file does not exist.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		err := cleanenv.ReadEnv(&cfg)
		return cfg, err
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			cfg = Config{}
			err := cleanenv.ReadEnv(&cfg)
			return cfg, err
		}
		return cfg, err
	}

	return cfg, nil
}
