// Package config loads application configuration from defaults, an optional YAML file and the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	// EnvPrefix prefixes every environment variable read by Load, e.g. TASKS_JWT_SECRET.
	EnvPrefix = "TASKS_"

	// EnvKeyConfigFile points at an optional YAML file layered over the defaults.
	EnvKeyConfigFile = "TASKS_CONFIG_FILE"
)

// Config is the root configuration passed explicitly to every component at construction time.
type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	DB       DBConfig       `koanf:"db"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	Password PasswordConfig `koanf:"password"`
	Login    LoginConfig    `koanf:"login"`
	Log      LogConfig      `koanf:"log"`
}

// HTTPConfig configures the gin server.
type HTTPConfig struct {
	Addr        string   `koanf:"addr"`
	CORSOrigins []string `koanf:"corsorigins"`
}

// DBConfig configures the PostgreSQL connection.
type DBConfig struct {
	Host           string        `koanf:"host"`
	Port           string        `koanf:"port"`
	User           string        `koanf:"user"`
	Password       string        `koanf:"password"`
	Name           string        `koanf:"name"`
	SSLMode        string        `koanf:"sslmode"`
	ConnectTimeout time.Duration `koanf:"connecttimeout"`
	RunMigrations  bool          `koanf:"runmigrations"`
}

// RedisConfig configures the optional Redis client. An empty Host disables Redis.
type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// JWTConfig configures access token signing.
type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

// PasswordConfig holds the argon2id parameters of the credential hasher.
type PasswordConfig struct {
	Time    uint32 `koanf:"time"`
	Memory  uint32 `koanf:"memory"`
	Threads uint8  `koanf:"threads"`
	KeyLen  uint32 `koanf:"keylen"`
}

// LoginConfig configures sign-in attempt limiting.
type LoginConfig struct {
	MaxAttempts int           `koanf:"maxattempts"`
	Window      time.Duration `koanf:"window"`
}

// LogConfig configures the root slog logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		DB: DBConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "postgres",
			Name:           "tasks",
			SSLMode:        "disable",
			ConnectTimeout: 60 * time.Second,
			RunMigrations:  true,
		},
		Redis: RedisConfig{Port: "6379"},
		JWT:   JWTConfig{TTL: time.Hour},
		Password: PasswordConfig{
			Time:    1,
			Memory:  64 * 1024,
			Threads: 4,
			KeyLen:  32,
		},
		Login: LoginConfig{MaxAttempts: 5, Window: 15 * time.Minute},
		Log:   LogConfig{Level: "info"},
	}
}

// Load layers the YAML file named by TASKS_CONFIG_FILE (if any) and TASKS_* environment
// variables over Default. TASKS_DB_HOST maps to db.host, TASKS_HTTP_CORSORIGINS to
// http.corsorigins (comma separated).
func Load() (*Config, error) {
	return load(os.Getenv(EnvKeyConfigFile))
}

func load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = envKeyToPath(key)
			if key == "http.corsorigins" {
				return key, splitList(value)
			}
			return key, value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = time.Hour
	}

	return &cfg, nil
}

// envKeyToPath converts TASKS_DB_HOST into db.host.
func envKeyToPath(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
