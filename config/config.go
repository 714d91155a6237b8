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

type Config struct {
	Server ServerConfig `yaml:"server"`
	Map    MapConfig    `yaml:"map"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	CORS   CORSConfig   `yaml:"cors"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

type MapConfig struct {
	Path string `yaml:"path"`
}

type CacheConfig struct {
	Size int           `yaml:"size"` // 0 disables the query cache
	TTL  time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", Mode: "release"},
		Map:    MapConfig{Path: "data/london.json"},
		Cache:  CacheConfig{Size: 1024, TTL: 10 * time.Minute},
		Log:    LogConfig{Level: "info", Format: "text"},
		CORS:   CORSConfig{AllowOrigins: []string{"*"}},
	}
}

// LoadDotEnv loads environment files, ".env" when none are given. Missing
// files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load starts from Default, overlays the YAML file at path when path is not
// empty, then the TUBEMAP_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("TUBEMAP_ADDR", &c.Server.Addr)
	str("TUBEMAP_GIN_MODE", &c.Server.Mode)
	str("TUBEMAP_MAP_PATH", &c.Map.Path)
	str("TUBEMAP_LOG_LEVEL", &c.Log.Level)
	str("TUBEMAP_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("TUBEMAP_CACHE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TUBEMAP_CACHE_SIZE: %w", err)
		}
		c.Cache.Size = n
	}
	if v, ok := lookup("TUBEMAP_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TUBEMAP_CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	if v, ok := lookup("TUBEMAP_CORS_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowOrigins = origins
	}
	return nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("invalid config: server.addr is empty")
	}
	if c.Map.Path == "" {
		return fmt.Errorf("invalid config: map.path is empty")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("invalid config: cache.size must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid config: cache.ttl must not be negative")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid config: server.mode %q", c.Server.Mode)
	}
	return nil
}
