// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/NVIDIA/restaurant-gateway/pkg/cache"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	gwerrors "github.com/NVIDIA/restaurant-gateway/pkg/errors"
	"github.com/NVIDIA/restaurant-gateway/pkg/logging"
)

// Environment variables.
const (
	EnvUpstreamBaseURL     = "UPSTREAM_BASE_URL"
	EnvUpstreamAPIPrefix   = "UPSTREAM_API_PREFIX"
	EnvUpstreamInsecureTLS = "UPSTREAM_INSECURE_TLS"
	EnvUpstreamTimeout     = "UPSTREAM_TIMEOUT_SECONDS"
	EnvCacheBackend        = "CACHE_BACKEND"
	EnvCacheDir            = "CACHE_DIR"
	EnvCacheSQLitePath     = "CACHE_SQLITE_PATH"
	EnvCacheRedisAddr      = "CACHE_REDIS_ADDR"
	EnvCacheRedisDB        = "CACHE_REDIS_DB"
	EnvSynthSeed           = "SYNTH_SEED"
)

const (
	// DefaultUpstreamBaseURL points at a locally running backend.
	DefaultUpstreamBaseURL = "http://localhost:8000"
	// DefaultRedisAddr is the conventional local Redis address.
	DefaultRedisAddr = "localhost:6379"
	// DefaultEnvFile is loaded when present and no files are named.
	DefaultEnvFile = ".env"
)

// Upstream describes the backend the gateway fronts.
type Upstream struct {
	BaseURL     string        `json:"baseURL" yaml:"baseURL"`
	APIPrefix   string        `json:"apiPrefix" yaml:"apiPrefix"`
	InsecureTLS bool          `json:"insecureTLS" yaml:"insecureTLS"`
	Timeout     time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Config is the complete gateway configuration.
type Config struct {
	Upstream  Upstream     `json:"upstream" yaml:"upstream"`
	Cache     cache.Config `json:"cache" yaml:"cache"`
	SynthSeed int64        `json:"synthSeed" yaml:"synthSeed"`
	LogLevel  string       `json:"logLevel" yaml:"logLevel"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	dir := filepath.Join(os.TempDir(), "restaurant-gateway")
	return &Config{
		Upstream: Upstream{
			BaseURL:   DefaultUpstreamBaseURL,
			APIPrefix: endpoint.DefaultAPIPrefix,
		},
		Cache: cache.Config{
			Backend:    cache.BackendFile,
			Dir:        filepath.Join(dir, "cache"),
			SQLitePath: filepath.Join(dir, "cache.db"),
			RedisAddr:  DefaultRedisAddr,
		},
		SynthSeed: time.Now().UnixNano(),
		LogLevel:  "info",
	}
}

// Load reads .env files, then the environment, over Default. With no files
// named, ./.env is used when it exists. A named file that is missing is an
// error.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return gwerrors.Wrap(gwerrors.ErrCodeInternal, "failed to stat env file", err)
		}
		files = []string{DefaultEnvFile}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(files...); err != nil {
		return gwerrors.WrapWithContext(gwerrors.ErrCodeInvalidRequest, "failed to load env file", err,
			map[string]any{"files": files})
	}
	slog.Debug("loaded env files", "files", files)
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup(EnvUpstreamBaseURL); ok {
		c.Upstream.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvUpstreamAPIPrefix); ok {
		c.Upstream.APIPrefix = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvUpstreamInsecureTLS); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(EnvUpstreamInsecureTLS, v, err)
		}
		c.Upstream.InsecureTLS = b
	}
	if v, ok := lookup(EnvUpstreamTimeout); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return invalid(EnvUpstreamTimeout, v, err)
		}
		c.Upstream.Timeout = time.Duration(n) * time.Second
	}

	if v, ok := lookup(EnvCacheBackend); ok {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v, ok := lookup(EnvCacheDir); ok {
		c.Cache.Dir = v
	}
	if v, ok := lookup(EnvCacheSQLitePath); ok {
		c.Cache.SQLitePath = v
	}
	if v, ok := lookup(EnvCacheRedisAddr); ok {
		c.Cache.RedisAddr = v
	}
	if v, ok := lookup(EnvCacheRedisDB); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return invalid(EnvCacheRedisDB, v, err)
		}
		c.Cache.RedisDB = n
	}

	if v, ok := lookup(EnvSynthSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return invalid(EnvSynthSeed, v, err)
		}
		c.SynthSeed = n
	}

	if v, ok := lookup(logging.EnvLogLevel); ok {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks values that cannot be corrected later.
func (c *Config) Validate() error {
	if _, err := endpoint.NewResolver(c.Upstream.BaseURL, c.Upstream.APIPrefix); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			return gwerrors.New(gwerrors.ErrCodeInvalidRequest, EnvCacheDir+" is required for the file cache")
		}
	case cache.BackendSQLite:
		if c.Cache.SQLitePath == "" {
			return gwerrors.New(gwerrors.ErrCodeInvalidRequest, EnvCacheSQLitePath+" is required for the sqlite cache")
		}
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return gwerrors.New(gwerrors.ErrCodeInvalidRequest, EnvCacheRedisAddr+" is required for the redis cache")
		}
	default:
		return gwerrors.NewWithContext(gwerrors.ErrCodeInvalidRequest, "unsupported cache backend", map[string]any{
			"backend":   c.Cache.Backend,
			"supported": []string{cache.BackendFile, cache.BackendSQLite, cache.BackendRedis},
		})
	}
	return nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func invalid(key, value string, cause error) error {
	if cause == nil {
		cause = errors.New("must not be negative")
	}
	return gwerrors.WrapWithContext(gwerrors.ErrCodeInvalidRequest, "invalid "+key, cause,
		map[string]any{"value": value})
}
