package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/giantswarm/vtpool"
	"github.com/giantswarm/vtpool/internal/echoserver"
)

// envPrefix scopes environment overrides, e.g. VTPOOL_ADDR.
const envPrefix = "VTPOOL"

// Configuration keys. Flags use the same names.
const (
	keyConfig      = "config"
	keyAddr        = "addr"
	keyName        = "name"
	keyJoinTimeout = "join-timeout"
	keyLogLevel    = "log-level"
)

type config struct {
	Addr        string
	Name        string
	JoinTimeout time.Duration
	LogLevel    slog.Level
}

// newViper returns a viper instance with defaults and VTPOOL_* environment
// binding. Flags are bound later by the command.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyAddr, echoserver.DefaultAddr)
	v.SetDefault(keyName, vtpool.DefaultName)
	v.SetDefault(keyJoinTimeout, vtpool.DefaultJoinTimeout)
	v.SetDefault(keyLogLevel, "info")
	return v
}

// loadConfig resolves the configuration from flags, environment, the
// optional YAML file and defaults, in that order of precedence.
func loadConfig(v *viper.Viper) (config, error) {
	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := config{
		Addr:        v.GetString(keyAddr),
		Name:        v.GetString(keyName),
		JoinTimeout: v.GetDuration(keyJoinTimeout),
	}

	var errs []error
	if cfg.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if cfg.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if cfg.JoinTimeout < 0 {
		errs = append(errs, fmt.Errorf("join-timeout must not be negative, got %s", cfg.JoinTimeout))
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		errs = append(errs, fmt.Errorf("log-level: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// poolOptions translates the configuration into pool options. A zero join
// timeout keeps Join unbounded.
func (c config) poolOptions(log *slog.Logger) []vtpool.Option {
	opts := []vtpool.Option{
		vtpool.WithName(c.Name),
		vtpool.WithLifecycleListener(func(ev vtpool.LifecycleEvent, err error) {
			if err != nil {
				log.Error("pool lifecycle", "pool", c.Name, "event", ev.String(), "error", err)
				return
			}
			log.Debug("pool lifecycle", "pool", c.Name, "event", ev.String())
		}),
	}
	if c.JoinTimeout > 0 {
		opts = append(opts, vtpool.WithJoinTimeout(c.JoinTimeout))
	}
	return opts
}
