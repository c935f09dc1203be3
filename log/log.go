// Copyright 2026 SpotHero
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

package log

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ctxKey is the type used to uniquely place the logger within context.Context
type ctxKey int

const logKey ctxKey = iota

// logger is the default zap logger. It is a nop until InitializeLogger is called.
var logger = zap.NewNop()

// level backs the global logger so that it can be changed at runtime through
// the handler registered by RegisterLogLevelHandler.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Config defines the necessary configuration for instantiating a Logger
type Config struct {
	Fields               map[string]interface{}
	Registry             prometheus.Registerer
	counter              *prometheus.CounterVec
	Level                string
	Encoding             string
	OutputPaths          []string
	ErrorOutputPaths     []string
	Cores                []zapcore.Core
	SamplingInitial      int
	SamplingThereafter   int
	UseDevelopmentLogger bool
}

// metricsHook is a callback hook used to track logging metrics at runtime
func (c *Config) metricsHook(entry zapcore.Entry) error {
	c.counter.With(prometheus.Labels{"level": entry.Level.CapitalString()}).Inc()
	return nil
}

// registerCounter registers the logs_emitted counter, reusing an existing collector if the
// registry already has one (e.g. the logger is initialized more than once in tests).
func (c *Config) registerCounter() error {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logs_emitted",
			Help: "Total number of logs emitted by this application instance",
		},
		[]string{"level"},
	)
	registry := c.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	if err := registry.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return err
		}
		counter = existing
	}
	c.counter = counter
	return nil
}

// InitializeLogger sets up the logger. This function should be called as soon
// as possible. Any use of the logger provided by this package will be a nop
// until this function is called.
func (c *Config) InitializeLogger() error {
	var lvl zapcore.Level
	if err := lvl.Set(c.Level); err != nil {
		fmt.Printf("invalid log level %s - using INFO\n", c.Level)
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)

	var logConfig zap.Config
	if c.UseDevelopmentLogger {
		// Development options enable a console encoder writing to stderr with sampling
		// disabled. See https://godoc.org/go.uber.org/zap#NewDevelopmentConfig
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoding := c.Encoding
		if encoding == "" {
			encoding = "json"
		}
		logConfig = zap.Config{
			Encoding:         encoding,
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      append(c.OutputPaths, "stdout"),
			ErrorOutputPaths: append(c.ErrorOutputPaths, "stderr"),
		}
		if c.SamplingInitial > 0 && c.SamplingThereafter > 0 {
			logConfig.Sampling = &zap.SamplingConfig{
				Initial:    c.SamplingInitial,
				Thereafter: c.SamplingThereafter,
			}
		}
	}
	logConfig.Level = level
	logConfig.InitialFields = c.Fields

	if err := c.registerCounter(); err != nil {
		return fmt.Errorf("error registering log metrics: %w", err)
	}

	options := []zap.Option{zap.Hooks(c.metricsHook)}
	if len(c.Cores) > 0 {
		cores := c.Cores
		options = append(options, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(append([]zapcore.Core{core}, cores...)...)
		}))
	}
	built, err := logConfig.Build(options...)
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}
	logger = built
	return nil
}

// RegisterLogLevelHandler exposes the global log level at /loglevel. GET returns the current
// level, PUT with a body like {"level":"debug"} changes it.
func RegisterLogLevelHandler(router *mux.Router) {
	router.Handle("/loglevel", level).Methods(http.MethodGet, http.MethodPut)
}

// NewContext creates and returns a new context with the given logger embedded. All downstream
// calls to Get with the returned context produce that logger. This is useful for scoping
// request-level fields such as a request or trace id to every later log line.
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, logKey, l)
}

// Get returns the logger wrapped with the given context. If the context is nil or holds no
// logger, the global logger is returned.
func Get(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return logger
	}
	if ctxLogger, ok := ctx.Value(logKey).(*zap.Logger); ok {
		return ctxLogger
	}
	return logger
}
