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

package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/gchaincl/sqlhooks"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spothero/jobportal/log"
	"github.com/spothero/jobportal/sql/middleware"
	"github.com/spothero/jobportal/tracing"
)

const (
	// DriverPostgres selects PostgresConfig when connecting through Config
	DriverPostgres = "postgres"
	// DriverMySQL selects MySQLConfig when connecting through Config
	DriverMySQL = "mysql"
)

// registeredDrivers tracks the wrapped driver names registered with database/sql, which panics
// on duplicate registration
var registeredDrivers sync.Map

// Config selects a database driver and holds the settings for every supported driver
type Config struct {
	Driver   string
	Postgres PostgresConfig
	MySQL    MySQLConfig
}

// NewDefaultConfig returns a Postgres backed configuration for the given application and database
func NewDefaultConfig(appName, dbName string) Config {
	return Config{
		Driver:   DriverPostgres,
		Postgres: NewDefaultPostgresConfig(appName, dbName),
		MySQL:    NewDefaultMySQLConfig(dbName),
	}
}

// Connect opens a connection with the configured driver. The returned function closes the
// connection pool.
func (c Config) Connect(ctx context.Context, options ...WrappedSQLOption) (*sqlx.DB, func() error, error) {
	switch c.Driver {
	case DriverPostgres:
		return c.Postgres.Connect(ctx, options...)
	case DriverMySQL:
		return c.MySQL.Connect(ctx, options...)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

type wrappedSQLOptions struct {
	middleware   middleware.Middleware
	registerer   prometheus.Registerer
	mustRegister bool
	driverName   string
}

func newDefaultWrappedSQLOptions(driverName string) wrappedSQLOptions {
	return wrappedSQLOptions{
		middleware:   middleware.Middleware{log.SQLMiddleware, tracing.SQLMiddleware},
		registerer:   prometheus.DefaultRegisterer,
		mustRegister: true,
		driverName:   driverName,
	}
}

// WrappedSQLOption is a function that adds configuration for wrapping both
// PostgreSQL and MySQL drivers.
type WrappedSQLOption func(*wrappedSQLOptions)

// WithMiddleware replaces the query middleware. Defaults to log and tracing middleware.
func WithMiddleware(m middleware.Middleware) WrappedSQLOption {
	return func(config *wrappedSQLOptions) {
		config.middleware = m
	}
}

// WithMetricsRegisterer sets the Prometheus registerer for query metrics. Defaults to
// the prometheus default registerer.
func WithMetricsRegisterer(r prometheus.Registerer) WrappedSQLOption {
	return func(config *wrappedSQLOptions) {
		config.registerer = r
	}
}

// WithMustRegister sets whether or not metrics must register in Prometheus. Defaults to true.
func WithMustRegister(r bool) WrappedSQLOption {
	return func(config *wrappedSQLOptions) {
		config.mustRegister = r
	}
}

// WithDriverName overrides the default wrapped driver name so that multiple wrapped
// drivers can be registered at once.
func WithDriverName(n string) WrappedSQLOption {
	return func(config *wrappedSQLOptions) {
		config.driverName = n
	}
}

// registerDriver wraps d with the configured middleware and the query metrics of
// opts.driverName. A name that has already been registered keeps its original wrapping, so its
// metrics are registered exactly once.
func registerDriver(d driver.Driver, opts wrappedSQLOptions) {
	if _, loaded := registeredDrivers.LoadOrStore(opts.driverName, struct{}{}); loaded {
		return
	}
	m := newMetrics(opts.driverName, opts.registerer, opts.mustRegister)
	chain := append(middleware.Middleware{m.Middleware}, opts.middleware...)
	sql.Register(opts.driverName, sqlhooks.Wrap(d, chain))
}

// open connects through the wrapped driver
func open(ctx context.Context, dsn string, opts wrappedSQLOptions) (*sqlx.DB, func() error, error) {
	db, err := sqlx.ConnectContext(ctx, opts.driverName, dsn)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}
