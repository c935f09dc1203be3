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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spothero/jobportal/log"
	"go.uber.org/zap"
)

const (
	// If no override option is provided, this is the name of the wrapped MySQL driver that will be
	// registered when calling MySQLConfig.Connect.
	DefaultWrappedMySQLDriverName = "wrappedMySQL"
	tlsConfigName                 = "MySQLTLSConfig"
)

// MySQLConfig adds a path for a CA cert to mysql.Config. When CACertPath is set,
// NewWrappedMySQL will verify the database identity with the provided CA cert.
type MySQLConfig struct {
	// Path to the server CA certificate for SSL connections
	CACertPath string
	mysql.Config
}

// NewDefaultMySQLConfig returns a MySQL configuration for a local server
func NewDefaultMySQLConfig(dbName string) MySQLConfig {
	config := mysql.NewConfig()
	config.Net = "tcp"
	config.Addr = "localhost:3306"
	config.DBName = dbName
	config.ParseTime = true
	config.Timeout = defaultTimeout
	return MySQLConfig{Config: *config}
}

// Connect uses the given Config struct to establish a connection with the database.
// See the documentation for WrappedSQLOption functions to configure how the driver
// gets wrapped. A driver name is only wrapped the first time it is connected with.
//
// If no error occurs, the database connection, and a close function are returned
func (c MySQLConfig) Connect(ctx context.Context, options ...WrappedSQLOption) (*sqlx.DB, func() error, error) {
	opts := newDefaultWrappedSQLOptions(DefaultWrappedMySQLDriverName)
	for _, option := range options {
		option(&opts)
	}
	logger := log.Get(ctx).With(zap.String("database", c.DBName), zap.String("address", c.Addr))
	stdLogger, err := zap.NewStdLogAt(logger.Named("mysql"), zap.ErrorLevel)
	if err != nil {
		logger.Error(
			"mysql driver errors will be output to stderr because the standard logger failed to build",
			zap.Error(err))
	} else {
		// this can only ever error if the logger is nil, but that can only happen if the
		// standard logger failed to build
		_ = mysql.SetLogger(stdLogger)
	}
	if c.CACertPath != "" && c.TLSConfig == "" {
		if certErr := c.loadCACert(); certErr != nil {
			return nil, nil, certErr
		}
	}
	registerDriver(mysql.MySQLDriver{}, opts)

	logger.Info("connecting to mysql")
	db, closer, err := open(ctx, c.FormatDSN(), opts)
	if err != nil {
		logger.Error("unable to connect to mysql", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("connected to mysql")
	return db, closer, nil
}

// Read a CA cert file and registers a TLS config with the cert under the constant tlsConfigName name
func (c *MySQLConfig) loadCACert() error {
	rootPool := x509.NewCertPool()
	pem, err := os.ReadFile(c.CACertPath)
	if err != nil {
		return err
	}
	if ok := rootPool.AppendCertsFromPEM(pem); !ok {
		return fmt.Errorf("failed to parse MySQL CA PEM %s", c.CACertPath)
	}
	if registrationErr := mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{RootCAs: rootPool}); registrationErr != nil {
		return registrationErr
	}
	c.TLSConfig = tlsConfigName
	return nil
}
