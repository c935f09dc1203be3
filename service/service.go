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

package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spothero/jobportal/cli"
	"github.com/spothero/jobportal/cors"
	shHTTP "github.com/spothero/jobportal/http"
	"github.com/spothero/jobportal/log"
	"github.com/spothero/jobportal/portal"
	"github.com/spothero/jobportal/sentry"
	"github.com/spothero/jobportal/session"
	"github.com/spothero/jobportal/sql"
	"github.com/spothero/jobportal/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// HTTPService implementers register HTTP routes with a mux router.
type HTTPService interface {
	RegisterHandlers(router *mux.Router)
}

// ServerCmd takes a function, newHTTPService, that instantiates the HTTPService by consuming the
// Config object and the loaded origin policy after all values are populated from the CLI and/or
// environment variables.
//
// The command fails before the server starts listening when the origin policy cannot be loaded,
// for example because an allowed origin is malformed or the allow-list is empty.
//
// Note that Version and GitSHA *must be specified* before calling this function.
func (c Config) ServerCmd(
	ctx context.Context,
	shortDescription, longDescription string,
	newHTTPService func(Config, *cors.Policy) HTTPService,
) *cobra.Command {
	// HTTP Config
	httpConfig := shHTTP.NewDefaultConfig(c.Name)
	httpConfig.NotFoundHandler = http.HandlerFunc(portal.NotFoundHandler)
	if len(c.CancelSignals) > 0 {
		httpConfig.CancelSignals = c.CancelSignals
	}
	// Logging Config
	lc := &log.Config{
		UseDevelopmentLogger: true,
		Registry:             c.Registry,
		Cores:                []zapcore.Core{&sentry.Core{LevelEnabler: zap.ErrorLevel}},
	}
	// Sentry Config
	sc := sentry.Config{AppVersion: c.Version}
	// Tracing Config
	tc := tracing.Config{ServiceName: c.Name, ServiceVersion: c.Version}
	// CORS Config
	cc := cors.NewDefaultConfig()
	// Database Config, only used by the sql origin source
	dc := sql.NewDefaultConfig(c.Name, "jobportal")
	// Session Config
	sessc := session.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:     c.Name,
		Short:   shortDescription,
		Long:    longDescription,
		Version: fmt.Sprintf("%s (%s)", c.Version, c.GitSHA),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := cli.LoadDotEnv(c.EnvFiles...); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to load environment files: %v\n", err)
			}
			cli.CobraBindEnvironmentVariables(strings.Replace(c.Name, "-", "_", -1))(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := c.CheckFlags(); err != nil {
				return err
			}
			lc.Fields = map[string]interface{}{
				"version":     c.Version,
				"git_sha":     c.shortSHA(),
				"environment": c.Environment,
			}
			if err := lc.InitializeLogger(); err != nil {
				return err
			}
			sc.Environment = c.Environment
			if err := sc.InitializeSentry(); err != nil {
				return err
			}
			tc.Environment = c.Environment
			shutdown, err := tc.TracerProvider()
			if err != nil {
				return err
			}
			defer func() {
				if shutdownErr := shutdown(ctx); shutdownErr != nil && err == nil {
					err = shutdownErr
				}
			}()

			policy, err := loadPolicy(ctx, cc, dc, c)
			if err != nil {
				log.Get(ctx).Error("failed to load cross origin policy", zap.Error(err))
				return err
			}

			var verifier *session.Verifier
			if sessc.SecretKey != "" {
				v, err := sessc.NewVerifier()
				if err != nil {
					return err
				}
				verifier = &v
			}
			httpConfig.PreRoutingMiddleware, httpConfig.Middleware = c.middleware(cc, policy, verifier)

			if c.PreStart != nil {
				if ctx, err = c.PreStart(ctx); err != nil {
					return err
				}
			}
			if newHTTPService != nil {
				httpConfig.RegisterHandlers = newHTTPService(c, policy).RegisterHandlers
			}
			runErr := httpConfig.NewServer().Run()

			if c.PostShutdown != nil {
				if err := c.PostShutdown(ctx); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	// Register Cobra/Viper CLI Flags
	flags := cmd.Flags()
	c.RegisterFlags(flags)
	httpConfig.RegisterFlags(flags)
	lc.RegisterFlags(flags)
	sc.RegisterFlags(flags)
	tc.RegisterFlags(flags)
	cc.RegisterFlags(flags)
	dc.RegisterFlags(flags)
	sessc.RegisterFlags(flags)
	return cmd
}

// middleware returns the pre-routing and route middleware of the server. The origin policy runs
// before routing so that preflights and unknown paths still receive its headers.
func (c Config) middleware(cc cors.Config, policy *cors.Policy, verifier *session.Verifier) (pre, route []mux.MiddlewareFunc) {
	if cc.EnableMiddleware {
		pre = append(pre, cors.NewMiddleware(policy, c.Registry, true).HTTP)
	}
	route = []mux.MiddlewareFunc{
		shHTTP.RequestIDMiddleware,
		tracing.HTTPServerMiddleware,
		shHTTP.NewMetrics(c.Registry, true).Middleware,
		log.HTTPServerMiddleware,
		sentry.NewMiddleware().HTTP,
	}
	if verifier != nil {
		route = append(route, verifier.HTTPServerMiddleware)
	}
	return pre, route
}

// loadPolicy builds the origin policy from the configured source. No policy is loaded, and no
// database is dialed, when the origin policy middleware is disabled. The sql source connection
// is closed once the snapshot has been loaded.
func loadPolicy(ctx context.Context, cc cors.Config, dc sql.Config, c Config) (*cors.Policy, error) {
	if !cc.EnableMiddleware {
		log.Get(ctx).Warn("cross origin policy middleware is disabled")
		return nil, nil
	}
	var source cors.OriginSource
	switch cc.OriginSource {
	case cors.SourceFlags:
		source = cc.StaticSource()
	case cors.SourceSQL:
		db, closeDB, err := dc.Connect(ctx, sql.WithMetricsRegisterer(c.Registry))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the origin database: %w", err)
		}
		defer func() {
			if closeErr := closeDB(); closeErr != nil {
				log.Get(ctx).Error("failed to close origin database", zap.Error(closeErr))
			}
		}()
		source = cors.SQLSource{DB: db, Table: cc.OriginTable}
	default:
		return nil, fmt.Errorf("unknown origin source %q", cc.OriginSource)
	}
	return cors.LoadPolicy(ctx, source, cc.Settings(), cc.LoadTimeout)
}
