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

package sentry

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/spothero/jobportal/log"
	"go.opentelemetry.io/otel/trace"
)

// Middleware contains a Sentry handler
type Middleware struct {
	sentryHandler *sentryhttp.Handler
}

// NewMiddleware creates a new Sentry middleware object
func NewMiddleware() Middleware {
	return Middleware{
		sentryhttp.New(sentryhttp.Options{
			Repanic:         true,
			WaitForDelivery: true,
			Timeout:         flushTimeout,
		}),
	}
}

// HTTP is a wrapper around the sentry-go library's middleware that attaches the Sentry hub from
// the request context to the logger. That way, if the logger ever writes an error log, Sentry
// captures the entire request context (path, headers and so on) along with the log fields. If
// this middleware is attached after the tracing middleware, the corresponding Trace ID is added
// to the Sentry scope.
func (m Middleware) HTTP(next http.Handler) http.Handler {
	return m.sentryHandler.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			next.ServeHTTP(w, r)
			return
		}
		if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("correlation_id", sc.TraceID().String())
			})
		}
		ctx := log.NewContext(r.Context(), log.Get(r.Context()).With(Hub(hub)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
