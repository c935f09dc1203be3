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

package cors

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spothero/jobportal/log"
	"go.uber.org/zap"
)

// Middleware applies a Policy to every request passing through it.
type Middleware struct {
	policy  *Policy
	metrics metrics
}

// NewMiddleware creates origin policy middleware for the given policy. Decision counters are
// registered with registry, or the global Prometheus registry when it is nil.
func NewMiddleware(policy *Policy, registry prometheus.Registerer, mustRegister bool) Middleware {
	return Middleware{
		policy:  policy,
		metrics: newMetrics(registry, mustRegister),
	}
}

// HTTP decides on the request's Origin, sets the resulting response headers and short-circuits
// OPTIONS requests with an empty 200 response. Requests from unlisted origins are still passed
// on unchanged; browsers enforce the missing Access-Control-Allow-Origin header.
//
// This middleware must wrap the router rather than be attached with Router.Use, since mux only
// runs route middleware after a route matched and preflights rarely match one.
func (m Middleware) HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get(headerOrigin)
		d := Decide(origin, r.Method, m.policy)
		d.Apply(w.Header())
		m.metrics.observe(d)

		if !d.Permitted && !d.Exempt {
			log.Get(r.Context()).Debug(
				"cross origin request from an origin that is not allowed",
				zap.String("origin", origin),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
		}
		if d.Preflight {
			log.Get(r.Context()).Debug(
				"answered preflight request",
				zap.String("origin", origin),
				zap.String("path", r.URL.Path),
				zap.Bool("permitted", d.Permitted),
			)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
