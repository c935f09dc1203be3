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

package session

import (
	"net/http"
	"strings"

	shHTTP "github.com/spothero/jobportal/http"
	"github.com/spothero/jobportal/log"
	"go.uber.org/zap"
)

// authHeader defines the name of the header that may carry the token instead of the cookie
const authHeader = "Authorization"

// bearerPrefix defines the standard expected form for tokens in Authorization headers.
// Eg `Authorization: Bearer <JWT>`
const bearerPrefix = "Bearer "

// token returns the session token from the cookie, falling back to a Bearer Authorization header.
func (v Verifier) token(r *http.Request) string {
	if cookie, err := r.Cookie(v.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get(authHeader); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	return ""
}

// HTTPServerMiddleware verifies the session token, if present, and places its claims on the
// request context. Requests without a valid token are passed on unchanged; use Require on the
// routes that need a session.
func (v Verifier) HTTPServerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := v.token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := v.Verify(token)
		if err != nil {
			log.Get(r.Context()).Debug("ignoring invalid session token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		ctx := claims.NewContext(r.Context())
		ctx = log.NewContext(ctx, log.Get(ctx).With(zap.String("user_id", claims.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require rejects requests without session claims on the context with a 401. Resource handlers
// that need an authenticated user wrap themselves with Require before being mounted, e.g. in
// portal.Resources. It must run behind Verifier.HTTPServerMiddleware, which places the claims.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			if err := shHTTP.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message": "User not authenticated",
				"success": false,
			}); err != nil {
				log.Get(r.Context()).Debug("failed to write unauthenticated response", zap.Error(err))
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
