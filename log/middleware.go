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
	"net/http"
	"strconv"
	"time"

	"github.com/spothero/jobportal/http/writer"
	sqlMiddleware "github.com/spothero/jobportal/sql/middleware"
	"go.uber.org/zap"
)

// getFields returns appropriate zap logger fields given the HTTP Request
func getFields(r *http.Request) []zap.Field {
	fields := []zap.Field{
		zap.String("http.method", r.Method),
		zap.String("http.url", r.URL.String()),
		zap.String("http.path", writer.FetchRoutePathTemplate(r)),
		zap.String("http.user_agent", r.UserAgent()),
	}
	if origin := r.Header.Get("Origin"); origin != "" {
		fields = append(fields, zap.String("http.origin", origin))
	}
	if contentLengthStr := r.Header.Get("Content-Length"); len(contentLengthStr) > 0 {
		if contentLength, err := strconv.Atoi(contentLengthStr); err == nil {
			fields = append(fields, zap.Int("http.content_length", contentLength))
		}
	}
	return fields
}

// HTTPServerMiddleware logs a series of standard attributes for every HTTP request and attaches
// a logger onto the request context.
//
// On inbound request received these attributes include:
// * The HTTP method, url, route template and user agent
// * The Origin header, when present
//
// On outbound response return these attributes include all of the above as well as:
// * HTTP response code
// * Request duration
//
// Note that this middleware must be attached after writer.StatusRecorderMiddleware
// for HTTP response code logging to function.
func HTTPServerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		logger := Get(r.Context()).Named("http").With(getFields(r)...)
		logger.Debug("http request received")
		defer func() {
			responseCodeField := zap.Skip()
			if statusRecorder, ok := w.(*writer.StatusRecorder); ok {
				responseCodeField = zap.Int("http.status_code", statusRecorder.StatusCode)
			}
			logger.Info(
				"http response returned",
				responseCodeField,
				zap.Duration("http.duration", time.Since(startTime)),
			)
		}()
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), logger)))
	})
}

// SQLMiddleware debug logs queries made against SQL databases.
func SQLMiddleware(ctx context.Context, queryName, query string, args ...interface{}) (context.Context, sqlMiddleware.End, error) {
	queryLogger := Get(ctx).With(zap.String("query", query))
	if queryName != "" {
		queryLogger = queryLogger.With(zap.String("query_name", queryName))
	}
	queryLogger.Debug("attempting sql query")
	mwEnd := func(ctx context.Context, queryName, query string, queryErr error, args ...interface{}) (context.Context, error) {
		if queryErr != nil {
			queryLogger.Error("failed sql query", zap.Error(queryErr))
		} else {
			queryLogger.Debug("completed sql query")
		}
		return ctx, nil
	}
	return ctx, mwEnd, nil
}
