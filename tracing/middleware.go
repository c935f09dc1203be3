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

package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spothero/jobportal/http/writer"
	sqlMiddleware "github.com/spothero/jobportal/sql/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
)

// HTTPServerMiddleware extracts the W3C trace context on all incoming HTTP requests, if present.
// If no trace is present in the headers, a trace is initiated.
//
// The following attributes are placed on all incoming HTTP requests:
// * http.method
// * http.target
// * http.route
//
// Outbound responses will be tagged with the following attributes, if applicable:
// * http.status_code
// * an error status (if the status code is >= 500)
//
// Note that this middleware must be attached after writer.StatusRecorderMiddleware
// for HTTP response span tagging to function.
func HTTPServerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		route := writer.FetchRoutePathTemplate(r)
		spanName := route
		if spanName == "" {
			spanName = r.URL.Path
		}
		span, spanCtx := StartSpanFromContext(
			ctx,
			fmt.Sprintf("%s %s", r.Method, spanName),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethodKey.String(r.Method),
				semconv.HTTPTargetKey.String(r.URL.RequestURI()),
				semconv.HTTPRouteKey.String(route),
			),
		)
		defer func() {
			if statusRecorder, ok := w.(*writer.StatusRecorder); ok {
				span.SetAttributes(semconv.HTTPStatusCodeKey.Int(statusRecorder.StatusCode))
				// 5XX Errors are our fault -- note that this span belongs to an errored request
				if statusRecorder.StatusCode >= http.StatusInternalServerError {
					span.SetStatus(codes.Error, http.StatusText(statusRecorder.StatusCode))
				}
			}
			span.End()
		}()
		next.ServeHTTP(w, r.WithContext(EmbedCorrelationID(spanCtx)))
	})
}

// SQLMiddleware traces requests made against SQL databases.
//
// Span names always start with "db". If a queryName is provided (highly recommended), the span
// name will include the queryname in the format "db_<queryName>"
//
// The following attributes are placed on all SQL traces:
// * db.system - Always set to "other_sql"
// * db.statement - Always set to the query statement
// An error status is set only if an error was encountered with the query.
func SQLMiddleware(ctx context.Context, queryName, query string, args ...interface{}) (context.Context, sqlMiddleware.End, error) {
	spanName := "db"
	if queryName != "" {
		spanName = fmt.Sprintf("%s_%s", spanName, queryName)
	}
	span, spanCtx := StartSpanFromContext(
		ctx,
		spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemOtherSQL,
			semconv.DBStatementKey.String(query),
		),
	)
	mwEnd := func(ctx context.Context, queryName, query string, queryErr error, args ...interface{}) (context.Context, error) {
		defer span.End()
		if queryErr != nil {
			span.RecordError(queryErr)
			span.SetStatus(codes.Error, queryErr.Error())
		}
		return ctx, nil
	}
	return EmbedCorrelationID(spanCtx), mwEnd, nil
}
