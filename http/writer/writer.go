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

package writer

import (
	"net/http"

	"github.com/gorilla/mux"
)

// StatusRecorder wraps the http ResponseWriter, allowing additional instrumentation and metrics
// capture before the response is returned to the client.
type StatusRecorder struct {
	http.ResponseWriter
	StatusCode   int
	BytesWritten int
}

// WriteHeader captures the StatusCode on the StatusRecorder and then delegates the actual
// work of writing the header to the underlying http ResponseWriter.
func (sr *StatusRecorder) WriteHeader(code int) {
	sr.StatusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Write counts the bytes of the response body before delegating to the underlying writer.
func (sr *StatusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.BytesWritten += n
	return n, err
}

// Flush implements http.Flusher when the wrapped writer supports it.
func (sr *StatusRecorder) Flush() {
	if flusher, ok := sr.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// StatusRecorderMiddleware wraps the http.ResponseWriter with StatusRecorder so that downstream
// middlewares can utilize the outcome status code after the response completes. This middleware
// should be attached as early as possible.
func StatusRecorderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := w.(*StatusRecorder); ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&StatusRecorder{ResponseWriter: w, StatusCode: http.StatusOK}, r)
	})
}

// FetchRoutePathTemplate extracts the path template from a given request, or empty string if none
// could be found. Requests handled before routing (preflights, unknown paths) have no template.
func FetchRoutePathTemplate(r *http.Request) string {
	routePath := ""
	if route := mux.CurrentRoute(r); route != nil {
		routePath, _ = route.GetPathTemplate()
	}
	return routePath
}
