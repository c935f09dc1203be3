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

// Package portal serves the job portal's own HTTP routes: service status, a cross origin
// diagnostics endpoint, a public job listing stub and the mount points of the user, company, job
// and application resources.
package portal

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/spothero/jobportal/cors"
	shHTTP "github.com/spothero/jobportal/http"
	"github.com/spothero/jobportal/log"
	"go.uber.org/zap"
)

// API prefixes of the resource collaborators
const (
	UserPrefix        = "/api/v1/user"
	CompanyPrefix     = "/api/v1/company"
	JobPrefix         = "/api/v1/job"
	ApplicationPrefix = "/api/v1/application"
)

// Resources are the handlers implementing the portal's resources. A nil handler leaves its prefix
// unmounted. Handlers see paths relative to their prefix, e.g. "/login" for "/api/v1/user/login".
type Resources struct {
	User        http.Handler
	Company     http.Handler
	Job         http.Handler
	Application http.Handler
}

// Service implements the portal routes.
type Service struct {
	policy    *cors.Policy
	resources Resources
	now       func() time.Time
}

// NewService creates the portal routes for the loaded origin policy. The policy is only used to
// report the allowed origins and may be nil when the origin policy is disabled.
func NewService(policy *cors.Policy, resources Resources) Service {
	return Service{policy: policy, resources: resources, now: time.Now}
}

type statusResponse struct {
	Message        string   `json:"message"`
	Status         string   `json:"status"`
	AllowedOrigins []string `json:"allowedOrigins"`
	Timestamp      string   `json:"timestamp"`
}

type corsTestResponse struct {
	Message       string             `json:"message"`
	RequestOrigin *string            `json:"requestOrigin,omitempty"`
	HeadersSent   map[string]*string `json:"headersSent"`
}

type jobTestResponse struct {
	Message   string        `json:"message"`
	Jobs      []interface{} `json:"jobs"`
	Success   bool          `json:"success"`
	Timestamp string        `json:"timestamp"`
}

type notFoundResponse struct {
	Error        string `json:"error"`
	RequestedURL string `json:"requestedUrl"`
	Method       string `json:"method"`
}

// RegisterHandlers registers the portal routes with the router. The public job listing is
// registered ahead of the job resource so it is never shadowed by it.
func (s Service) RegisterHandlers(router *mux.Router) {
	// a known path with another method is answered like any unknown route
	router.MethodNotAllowedHandler = http.HandlerFunc(NotFoundHandler)
	router.HandleFunc("/", s.status).Methods(http.MethodGet)
	router.HandleFunc("/api/cors-test", s.corsTest).Methods(http.MethodGet)
	router.HandleFunc(JobPrefix+"/test", s.jobTest).Methods(http.MethodGet)
	mount(router, UserPrefix, s.resources.User)
	mount(router, CompanyPrefix, s.resources.Company)
	mount(router, JobPrefix, s.resources.Job)
	mount(router, ApplicationPrefix, s.resources.Application)
}

func mount(router *mux.Router, prefix string, handler http.Handler) {
	if handler == nil {
		return
	}
	stripped := stripPrefix(prefix, handler)
	router.Path(prefix).Handler(stripped)
	router.PathPrefix(prefix + "/").Handler(stripped)
}

// stripPrefix removes prefix from the request path, leaving "/" for the prefix itself.
func stripPrefix(prefix string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
		if r2.URL.Path == "" {
			r2.URL.Path = "/"
		}
		r2.URL.RawPath = ""
		next.ServeHTTP(w, r2)
	})
}

func (s Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s Service) status(w http.ResponseWriter, r *http.Request) {
	origins := []string{}
	if s.policy != nil {
		origins = s.policy.Origins()
	}
	writeJSON(w, r, http.StatusOK, statusResponse{
		Message:        "Job Portal Backend API",
		Status:         "running",
		AllowedOrigins: origins,
		Timestamp:      s.timestamp(),
	})
}

// corsTest reports the headers the origin policy set on this response.
func (s Service) corsTest(w http.ResponseWriter, r *http.Request) {
	headersSent := make(map[string]*string, 2)
	for _, name := range []string{cors.HeaderAllowOrigin, cors.HeaderAllowCredentials} {
		var value *string
		if values := w.Header().Values(name); len(values) > 0 {
			value = &values[0]
		}
		headersSent[name] = value
	}
	var requestOrigin *string
	if origin := r.Header.Get("Origin"); origin != "" {
		requestOrigin = &origin
	}
	writeJSON(w, r, http.StatusOK, corsTestResponse{
		Message:       "CORS is working!",
		RequestOrigin: requestOrigin,
		HeadersSent:   headersSent,
	})
}

func (s Service) jobTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, jobTestResponse{
		Message:   "Public job endpoint",
		Jobs:      []interface{}{},
		Success:   true,
		Timestamp: s.timestamp(),
	})
}

// NotFoundHandler answers requests that match no route with a JSON 404.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, notFoundResponse{
		Error:        "Route not found",
		RequestedURL: r.URL.RequestURI(),
		Method:       r.Method,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, body interface{}) {
	if err := shHTTP.WriteJSON(w, statusCode, body); err != nil {
		log.Get(r.Context()).Warn("failed to write response", zap.Error(err))
	}
}
