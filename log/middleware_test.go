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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spothero/jobportal/http/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPServerMiddleware(t *testing.T) {
	core, recordedLogs := observer.New(zapcore.InfoLevel)
	logger = zap.New(core)
	defer func() { logger = zap.NewNop() }()

	var ctxLogger *zap.Logger
	handler := writer.StatusRecorderMiddleware(HTTPServerMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxLogger = Get(r.Context())
			w.WriteHeader(http.StatusTeapot)
		}),
	))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/job", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Content-Length", "0")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotSame(t, logger, ctxLogger)
	logs := recordedLogs.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "http response returned", logs[0].Message)
	fields := logs[0].ContextMap()
	assert.Equal(t, "GET", fields["http.method"])
	assert.Equal(t, "https://app.example.com", fields["http.origin"])
	assert.Equal(t, int64(http.StatusTeapot), fields["http.status_code"])
	assert.Contains(t, fields, "http.duration")
	assert.Contains(t, fields, "http.content_length")
}

func TestSQLMiddleware(t *testing.T) {
	tests := []struct {
		queryErr     error
		name         string
		queryName    string
		expectedMsgs []string
	}{
		{
			name:         "successful query logs start and completion",
			queryName:    "load-origins",
			expectedMsgs: []string{"attempting sql query", "completed sql query"},
		}, {
			name:         "failed query logs an error",
			queryErr:     fmt.Errorf("relation does not exist"),
			expectedMsgs: []string{"attempting sql query", "failed sql query"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			core, recordedLogs := observer.New(zapcore.DebugLevel)
			logger = zap.New(core)
			defer func() { logger = zap.NewNop() }()

			ctx, end, err := SQLMiddleware(context.Background(), test.queryName, "SELECT 1")
			require.NoError(t, err)
			_, err = end(ctx, test.queryName, "SELECT 1", test.queryErr)
			require.NoError(t, err)

			logs := recordedLogs.All()
			require.Len(t, logs, len(test.expectedMsgs))
			for i, msg := range test.expectedMsgs {
				assert.Equal(t, msg, logs[i].Message)
				assert.Equal(t, "SELECT 1", logs[i].ContextMap()["query"])
			}
			if test.queryName != "" {
				assert.Equal(t, test.queryName, logs[0].ContextMap()["query_name"])
			}
		})
	}
}
