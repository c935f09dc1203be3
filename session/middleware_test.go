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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServerMiddleware(t *testing.T) {
	v := newTestVerifier(t)
	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		cookie         string
		authorization  string
		expectedUserID string
	}{
		{name: "no token"},
		{name: "cookie token", cookie: token, expectedUserID: "user-1"},
		{name: "bearer token", authorization: "Bearer " + token, expectedUserID: "user-1"},
		{name: "invalid cookie is ignored", cookie: "garbage"},
		{name: "non bearer authorization is ignored", authorization: "Basic dXNlcjpwYXNz"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			called := false
			userID := ""
			handler := v.HTTPServerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if claims, ok := FromContext(r.Context()); ok {
					userID = claims.UserID
				}
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
			if test.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: test.cookie})
			}
			if test.authorization != "" {
				req.Header.Set("Authorization", test.authorization)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.True(t, called)
			assert.Equal(t, test.expectedUserID, userID)
		})
	}
}

func TestRequire(t *testing.T) {
	v := newTestVerifier(t)
	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	calls := 0
	handler := v.HTTPServerMiddleware(Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"User not authenticated","success":false}`, rec.Body.String())
	assert.Equal(t, 0, calls)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}
