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


package session_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gorilla/mux"
	"github.com/spothero/jobportal/portal"
	"github.com/spothero/jobportal/session"
)

func ExampleRequire() {
	verifier, err := session.Config{SecretKey: "secret", CookieName: "token"}.NewVerifier()
	if err != nil {
		panic(err)
	}
	applications := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := session.FromContext(r.Context())
		fmt.Fprintf(w, "applications of %s", claims.UserID)
	})
	router := mux.NewRouter()
	router.Use(verifier.HTTPServerMiddleware)
	portal.NewService(nil, portal.Resources{Application: session.Require(applications)}).RegisterHandlers(router)

	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, portal.ApplicationPrefix, nil))
	fmt.Println(anonymous.Code)

	token, err := verifier.Issue("42", time.Hour)
	if err != nil {
		panic(err)
	}
	req := httptest.NewRequest(http.MethodGet, portal.ApplicationPrefix, nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	signedIn := httptest.NewRecorder()
	router.ServeHTTP(signedIn, req)
	fmt.Println(signedIn.Code, signedIn.Body.String())
	// Output:
	// 401
	// 200 applications of 42
}
