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

package main

import (
	"context"
	"os"

	"github.com/spothero/jobportal/cors"
	"github.com/spothero/jobportal/portal"
	"github.com/spothero/jobportal/service"
)

// These variables should be set during build with the Go link tool
// e.x.: when running go build, provide -ldflags="-X main.version=1.0.0"
var gitSHA = "not-set"
var version = "not-set"

func main() {
	c := service.Config{
		Name:        "job-portal-api",
		Version:     version,
		GitSHA:      gitSHA,
		Environment: "local",
	}
	cmd := c.ServerCmd(
		context.Background(),
		"Job portal backend API",
		"Serves the job portal API behind an exact-match cross origin policy. Allowed origins are "+
			"read at startup from --cors-allowed-origins or from a database table.",
		func(_ service.Config, policy *cors.Policy) service.HTTPService {
			// user, company, job and application resources are served by their own handlers
			return portal.NewService(policy, portal.Resources{})
		},
	)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
