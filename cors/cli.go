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

import "github.com/spf13/pflag"

// RegisterFlags registers CORS flags with pflags
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.EnableMiddleware, "cors-enable-middleware", c.EnableMiddleware, "Specify whether or not the origin policy is applied to cross origin requests")
	flags.StringSliceVar(&c.AllowedOrigins, "cors-allowed-origins", c.AllowedOrigins, "Exact origin(s) allowed to make cross origin requests (e.g. \"https://app.example.com,http://localhost:5173\"). Wildcards are not supported.")
	flags.StringVar(&c.AllowedMethods, "cors-allowed-methods", c.AllowedMethods, "Method(s) advertised to allowed origins (e.g. \"GET, POST, PUT, DELETE, PATCH, OPTIONS\")")
	flags.StringVar(&c.AllowedHeaders, "cors-allowed-headers", c.AllowedHeaders, "Request header(s) advertised to allowed origins (e.g. \"Content-Type, Authorization\")")
	flags.BoolVar(&c.AllowCredentials, "cors-allow-credentials", c.AllowCredentials, "Send Access-Control-Allow-Credentials: true to origins configured with --cors-allowed-origins")
	flags.StringVar(&c.MissingOrigin, "cors-missing-origin", c.MissingOrigin, "Behaviour for requests without an Origin header: \"exempt\" adds only Vary: Origin, \"fallback\" answers as --cors-fallback-origin")
	flags.StringVar(&c.FallbackOrigin, "cors-fallback-origin", c.FallbackOrigin, "Allowed origin echoed to requests without an Origin header when --cors-missing-origin=fallback")
	flags.StringVar(&c.OriginSource, "cors-origin-source", c.OriginSource, "Where allowed origins are loaded from at startup: \"flags\" or \"sql\"")
	flags.StringVar(&c.OriginTable, "cors-origin-table", c.OriginTable, "Table holding (origin, allow_credentials) rows for the sql origin source")
	flags.DurationVar(&c.LoadTimeout, "cors-load-timeout", c.LoadTimeout, "How long to keep retrying the allowed origin load at startup")
}
