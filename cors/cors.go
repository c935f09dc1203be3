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

import (
	"strings"
	"time"
)

// Origin sources selectable with --cors-origin-source
const (
	SourceFlags = "flags"
	SourceSQL   = "sql"
)

// Config contains configuration for the cors package
type Config struct {
	// AllowedOrigins lists the exact origins (e.g. "https://app.example.com") whose requests
	// receive Access-Control-Allow-Origin. Only used with the flags origin source.
	AllowedOrigins []string
	// AllowedMethods is the comma separated Access-Control-Allow-Methods value
	AllowedMethods string
	// AllowedHeaders is the comma separated Access-Control-Allow-Headers value
	AllowedHeaders string
	// MissingOrigin is "exempt" or "fallback"
	MissingOrigin string
	// FallbackOrigin is echoed to requests without an Origin header in fallback mode
	FallbackOrigin string
	// OriginSource is "flags" or "sql"
	OriginSource string
	// OriginTable is the table read by the sql origin source
	OriginTable string
	// LoadTimeout bounds the retries of the startup load
	LoadTimeout time.Duration
	// AllowCredentials applies to every origin from the flags source
	AllowCredentials bool
	// EnableMiddleware indicates whether or not the origin policy is applied at all
	EnableMiddleware bool
}

// NewDefaultConfig returns the configuration used by the job portal: credentialed requests
// from explicitly listed origins, with requests lacking an Origin header left alone.
func NewDefaultConfig() Config {
	return Config{
		AllowedMethods:   strings.Join(DefaultAllowedMethods, ", "),
		AllowedHeaders:   strings.Join(DefaultAllowedHeaders, ", "),
		MissingOrigin:    string(MissingOriginExempt),
		OriginSource:     SourceFlags,
		OriginTable:      "cors_origins",
		LoadTimeout:      30 * time.Second,
		AllowCredentials: true,
		EnableMiddleware: true,
	}
}

// Settings converts the flag values shared by all rules into policy Settings.
func (c Config) Settings() Settings {
	return Settings{
		MissingOrigin:  MissingOriginMode(strings.TrimSpace(c.MissingOrigin)),
		FallbackOrigin: c.FallbackOrigin,
		AllowedMethods: splitList(c.AllowedMethods),
		AllowedHeaders: splitList(c.AllowedHeaders),
	}
}

// StaticSource returns the origins configured through flags as an OriginSource.
func (c Config) StaticSource() StaticSource {
	rules := make(StaticSource, 0, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		rules = append(rules, OriginRule{Origin: origin, AllowCredentials: c.AllowCredentials})
	}
	return rules
}
