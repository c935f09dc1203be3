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
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// OriginRule allows a single origin, compared by exact string match against the request's
// Origin header.
type OriginRule struct {
	Origin           string `db:"origin"`
	AllowCredentials bool   `db:"allow_credentials"`
}

// MissingOriginMode selects what happens to requests that carry no Origin header.
type MissingOriginMode string

const (
	// MissingOriginExempt passes requests without an Origin header through untouched.
	MissingOriginExempt MissingOriginMode = "exempt"
	// MissingOriginFallback answers requests without an Origin header as if they came from
	// the configured fallback origin, which must itself be on the allow-list.
	MissingOriginFallback MissingOriginMode = "fallback"
)

var (
	// DefaultAllowedMethods is used when no methods are configured.
	DefaultAllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	// DefaultAllowedHeaders is used when no request headers are configured.
	DefaultAllowedHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Requested-With"}
)

// ErrEmptyAllowList is returned when a policy is built without any origins.
var ErrEmptyAllowList = errors.New("cors: allow-list is empty")

// ErrNoAllowedMethods is returned when a policy is built without any methods.
var ErrNoAllowedMethods = errors.New("cors: no allowed methods configured")

// InvalidOriginError describes an allow-list entry that can never match a browser Origin.
type InvalidOriginError struct {
	Origin string
	Reason string
}

func (e *InvalidOriginError) Error() string {
	return fmt.Sprintf("cors: invalid allowed origin %q: %s", e.Origin, e.Reason)
}

// Settings holds the policy values that are shared by every rule.
type Settings struct {
	MissingOrigin  MissingOriginMode
	FallbackOrigin string
	AllowedMethods []string
	AllowedHeaders []string
}

// Policy is the validated, immutable allow-list snapshot consulted for every request. Build it
// once with NewPolicy at startup and share the pointer; nothing mutates it afterwards.
type Policy struct {
	rules          map[string]OriginRule
	fallback       *OriginRule
	missingOrigin  MissingOriginMode
	origins        []string
	allowedMethods []string
	allowedHeaders []string
}

// NewPolicy validates rules and settings and returns the resulting Policy. Any configuration that
// would silently fail in browsers is rejected here so that operators see it at startup.
func NewPolicy(rules []OriginRule, settings Settings) (*Policy, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyAllowList
	}
	p := &Policy{
		rules:          make(map[string]OriginRule, len(rules)),
		origins:        make([]string, 0, len(rules)),
		allowedMethods: cleanList(settings.AllowedMethods),
		allowedHeaders: cleanList(settings.AllowedHeaders),
		missingOrigin:  settings.MissingOrigin,
	}
	for _, rule := range rules {
		if err := validateOrigin(rule.Origin); err != nil {
			return nil, err
		}
		if existing, ok := p.rules[rule.Origin]; ok {
			if existing.AllowCredentials != rule.AllowCredentials {
				return nil, &InvalidOriginError{Origin: rule.Origin, Reason: "listed more than once with conflicting credential settings"}
			}
			continue
		}
		p.rules[rule.Origin] = rule
		p.origins = append(p.origins, rule.Origin)
	}
	if len(p.allowedMethods) == 0 {
		return nil, ErrNoAllowedMethods
	}

	switch p.missingOrigin {
	case "":
		p.missingOrigin = MissingOriginExempt
	case MissingOriginExempt:
	case MissingOriginFallback:
		rule, ok := p.rules[settings.FallbackOrigin]
		if !ok {
			return nil, fmt.Errorf("cors: fallback origin %q must be one of the allowed origins", settings.FallbackOrigin)
		}
		p.fallback = &rule
	default:
		return nil, fmt.Errorf("cors: unknown missing origin mode %q", settings.MissingOrigin)
	}
	return p, nil
}

// Origins returns the allowed origins in the order they were configured.
func (p *Policy) Origins() []string {
	return append([]string(nil), p.origins...)
}

// Rule returns the rule for an exact origin.
func (p *Policy) Rule(origin string) (OriginRule, bool) {
	rule, ok := p.rules[origin]
	return rule, ok
}

// MissingOrigin returns the behaviour applied to requests without an Origin header.
func (p *Policy) MissingOrigin() MissingOriginMode {
	return p.missingOrigin
}

// AllowedMethods returns the methods advertised to permitted origins.
func (p *Policy) AllowedMethods() []string {
	return append([]string(nil), p.allowedMethods...)
}

// AllowedHeaders returns the request headers advertised to permitted origins.
func (p *Policy) AllowedHeaders() []string {
	return append([]string(nil), p.allowedHeaders...)
}

// validateOrigin accepts only the ASCII serialization browsers send: scheme://host[:port].
func validateOrigin(origin string) error {
	invalid := func(reason string) error {
		return &InvalidOriginError{Origin: origin, Reason: reason}
	}
	switch {
	case origin == "":
		return invalid("origin is empty")
	case strings.TrimSpace(origin) != origin:
		return invalid("origin has surrounding whitespace")
	case origin == "null":
		return invalid("the null origin cannot be trusted")
	case strings.Contains(origin, "*"):
		return invalid("wildcards are not supported, list every origin explicitly")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return invalid("not a valid URL")
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return invalid("scheme must be http or https")
	case u.Opaque != "" || u.Host == "":
		return invalid("missing host")
	case u.User != nil:
		return invalid("user info is not part of an origin")
	case u.Path != "" || u.RawPath != "":
		return invalid("origins have no path, remove any trailing slash")
	case u.RawQuery != "" || u.ForceQuery || u.Fragment != "":
		return invalid("origins have no query or fragment")
	case strings.ToLower(u.Host) != u.Host:
		return invalid("host must be lower case")
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return invalid("port must be between 1 and 65535")
		}
		if (u.Scheme == "https" && n == 443) || (u.Scheme == "http" && n == 80) {
			return invalid("browsers omit the default port, remove it")
		}
	} else if strings.HasSuffix(u.Host, ":") {
		return invalid("empty port")
	}
	return nil
}

// cleanList trims entries and drops empty ones.
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// splitList parses a comma separated flag value such as "GET, POST".
func splitList(value string) []string {
	return cleanList(strings.Split(value, ","))
}
