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
	"net/http"
	"strings"
)

// Response header names written by Decision.Apply
const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	headerVary             = "Vary"
	headerOrigin           = "Origin"
)

// Decision is the outcome of evaluating one request against a Policy. It lives only for the
// request it was computed for.
type Decision struct {
	// EchoOrigin is the value of Access-Control-Allow-Origin. Empty means no header.
	EchoOrigin     string
	AllowedMethods []string
	AllowedHeaders []string
	// Permitted is true when the origin matched the allow-list (or the fallback applied).
	Permitted        bool
	AllowCredentials bool
	// Exempt is true when the request carried no Origin header and the policy lets it through
	// without any CORS headers.
	Exempt bool
	// Preflight is true for OPTIONS requests, which are answered without reaching any handler.
	Preflight bool
}

// Decide evaluates a request's Origin header and method against the policy. It performs no I/O
// and does not modify the policy, so identical inputs always produce identical decisions.
func Decide(origin, method string, p *Policy) Decision {
	d := Decision{Preflight: method == http.MethodOptions}
	if p == nil {
		d.Exempt = origin == ""
		return d
	}

	var rule OriginRule
	if origin == "" {
		if p.missingOrigin != MissingOriginFallback || p.fallback == nil {
			d.Exempt = true
			return d
		}
		rule = *p.fallback
	} else {
		var ok bool
		if rule, ok = p.rules[origin]; !ok {
			return d
		}
	}

	d.Permitted = true
	d.EchoOrigin = rule.Origin
	d.AllowCredentials = rule.AllowCredentials
	d.AllowedMethods = append([]string(nil), p.allowedMethods...)
	d.AllowedHeaders = append([]string(nil), p.allowedHeaders...)
	return d
}

// Apply writes the decision onto response headers. Every response gets "Vary: Origin", so shared
// caches never replay a response decided for one Origin (or for none) to another.
func (d Decision) Apply(h http.Header) {
	addVary(h, headerOrigin)
	if !d.Permitted {
		return
	}
	h.Set(HeaderAllowOrigin, d.EchoOrigin)
	if d.AllowCredentials {
		h.Set(HeaderAllowCredentials, "true")
	}
	if len(d.AllowedMethods) > 0 {
		h.Set(HeaderAllowMethods, strings.Join(d.AllowedMethods, ", "))
	}
	if len(d.AllowedHeaders) > 0 {
		h.Set(HeaderAllowHeaders, strings.Join(d.AllowedHeaders, ", "))
	}
}

func addVary(h http.Header, value string) {
	for _, existing := range h.Values(headerVary) {
		for _, v := range strings.Split(existing, ",") {
			if strings.EqualFold(strings.TrimSpace(v), value) {
				return
			}
		}
	}
	h.Add(headerVary, value)
}
