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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	defaults := Settings{AllowedMethods: DefaultAllowedMethods, AllowedHeaders: DefaultAllowedHeaders}
	tests := []struct {
		name        string
		rules       []OriginRule
		settings    Settings
		expectedErr error
		invalid     bool
	}{
		{
			name:     "valid allow-list",
			rules:    []OriginRule{{Origin: "https://app.example.com"}, {Origin: "http://localhost:5173"}},
			settings: defaults,
		},
		{
			name:        "empty allow-list",
			settings:    defaults,
			expectedErr: ErrEmptyAllowList,
		},
		{
			name:        "no methods",
			rules:       []OriginRule{{Origin: "https://app.example.com"}},
			settings:    Settings{AllowedMethods: []string{" ", ""}},
			expectedErr: ErrNoAllowedMethods,
		},
		{
			name:     "wildcard",
			rules:    []OriginRule{{Origin: "*"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "subdomain wildcard",
			rules:    []OriginRule{{Origin: "https://*.example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "empty origin",
			rules:    []OriginRule{{Origin: ""}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "null origin",
			rules:    []OriginRule{{Origin: "null"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "trailing slash",
			rules:    []OriginRule{{Origin: "https://app.example.com/"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "path",
			rules:    []OriginRule{{Origin: "https://app.example.com/jobs"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "query",
			rules:    []OriginRule{{Origin: "https://app.example.com?a=b"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "whitespace",
			rules:    []OriginRule{{Origin: " https://app.example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "missing scheme",
			rules:    []OriginRule{{Origin: "app.example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "unsupported scheme",
			rules:    []OriginRule{{Origin: "ftp://app.example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "upper case host",
			rules:    []OriginRule{{Origin: "https://App.Example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "default port",
			rules:    []OriginRule{{Origin: "https://app.example.com:443"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "port out of range",
			rules:    []OriginRule{{Origin: "http://localhost:70000"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "user info",
			rules:    []OriginRule{{Origin: "https://user@app.example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:     "conflicting duplicates",
			rules:    []OriginRule{{Origin: "https://app.example.com", AllowCredentials: true}, {Origin: "https://app.example.com"}},
			settings: defaults,
			invalid:  true,
		},
		{
			name:  "fallback must be listed",
			rules: []OriginRule{{Origin: "https://app.example.com"}},
			settings: Settings{
				MissingOrigin:  MissingOriginFallback,
				FallbackOrigin: "https://other.example.com",
				AllowedMethods: DefaultAllowedMethods,
			},
			expectedErr: errors.New(`cors: fallback origin "https://other.example.com" must be one of the allowed origins`),
		},
		{
			name:  "unknown missing origin mode",
			rules: []OriginRule{{Origin: "https://app.example.com"}},
			settings: Settings{
				MissingOrigin:  "allow-all",
				AllowedMethods: DefaultAllowedMethods,
			},
			expectedErr: errors.New(`cors: unknown missing origin mode "allow-all"`),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := NewPolicy(test.rules, test.settings)
			switch {
			case test.invalid:
				var invalidErr *InvalidOriginError
				assert.ErrorAs(t, err, &invalidErr)
				assert.Nil(t, p)
			case test.expectedErr != nil:
				assert.EqualError(t, err, test.expectedErr.Error())
				assert.Nil(t, p)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, p)
			}
		})
	}
}

func TestNewPolicyDefaultsAndCopies(t *testing.T) {
	rules := []OriginRule{
		{Origin: "https://app.example.com", AllowCredentials: true},
		{Origin: "http://localhost:5173", AllowCredentials: true},
		{Origin: "https://app.example.com", AllowCredentials: true},
	}
	methods := []string{"GET", " POST "}
	p, err := NewPolicy(rules, Settings{AllowedMethods: methods})
	require.NoError(t, err)

	assert.Equal(t, MissingOriginExempt, p.MissingOrigin())
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, p.Origins())
	assert.Equal(t, []string{"GET", "POST"}, p.AllowedMethods())
	assert.Empty(t, p.AllowedHeaders())

	// mutating the inputs or accessor results leaves the policy unchanged
	rules[0].Origin = "https://evil.example.com"
	methods[0] = "TRACE"
	p.Origins()[0] = "https://evil.example.com"
	_, ok := p.Rule("https://app.example.com")
	assert.True(t, ok)
	_, ok = p.Rule("https://evil.example.com")
	assert.False(t, ok)
	assert.Equal(t, []string{"GET", "POST"}, p.AllowedMethods())
}

func TestInvalidOriginError(t *testing.T) {
	_, err := NewPolicy([]OriginRule{{Origin: "*"}}, Settings{AllowedMethods: DefaultAllowedMethods})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"*"`)
	assert.Contains(t, err.Error(), "wildcards are not supported")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"GET", "POST"}, splitList("GET, POST"))
	assert.Equal(t, []string{"GET"}, splitList(" GET ,, "))
	assert.Empty(t, splitList(""))
}
