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
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlags(t *testing.T) {
	flags := pflag.NewFlagSet("pflags", pflag.PanicOnError)
	c := NewDefaultConfig()
	c.RegisterFlags(flags)
	err := flags.Parse(nil)
	assert.NoError(t, err)

	enableMiddleware, err := flags.GetBool("cors-enable-middleware")
	assert.NoError(t, err)
	assert.Equal(t, true, enableMiddleware)

	origins, err := flags.GetStringSlice("cors-allowed-origins")
	assert.NoError(t, err)
	assert.Empty(t, origins)

	methods, err := flags.GetString("cors-allowed-methods")
	assert.NoError(t, err)
	assert.Equal(t, "GET, POST, PUT, DELETE, PATCH, OPTIONS", methods)

	headers, err := flags.GetString("cors-allowed-headers")
	assert.NoError(t, err)
	assert.Equal(t, "Content-Type, Authorization, Accept, X-Requested-With", headers)

	credentials, err := flags.GetBool("cors-allow-credentials")
	assert.NoError(t, err)
	assert.Equal(t, true, credentials)

	missing, err := flags.GetString("cors-missing-origin")
	assert.NoError(t, err)
	assert.Equal(t, "exempt", missing)

	source, err := flags.GetString("cors-origin-source")
	assert.NoError(t, err)
	assert.Equal(t, "flags", source)

	table, err := flags.GetString("cors-origin-table")
	assert.NoError(t, err)
	assert.Equal(t, "cors_origins", table)

	timeout, err := flags.GetDuration("cors-load-timeout")
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestRegisterFlagsParse(t *testing.T) {
	flags := pflag.NewFlagSet("pflags", pflag.PanicOnError)
	c := NewDefaultConfig()
	c.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{
		"--cors-allowed-origins", "https://app.example.com,http://localhost:5173",
		"--cors-missing-origin", "fallback",
		"--cors-fallback-origin", "https://app.example.com",
		"--cors-allow-credentials=false",
	}))

	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, c.AllowedOrigins)
	assert.Equal(t, StaticSource{
		{Origin: "https://app.example.com", AllowCredentials: false},
		{Origin: "http://localhost:5173", AllowCredentials: false},
	}, c.StaticSource())
	assert.Equal(t, Settings{
		MissingOrigin:  MissingOriginFallback,
		FallbackOrigin: "https://app.example.com",
		AllowedMethods: DefaultAllowedMethods,
		AllowedHeaders: DefaultAllowedHeaders,
	}, c.Settings())
}
