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

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(origins *[]string, port *int) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(cmd *cobra.Command, args []string) {}}
	cmd.Flags().StringSliceVar(origins, "cors-allowed-origins", []string{"http://localhost:5173"}, "")
	cmd.Flags().IntVar(port, "port", 8080, "")
	return cmd
}

func TestCobraBindEnvironmentVariables(t *testing.T) {
	t.Setenv("JOBPORTALTEST_CORS_ALLOWED_ORIGINS", "https://app.example.com,https://partner.example.org")
	t.Setenv("JOBPORTALTEST_PORT", "9000")

	tests := []struct {
		name            string
		args            []string
		expectedOrigins []string
		expectedPort    int
	}{
		{
			"environment variables populate unset flags",
			nil,
			[]string{"https://app.example.com", "https://partner.example.org"},
			9000,
		},
		{
			"command line arguments take precedence over the environment",
			[]string{"--port", "8081"},
			[]string{"https://app.example.com", "https://partner.example.org"},
			8081,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var origins []string
			var port int
			cmd := newTestCommand(&origins, &port)
			require.NoError(t, cmd.Flags().Parse(test.args))
			CobraBindEnvironmentVariables("jobportaltest")(cmd, nil)
			assert.Equal(t, test.expectedOrigins, origins)
			assert.Equal(t, test.expectedPort, port)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_TEST_ORIGIN=https://app.example.com\nDOTENV_TEST_KEPT=file\n"), 0o600))
	t.Setenv("DOTENV_TEST_KEPT", "environment")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	t.Cleanup(func() { os.Unsetenv("DOTENV_TEST_ORIGIN") })

	assert.Equal(t, "https://app.example.com", os.Getenv("DOTENV_TEST_ORIGIN"))
	assert.Equal(t, "environment", os.Getenv("DOTENV_TEST_KEPT"))
}

func TestLoadDotEnvMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600))
	assert.Error(t, LoadDotEnv(path))
}

func TestLoadDotEnvDefaultMissing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
