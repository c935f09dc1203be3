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

import "github.com/spf13/pflag"

// RegisterFlags registers session flags with pflags
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.SecretKey, "session-secret-key", c.SecretKey, "HMAC secret used to verify session tokens. Session middleware is disabled when empty.")
	flags.StringVar(&c.CookieName, "session-cookie-name", c.CookieName, "Name of the cookie holding the session token")
	flags.StringVar(&c.Issuer, "session-issuer", c.Issuer, "Expected issuer (iss) of session tokens")
}
