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
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	"github.com/spothero/jobportal/log"
	sqlMiddleware "github.com/spothero/jobportal/sql/middleware"
	"go.uber.org/zap"
)

// OriginSource provides the allow-list a Policy is built from. It is read once at startup.
type OriginSource interface {
	LoadRules(ctx context.Context) ([]OriginRule, error)
}

// StaticSource serves a fixed set of rules, typically from command line flags.
type StaticSource []OriginRule

// LoadRules returns a copy of the static rules
func (s StaticSource) LoadRules(_ context.Context) ([]OriginRule, error) {
	return append([]OriginRule(nil), s...), nil
}

// tableName restricts table names to plain or schema qualified identifiers since they cannot be
// passed as query parameters.
var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLSource loads rules from a table with "origin" and "allow_credentials" columns.
type SQLSource struct {
	DB    *sqlx.DB
	Table string
}

// LoadRules selects every row of the origin table.
func (s SQLSource) LoadRules(ctx context.Context) ([]OriginRule, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("cors: no database connection for the sql origin source")
	}
	if !tableName.MatchString(s.Table) {
		return nil, fmt.Errorf("cors: invalid origin table name %q", s.Table)
	}
	var rules []OriginRule
	query := fmt.Sprintf("SELECT origin, allow_credentials FROM %s ORDER BY origin", s.Table)
	if err := s.DB.SelectContext(sqlMiddleware.NewContext(ctx, "load-cors-origins"), &rules, query); err != nil {
		return nil, fmt.Errorf("cors: failed to load origins from %s: %w", s.Table, err)
	}
	return rules, nil
}

// LoadPolicy reads the allow-list from source and builds the Policy that is used, unchanged, for
// the lifetime of the process. Source errors are retried with exponential backoff until timeout
// elapses. Validation errors are returned immediately.
func LoadPolicy(ctx context.Context, source OriginSource, settings Settings, timeout time.Duration) (*Policy, error) {
	var policy *Policy
	operation := func() error {
		rules, err := source.LoadRules(ctx)
		if err != nil {
			return err
		}
		p, err := NewPolicy(rules, settings)
		if err != nil {
			return backoff.Permanent(err)
		}
		policy = p
		return nil
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if timeout > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 200 * time.Millisecond
		eb.MaxElapsedTime = timeout
		b = eb
	}
	notify := func(err error, next time.Duration) {
		log.Get(ctx).Warn("failed to load allowed origins, retrying", zap.Error(err), zap.Duration("retry_in", next))
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}
	log.Get(ctx).Info(
		"loaded cross origin policy",
		zap.Strings("allowed_origins", policy.Origins()),
		zap.String("missing_origin", string(policy.MissingOrigin())),
	)
	return policy, nil
}
