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

// Package middleware chains before/after callbacks around SQL queries. Middleware satisfies the
// sqlhooks.Hooks and sqlhooks.OnErrorer interfaces so that it can wrap any database/sql driver.
package middleware

import (
	"context"
)

type ctxKey int

const (
	ctxCallbackValue ctxKey = iota
	ctxQueryNameValue
)

// End is called after a query completes. queryErr is nil on success.
type End func(ctx context.Context, queryName, query string, queryErr error, args ...interface{}) (context.Context, error)

// Start is called before a query is issued and returns the End callback for that query.
type Start func(ctx context.Context, queryName, query string, args ...interface{}) (context.Context, End, error)

// Middleware is an ordered collection of Start callbacks
type Middleware []Start

// NewContext names the next query issued with the returned context. Names show up in logs and
// span names so that queries can be identified without reading the statement.
func NewContext(ctx context.Context, queryName string) context.Context {
	return context.WithValue(ctx, ctxQueryNameValue, queryName)
}

// Before runs every Start callback and stores the End callbacks on the context.
func (m Middleware) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	queryName, _ := ctx.Value(ctxQueryNameValue).(string)
	var err error
	var mwEnd End
	mwEndCallbacks := make([]End, len(m))
	for idx, mw := range m {
		ctx, mwEnd, err = mw(ctx, queryName, query, args...)
		if err != nil {
			return ctx, err
		}
		mwEndCallbacks[idx] = mwEnd
	}
	return context.WithValue(ctx, ctxCallbackValue, mwEndCallbacks), nil
}

// After runs the End callbacks of a successful query.
func (m Middleware) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	return m.end(ctx, nil, query, args...)
}

// OnError runs the End callbacks of a failed query.
func (m Middleware) OnError(ctx context.Context, queryErr error, query string, args ...interface{}) error {
	_, err := m.end(ctx, queryErr, query, args...)
	return err
}

func (m Middleware) end(ctx context.Context, queryErr error, query string, args ...interface{}) (context.Context, error) {
	queryName, _ := ctx.Value(ctxQueryNameValue).(string)
	mwEndCallbacks, ok := ctx.Value(ctxCallbackValue).([]End)
	if !ok {
		return ctx, nil
	}
	var err error
	for _, mw := range mwEndCallbacks {
		if mw == nil {
			continue
		}
		if ctx, err = mw(ctx, queryName, query, queryErr, args...); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}
