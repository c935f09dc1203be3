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


package sql

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spothero/jobportal/log"
	"github.com/spothero/jobportal/sql/middleware"
	"go.uber.org/zap"
)

// metrics times and counts the queries issued through one wrapped driver
type metrics struct {
	driverName    string
	queryDuration *prometheus.HistogramVec
	queryCount    *prometheus.CounterVec
}

// newMetrics initializes and returns a metrics object for the given wrapped driver name
func newMetrics(driverName string, registry prometheus.Registerer, mustRegister bool) metrics {
	labelNames := []string{"driver_name", "query_name", "outcome"}
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_query_duration_seconds",
			Help: "Total duration histogram for the DB query",
			// Power of 2 time - 1ms, 2ms, 4ms, ... 32768ms, +Inf ms
			Buckets: prometheus.ExponentialBuckets(0.001, 2.0, 16),
		},
		labelNames,
	)
	queryCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of times a query has executed",
		},
		labelNames,
	)
	// If the user hasnt provided a Prometheus Registry, use the global Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	if mustRegister {
		registry.MustRegister(queryDuration)
		registry.MustRegister(queryCount)
	} else {
		if err := registry.Register(queryDuration); err != nil {
			log.Get(context.Background()).Error("failed to register db query histogram", zap.Error(err))
		}
		if err := registry.Register(queryCount); err != nil {
			log.Get(context.Background()).Error("failed to register db query counter", zap.Error(err))
		}
	}
	return metrics{
		driverName:    driverName,
		queryDuration: queryDuration,
		queryCount:    queryCount,
	}
}

// Middleware records the duration and outcome of every query. Unnamed queries are recorded
// under an empty query_name.
func (m metrics) Middleware(ctx context.Context, queryName, query string, args ...interface{}) (context.Context, middleware.End, error) {
	start := time.Now()
	end := func(ctx context.Context, queryName, query string, queryErr error, args ...interface{}) (context.Context, error) {
		outcome := "success"
		if queryErr != nil {
			outcome = "error"
		}
		labels := prometheus.Labels{
			"driver_name": m.driverName,
			"query_name":  queryName,
			"outcome":     outcome,
		}
		m.queryDuration.With(labels).Observe(time.Since(start).Seconds())
		m.queryCount.With(labels).Inc()
		return ctx, nil
	}
	return ctx, end, nil
}
