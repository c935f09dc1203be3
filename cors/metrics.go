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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spothero/jobportal/log"
	"go.uber.org/zap"
)

// decision outcomes used as the "outcome" label
const (
	outcomePermitted = "permitted"
	outcomeUnmatched = "unmatched"
	outcomeExempt    = "exempt"
)

type metrics struct {
	decisions  *prometheus.CounterVec
	preflights *prometheus.CounterVec
}

// newMetrics creates the decision counters. If no Registry is provided, the global Registry is
// used. If mustRegister is true, a registration error panics.
func newMetrics(registry prometheus.Registerer, mustRegister bool) metrics {
	decisions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cors_decisions_total",
			Help: "Total number of origin policy decisions by outcome",
		},
		[]string{"outcome"},
	)
	preflights := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cors_preflights_total",
			Help: "Total number of OPTIONS preflight requests answered by the origin policy",
		},
		[]string{"permitted"},
	)
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	if mustRegister {
		registry.MustRegister(decisions, preflights)
	} else {
		if err := registry.Register(decisions); err != nil {
			log.Get(context.Background()).Error("failed to register cors decision counter", zap.Error(err))
		}
		if err := registry.Register(preflights); err != nil {
			log.Get(context.Background()).Error("failed to register cors preflight counter", zap.Error(err))
		}
	}
	return metrics{decisions: decisions, preflights: preflights}
}

func (m metrics) observe(d Decision) {
	outcome := outcomeUnmatched
	switch {
	case d.Exempt:
		outcome = outcomeExempt
	case d.Permitted:
		outcome = outcomePermitted
	}
	m.decisions.With(prometheus.Labels{"outcome": outcome}).Inc()
	if d.Preflight {
		m.preflights.With(prometheus.Labels{"permitted": strconv.FormatBool(d.Permitted)}).Inc()
	}
}
