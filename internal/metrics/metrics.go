// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes Prometheus metrics for the HTTP server, the
// eligibility checks and the GitHub API calls made on their behalf.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sirseerhq/hacktoberfest-checker/pkg/version"
)

const (
	Namespace       = "hfc"
	SubsystemHTTP   = "http"
	SubsystemGitHub = "github"
)

// Metrics holds the collectors registered on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	checksTotal         *prometheus.CounterVec
	prsEvaluatedTotal   *prometheus.CounterVec
	githubRequestsTotal *prometheus.CounterVec
	githubRateRemaining prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a new registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
	m.registry.MustRegister(collectors.NewGoCollector())

	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   Namespace,
		Name:        "build_info",
		Help:        "The running version.",
		ConstLabels: prometheus.Labels{"version": version.Version},
	})
	buildInfo.Set(1)
	m.registry.MustRegister(buildInfo)

	m.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemHTTP,
		Name:      "requests_total",
		Help:      "The total number of HTTP requests served.",
	}, []string{"handler", "method", "status_code"})
	m.registry.MustRegister(m.httpRequestsTotal)

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: SubsystemHTTP,
		Name:      "request_duration_seconds",
		Help:      "Time to serve an HTTP request.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"handler", "method", "status_code"})
	m.registry.MustRegister(m.httpRequestDuration)

	m.checksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "checks_total",
		Help:      "The total number of eligibility checks by result.",
	}, []string{"result"})
	m.registry.MustRegister(m.checksTotal)

	m.prsEvaluatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "prs_evaluated_total",
		Help:      "The total number of pull requests evaluated by outcome.",
	}, []string{"outcome"})
	m.registry.MustRegister(m.prsEvaluatedTotal)

	m.githubRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemGitHub,
		Name:      "requests_total",
		Help:      "The total number of GitHub API responses by status code.",
	}, []string{"status_code"})
	m.registry.MustRegister(m.githubRequestsTotal)

	m.githubRateRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: SubsystemGitHub,
		Name:      "rate_limit_remaining",
		Help:      "The X-RateLimit-Remaining value of the latest GitHub response.",
	})
	m.registry.MustRegister(m.githubRateRemaining)

	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(handler, method string, statusCode int, elapsed float64) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"handler": handler, "method": method, "status_code": strconv.Itoa(statusCode)}
	m.httpRequestsTotal.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(elapsed)
}

// CheckCompleted implements eligibility.Recorder.
func (m *Metrics) CheckCompleted(result string) {
	if m != nil {
		m.checksTotal.WithLabelValues(result).Inc()
	}
}

// PREvaluated implements eligibility.Recorder.
func (m *Metrics) PREvaluated(outcome string) {
	if m != nil {
		m.prsEvaluatedTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveCall implements github.CallObserver.
func (m *Metrics) ObserveCall(statusCode, rateRemaining int) {
	if m == nil {
		return
	}
	m.githubRequestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	if rateRemaining >= 0 {
		m.githubRateRemaining.Set(float64(rateRemaining))
	}
}
