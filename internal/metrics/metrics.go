// Package metrics exposes prometheus collectors for the message engine and
// the HTTP layer.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements message.Recorder and counts HTTP requests.
type Metrics struct {
	appended *prometheus.CounterVec
	pending  prometheus.Gauge
	standups prometheus.Gauge
	hangman  *prometheus.CounterVec
	requests *prometheus.CounterVec
	registry prometheus.Registerer
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		appended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flockr_messages_appended_total",
			Help: "Messages appended to channel logs, by path.",
		}, []string{"path"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flockr_deferred_pending",
			Help: "Deferred sends waiting for their delivery time.",
		}),
		standups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flockr_standups_active",
			Help: "Channels with a running standup.",
		}),
		hangman: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flockr_hangman_games_total",
			Help: "Hangman commands by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flockr_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		registry: reg,
	}
	reg.MustRegister(m.appended, m.pending, m.standups, m.hangman, m.requests)
	return m
}

// WatchGauge registers a gauge whose value is read from fn on scrape.
func (m *Metrics) WatchGauge(name, help string, fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, fn))
}

func (m *Metrics) MessageAppended(path string) { m.appended.WithLabelValues(path).Inc() }

func (m *Metrics) DeferredPending(delta int) { m.pending.Add(float64(delta)) }

func (m *Metrics) StandupActive(delta int) { m.standups.Add(float64(delta)) }

func (m *Metrics) HangmanOutcome(outcome string) { m.hangman.WithLabelValues(outcome).Inc() }

// Request counts one served HTTP request.
func (m *Metrics) Request(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
