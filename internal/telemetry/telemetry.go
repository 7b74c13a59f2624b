// Package telemetry exposes the state of a running system as prometheus
// metrics on a private registry.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/orrery"
)

const namespace = "orrery"

type Collector struct {
	registry *prometheus.Registry

	updateDuration prometheus.Histogram
	ticks          prometheus.Counter
	clockResets    prometheus.Counter
	julianDate     prometheus.Gauge
	timeScale      prometheus.Gauge
	physics        prometheus.Gauge
	metric         *prometheus.GaugeVec
	distance       *prometheus.GaugeVec
	speed          *prometheus.GaugeVec

	lastTick   uint64
	lastResets int
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_duration_seconds",
			Help:      "Wall time spent in one system update.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "System updates performed.",
		}),
		clockResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_resets_total",
			Help:      "Times the simulation clock left its range and was reset.",
		}),
		julianDate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "julian_date",
			Help:      "Current simulation date as a Julian date.",
		}),
		timeScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_scale",
			Help:      "Simulated seconds per wall-clock second.",
		}),
		physics: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulate_physics",
			Help:      "1 while integrating, 0 while following analytic orbits.",
		}),
		metric: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "metric",
			Help:      "Current value of a system metric.",
		}, []string{"name"}),
		distance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "body_distance_au",
			Help:      "Distance of a body from the first body, in AU.",
		}, []string{"body"}),
		speed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "body_speed_meters_per_second",
			Help:      "Speed of a body in the simulation frame.",
		}, []string{"body"}),
	}

	c.registry.MustRegister(
		c.updateDuration, c.ticks, c.clockResets, c.julianDate,
		c.timeScale, c.physics, c.metric, c.distance, c.speed,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RecordUpdate(d time.Duration) {
	c.updateDuration.Observe(d.Seconds())
}

// Observe publishes a snapshot and the system's metric values. Counters
// advance by the difference from the previous snapshot.
func (c *Collector) Observe(snap orrery.Snapshot, metrics map[string]float64) {
	if snap.Tick > c.lastTick {
		c.ticks.Add(float64(snap.Tick - c.lastTick))
	}
	c.lastTick = snap.Tick
	if snap.ClockResets > c.lastResets {
		c.clockResets.Add(float64(snap.ClockResets - c.lastResets))
	}
	c.lastResets = snap.ClockResets

	c.julianDate.Set(snap.JulianDate)
	c.timeScale.Set(snap.TimeScale)
	if snap.Mode == orrery.Integrating {
		c.physics.Set(1)
	} else {
		c.physics.Set(0)
	}

	for name, v := range metrics {
		c.metric.WithLabelValues(name).Set(v)
	}

	if len(snap.Bodies) == 0 {
		return
	}
	origin := snap.Bodies[0].Position
	for _, b := range snap.Bodies {
		c.distance.WithLabelValues(b.Name).Set(b.Position.Sub(origin).Len() / kepler.AU)
		c.speed.WithLabelValues(b.Name).Set(b.Velocity.Len())
	}
}
