// Package metrics exposes orrery activity as Prometheus metrics
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the orrery metrics
// It satisfies scene.Observer, animation.Recorder and asset.Recorder
// A nil *Collector records nothing
type Collector struct {
	gatherer prometheus.Gatherer

	Frames          prometheus.Counter
	FrameDurations  prometheus.Histogram
	ActiveAnimators *prometheus.GaugeVec
	Retimes         *prometheus.CounterVec
	Taps            *prometheus.CounterVec
	AssetLoads      *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, the default registry when nil
// Metrics already registered by an earlier collector are shared
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Total number of scene frames updated.",
	}), "orrery_frames_total")
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_frame_duration_seconds",
		Help:    "Wall time spent updating one scene frame.",
		Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	}), "orrery_frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	active, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "orrery_active_animators",
		Help: "Number of animators with a running or paused timeline, by kind.",
	}, []string{"kind"}), "orrery_active_animators")
	if err != nil {
		return nil, err
	}

	retimes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_animator_retimes_total",
		Help: "Speed multiplier changes applied by animators, by kind.",
	}, []string{"kind"}), "orrery_animator_retimes_total")
	if err != nil {
		return nil, err
	}

	taps, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_taps_total",
		Help: "Taps delivered to the scene, by consuming node or hit node when unconsumed.",
	}, []string{"target", "consumed"}), "orrery_taps_total")
	if err != nil {
		return nil, err
	}

	loads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_asset_loads_total",
		Help: "Completed asset loads, by asset kind and result.",
	}, []string{"kind", "result"}), "orrery_asset_loads_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		Frames:          frames,
		FrameDurations:  durations,
		ActiveAnimators: active,
		Retimes:         retimes,
		Taps:            taps,
		AssetLoads:      loads,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveFrame(took time.Duration) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.FrameDurations.Observe(took.Seconds())
}

func (c *Collector) ObserveTap(target string, consumed bool) {
	if c == nil {
		return
	}
	c.Taps.WithLabelValues(target, strconv.FormatBool(consumed)).Inc()
}

func (c *Collector) AnimatorStarted(kind string) {
	if c == nil {
		return
	}
	c.ActiveAnimators.WithLabelValues(kind).Inc()
}

func (c *Collector) AnimatorStopped(kind string) {
	if c == nil {
		return
	}
	c.ActiveAnimators.WithLabelValues(kind).Dec()
}

func (c *Collector) AnimatorRetimed(kind string) {
	if c == nil {
		return
	}
	c.Retimes.WithLabelValues(kind).Inc()
}

func (c *Collector) AssetLoaded(kind, result string) {
	if c == nil {
		return
	}
	c.AssetLoads.WithLabelValues(kind, result).Inc()
}

// register adds col to reg, reusing a compatible collector already registered
func register[T prometheus.Collector](reg prometheus.Registerer, col T, name string) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return col, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return col, err
	}
	return col, nil
}
