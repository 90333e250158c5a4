package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/lixenwraith/orrery/animation"
	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/scene"
)

var (
	_ scene.Observer     = (*Collector)(nil)
	_ animation.Recorder = (*Collector)(nil)
	_ asset.Recorder     = (*Collector)(nil)
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func TestFrameObservation(t *testing.T) {
	c, reg := newTestCollector(t)
	c.ObserveFrame(time.Millisecond)
	c.ObserveFrame(2 * time.Millisecond)

	if got := testutil.ToFloat64(c.Frames); got != 2 {
		t.Fatalf("orrery_frames_total = %v, want 2", got)
	}
	if count := histogramSampleCount(t, reg, "orrery_frame_duration_seconds"); count != 2 {
		t.Fatalf("orrery_frame_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestAnimatorLifecycle(t *testing.T) {
	c, _ := newTestCollector(t)
	c.AnimatorStarted("orbit")
	c.AnimatorStarted("orbit")
	c.AnimatorStarted("spin")
	c.AnimatorStopped("orbit")
	c.AnimatorRetimed("spin")

	if got := testutil.ToFloat64(c.ActiveAnimators.WithLabelValues("orbit")); got != 1 {
		t.Fatalf("orrery_active_animators{orbit} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ActiveAnimators.WithLabelValues("spin")); got != 1 {
		t.Fatalf("orrery_active_animators{spin} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Retimes.WithLabelValues("spin")); got != 1 {
		t.Fatalf("orrery_animator_retimes_total{spin} = %v, want 1", got)
	}
}

func TestTapsAndLoads(t *testing.T) {
	c, _ := newTestCollector(t)
	c.ObserveTap("Earth", true)
	c.ObserveTap("Earth", true)
	c.ObserveTap("Mars/visual", false)
	c.AssetLoaded("card", "ready")
	c.AssetLoaded("visual", "failed")

	if got := testutil.ToFloat64(c.Taps.WithLabelValues("Earth", "true")); got != 2 {
		t.Fatalf("orrery_taps_total{Earth,true} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Taps.WithLabelValues("Mars/visual", "false")); got != 1 {
		t.Fatalf("orrery_taps_total{Mars/visual,false} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.Taps); got != 2 {
		t.Fatalf("orrery_taps_total series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(c.AssetLoads.WithLabelValues("visual", "failed")); got != 1 {
		t.Fatalf("orrery_asset_loads_total{visual,failed} = %v, want 1", got)
	}
}

func TestSceneDrivesCollector(t *testing.T) {
	c, _ := newTestCollector(t)
	sc := scene.New()
	sc.SetObserver(c)

	n := scene.NewNode("target")
	n.SetTapListener(func(*scene.Node, scene.TapEvent) {})
	sc.AddChild(n)

	sc.Update(10 * time.Millisecond)
	sc.Update(10 * time.Millisecond)
	sc.DispatchTap(n, scene.TapEvent{})

	missed := scene.NewNode("missed")
	sc.AddChild(missed)
	sc.DispatchTap(missed, scene.TapEvent{})

	if got := testutil.ToFloat64(c.Frames); got != 2 {
		t.Fatalf("orrery_frames_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Taps.WithLabelValues("target", "true")); got != 1 {
		t.Fatalf("orrery_taps_total{target,true} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Taps.WithLabelValues("missed", "false")); got != 1 {
		t.Fatalf("orrery_taps_total{missed,false} = %v, want 1", got)
	}
}

func TestReRegistrationSharesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	first.ObserveFrame(time.Millisecond)
	if got := testutil.ToFloat64(second.Frames); got != 1 {
		t.Fatalf("shared orrery_frames_total = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveFrame(time.Millisecond)
	c.ObserveTap("x", true)
	c.AnimatorStarted("orbit")
	c.AnimatorStopped("orbit")
	c.AnimatorRetimed("orbit")
	c.AssetLoaded("card", "ready")
}

func TestHandlerExposesMetrics(t *testing.T) {
	c, _ := newTestCollector(t)
	c.ObserveFrame(time.Millisecond)
	c.AnimatorRetimed("orbit")
	c.ObserveTap("Sun/visual", true)
	c.AssetLoaded("visual", "ready")
	c.AnimatorStarted("spin")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"orrery_frames_total",
		"orrery_frame_duration_seconds",
		"orrery_active_animators",
		"orrery_animator_retimes_total",
		"orrery_taps_total",
		"orrery_asset_loads_total",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string) uint64 {
	t.Helper()

	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if h := histogramOf(m); h != nil {
				return h.GetSampleCount()
			}
		}
	}
	return 0
}

func histogramOf(m *dto.Metric) *dto.Histogram {
	return m.GetHistogram()
}
