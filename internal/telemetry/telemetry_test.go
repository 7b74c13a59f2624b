package telemetry

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/orrery"
)

func snapshot(tick uint64, resets int) orrery.Snapshot {
	return orrery.Snapshot{
		Tick:        tick,
		JulianDate:  2451545.5,
		Mode:        orrery.Integrating,
		TimeScale:   86400,
		ClockResets: resets,
		Bodies: []orrery.BodyState{
			{Name: "sun", Position: mgl64.Vec3{1, 2, 3}},
			{Name: "earth", Position: mgl64.Vec3{1 + 2*kepler.AU, 2, 3}, Velocity: mgl64.Vec3{0, 30000, 0}},
		},
	}
}

func TestObserve(t *testing.T) {
	g := NewWithT(t)
	c := New()

	c.Observe(snapshot(10, 0), map[string]float64{"energy_drift": 2e-9})
	c.Observe(snapshot(25, 1), nil)

	g.Expect(testutil.ToFloat64(c.ticks)).To(Equal(25.0))
	g.Expect(testutil.ToFloat64(c.clockResets)).To(Equal(1.0))
	g.Expect(testutil.ToFloat64(c.julianDate)).To(Equal(2451545.5))
	g.Expect(testutil.ToFloat64(c.physics)).To(Equal(1.0))
	g.Expect(testutil.ToFloat64(c.metric.WithLabelValues("energy_drift"))).To(Equal(2e-9))
	g.Expect(testutil.ToFloat64(c.distance.WithLabelValues("earth"))).To(BeNumerically("~", 2.0, 1e-12))
	g.Expect(testutil.ToFloat64(c.distance.WithLabelValues("sun"))).To(BeZero())
	g.Expect(testutil.ToFloat64(c.speed.WithLabelValues("earth"))).To(Equal(30000.0))

	analytic := snapshot(26, 1)
	analytic.Mode = orrery.Analytic
	c.Observe(analytic, nil)
	g.Expect(testutil.ToFloat64(c.physics)).To(BeZero())
}

func TestHandler(t *testing.T) {
	g := NewWithT(t)
	c := New()
	c.RecordUpdate(150 * time.Microsecond)
	c.Observe(snapshot(1, 0), nil)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	g.Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(string(body)).To(ContainSubstring("orrery_julian_date "))
	g.Expect(string(body)).To(ContainSubstring(`orrery_body_distance_au{body="earth"}`))
	g.Expect(string(body)).To(ContainSubstring("orrery_update_duration_seconds_count 1"))
}
