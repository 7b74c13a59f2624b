package stream

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
	"github.com/san-kum/orrery/internal/telemetry"
)

func newSystem(t *testing.T) *orrery.System {
	t.Helper()
	sys := orrery.New(orrery.WithStart(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)))
	if err := sys.SetTimeScale(86400); err != nil {
		t.Fatal(err)
	}
	if err := solar.Load(sys, []string{"sun", "earth"}, solar.Analytic); err != nil {
		t.Fatal(err)
	}
	return sys
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readSnapshot(g *WithT, conn *websocket.Conn) orrery.Snapshot {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	g.Expect(err).NotTo(HaveOccurred())

	var snap orrery.Snapshot
	g.Expect(json.Unmarshal(msg, &snap)).To(Succeed())
	return snap
}

func TestHubBroadcast(t *testing.T) {
	g := NewWithT(t)

	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv.URL)
	defer conn.Close()
	g.Eventually(hub.Clients).Should(Equal(1))

	sys := newSystem(t)
	sys.Update(1)
	g.Expect(hub.Broadcast(sys.Snapshot())).To(Succeed())

	snap := readSnapshot(g, conn)
	g.Expect(snap.Tick).To(Equal(uint64(1)))
	earth, ok := snap.Find("earth")
	g.Expect(ok).To(BeTrue())
	g.Expect(earth.Position).To(Equal(sys.Bodies()[1].Position))

	// A late joiner starts from the latest frame.
	late := dial(t, srv.URL)
	defer late.Close()
	g.Expect(readSnapshot(g, late).Tick).To(Equal(uint64(1)))
}

func TestHubDropsClosedClient(t *testing.T) {
	g := NewWithT(t)

	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)
	g.Eventually(hub.Clients).Should(Equal(1))

	conn.Close()
	g.Eventually(hub.Clients).Should(BeZero())
}

func TestRunnerStep(t *testing.T) {
	g := NewWithT(t)

	tel := telemetry.New()
	r := NewRunner(newSystem(t), nil, tel, 50, nil)

	for i := 0; i < 3; i++ {
		r.Step()
	}
	snap := r.Snapshot()
	g.Expect(snap.Tick).To(Equal(uint64(3)))
	g.Expect(snap.Time.Sub(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)).Seconds()).To(BeNumerically("~", 3*86400.0/50, 1e-6))
	g.Expect(testutil.CollectAndCount(tel.Registry(), "orrery_ticks_total")).To(Equal(1))

	r.Do(func(sys *orrery.System) { sys.SetSimulatePhysics(false) })
	g.Expect(r.Snapshot().Mode).To(Equal(orrery.Analytic))
}

func TestRunnerRunUntilCancelled(t *testing.T) {
	g := NewWithT(t)

	hub := NewHub(nil)
	r := NewRunner(newSystem(t), hub, nil, 200, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	g.Eventually(func() uint64 { return r.Snapshot().Tick }).Should(BeNumerically(">=", 3))
	cancel()
	g.Eventually(done).Should(Receive(MatchError(context.Canceled)))
}
