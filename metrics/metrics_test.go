package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())

	m.RecordTick("physics", time.Millisecond)
	m.RecordTick("physics", time.Millisecond)
	m.RecordTick("camera", time.Microsecond)
	m.RecordEvent("focus", nil)
	m.RecordEvent("focus", errors.New("nope"))
	m.RecordEvent("focus", errors.New("nope"))
	m.ObserveCamera(2.5, true)
	m.ObserveSpeed(3)

	if got := testutil.ToFloat64(m.ticksTotal.WithLabelValues("physics")); got != 2 {
		t.Errorf("physics ticks %g", got)
	}
	if got := testutil.ToFloat64(m.ticksTotal.WithLabelValues("camera")); got != 1 {
		t.Errorf("camera ticks %g", got)
	}
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("focus", "rejected")); got != 2 {
		t.Errorf("rejected focus %g", got)
	}
	if got := testutil.ToFloat64(m.zoom); got != 2.5 {
		t.Errorf("zoom %g", got)
	}
	if got := testutil.ToFloat64(m.focused); got != 1 {
		t.Errorf("focused %g", got)
	}
	if got := testutil.ToFloat64(m.speed); got != 3 {
		t.Errorf("speed %g", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "orrery_ticks_total") {
		t.Fatal("exposition misses orrery_ticks_total")
	}
}

func TestNilCollector(t *testing.T) {
	var m *Collector
	m.RecordTick("physics", time.Second)
	m.RecordEvent("zoom_in", nil)
	m.ObserveCamera(1, false)
	m.ObserveSpeed(1)
}
