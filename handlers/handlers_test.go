package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"orrery/config"
	"orrery/metrics"
	"orrery/models"
	"orrery/simulation"
)

type frameResponse struct {
	Data simulation.Frame `json:"data"`
}

func testConfig() config.Config {
	return config.Config{
		Listen:      ":0",
		CORSOrigins: []string{"http://localhost:4200"},
		PhysicsHz:   60,
		CameraHz:    60,
		StreamHz:    100,
		BeltSize:    10,
		RateLimit:   1000,
		RateBurst:   1000,
	}
}

func setup(t *testing.T, cfg config.Config) (*gin.Engine, *simulation.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	collector := metrics.NewCollector(prometheus.NewRegistry())
	engine, err := simulation.New(models.DefaultCatalog(), simulation.Options{BeltSize: cfg.BeltSize, Seed: 5, Metrics: collector})
	if err != nil {
		t.Fatal(err)
	}
	h := New(engine, nil, cfg.StreamInterval())
	return NewRouter(h, cfg, collector), engine
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFrame(t *testing.T, w *httptest.ResponseRecorder) simulation.Frame {
	t.Helper()
	var resp frameResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %s", w.Body.String(), err)
	}
	return resp.Data
}

func TestGetBodies(t *testing.T) {
	r, _ := setup(t, testConfig())
	w := do(r, http.MethodGet, "/api/bodies", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 16 || len(resp.Data) != 16 {
		t.Fatalf("count %d, data %d", resp.Count, len(resp.Data))
	}
}

func TestGetBodyByID(t *testing.T) {
	r, _ := setup(t, testConfig())
	for _, key := range []string{"earth", "Earth", "EARTH"} {
		w := do(r, http.MethodGet, "/api/bodies/"+key, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", key, w.Code)
		}
		var resp struct {
			Data models.Planet `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Data.ID != "earth" {
			t.Fatalf("%s: got %+v", key, resp.Data)
		}
	}

	w := do(r, http.MethodGet, "/api/bodies/pluto", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Body not found") {
		t.Fatalf("pluto: %d %s", w.Code, w.Body.String())
	}
}

func TestGetSnapshotAndStar(t *testing.T) {
	r, _ := setup(t, testConfig())
	f := decodeFrame(t, do(r, http.MethodGet, "/api/snapshot", ""))
	if f.Seq == 0 || len(f.Bodies.Planets) != 8 || f.Camera.Zoom != 1 {
		t.Fatalf("snapshot %+v", f)
	}
	if w := do(r, http.MethodGet, "/api/star", ""); w.Code != http.StatusOK {
		t.Fatalf("star status %d", w.Code)
	}
}

func TestFocusEvents(t *testing.T) {
	r, _ := setup(t, testConfig())

	w := do(r, http.MethodPost, "/api/events/focus", `{"id":"mars"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("focus: %d %s", w.Code, w.Body.String())
	}
	f := decodeFrame(t, w)
	if f.Focus.Mode != "focused" || f.Focus.SelectedID != "mars" || f.Camera.TargetZoom != 4 {
		t.Fatalf("focus frame %+v", f.Focus)
	}

	if w := do(r, http.MethodPost, "/api/events/pan", `{"dx":5,"dy":0}`); w.Code != http.StatusConflict {
		t.Fatalf("pan while focused: %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/events/zoom-in", ""); w.Code != http.StatusConflict {
		t.Fatalf("zoom while focused: %d", w.Code)
	}

	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/focus", `{"id":"mars"}`))
	if f.Focus.Mode != "free" || f.Camera.TargetZoom != 1 {
		t.Fatalf("toggle off %+v", f.Focus)
	}

	if w := do(r, http.MethodPost, "/api/events/focus", `{"id":"pluto"}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown body: %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/events/focus", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing id: %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/events/focus", `{"id":`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: %d", w.Code)
	}
}

func TestFreeCameraEvents(t *testing.T) {
	r, _ := setup(t, testConfig())

	f := decodeFrame(t, do(r, http.MethodPost, "/api/events/zoom-in", ""))
	if f.Camera.TargetZoom != 1.25 || f.Focus.PersistedZoom != 1.25 {
		t.Fatalf("zoom in %+v %+v", f.Camera, f.Focus)
	}
	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/zoom-out", ""))
	if math.Abs(f.Camera.TargetZoom-1) > 1e-9 {
		t.Fatalf("zoom out %+v", f.Camera)
	}

	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/pan", `{"dx":10,"dy":-20}`))
	if f.Camera.TargetCenter.X != 390 || f.Camera.TargetCenter.Y != 320 {
		t.Fatalf("pan target %+v", f.Camera.TargetCenter)
	}

	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/pan/start", `{"x":100,"y":100}`))
	if !f.Focus.Panning {
		t.Fatal("pan start did not begin a drag")
	}
	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/pan/move", `{"x":110,"y":100}`))
	if f.Camera.TargetCenter.X != 380 {
		t.Fatalf("pan move target %+v", f.Camera.TargetCenter)
	}
	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/pan/end", ""))
	if f.Focus.Panning {
		t.Fatal("pan end left the drag active")
	}

	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/wheel", `{"delta_y":-1,"x":400,"y":300,"width":800,"height":600}`))
	if math.Abs(f.Camera.TargetZoom-1.25) > 1e-9 {
		t.Fatalf("wheel zoom %+v", f.Camera)
	}

	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/reset-zoom", ""))
	if f.Camera.TargetZoom != 1 || f.Camera.TargetCenter.X != 400 || f.Camera.TargetCenter.Y != 300 {
		t.Fatalf("reset zoom %+v", f.Camera)
	}
}

func TestClickEmptySpace(t *testing.T) {
	r, _ := setup(t, testConfig())
	if w := do(r, http.MethodPost, "/api/events/click", `{"x":1,"y":1,"width":0,"height":0}`); w.Code != http.StatusBadRequest {
		t.Fatalf("degenerate canvas: %d", w.Code)
	}
	// The top-left corner is empty space at the home view.
	f := decodeFrame(t, do(r, http.MethodPost, "/api/events/click", `{"x":1,"y":1,"width":800,"height":600}`))
	if f.Focus.Mode != "free" {
		t.Fatalf("click on empty space focused %q", f.Focus.SelectedID)
	}
}

func TestClockEvents(t *testing.T) {
	r, engine := setup(t, testConfig())

	f := decodeFrame(t, do(r, http.MethodPost, "/api/events/toggle", ""))
	if f.Clock.State != "paused" {
		t.Fatalf("toggle %+v", f.Clock)
	}

	for _, body := range []string{`{"multiplier":0}`, `{"multiplier":-2}`, `{"multiplier":"fast"}`} {
		if w := do(r, http.MethodPost, "/api/events/speed", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s accepted: %d", body, w.Code)
		}
	}
	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/speed", `{"multiplier":2.5}`))
	if f.Clock.Speed != 2.5 {
		t.Fatalf("speed %+v", f.Clock)
	}

	engine.PhysicsTick(time.Second / 60)
	f = decodeFrame(t, do(r, http.MethodPost, "/api/events/reset", ""))
	if f.Clock.State != "running" || f.Clock.Speed != 1 || f.Clock.Ticks != 0 {
		t.Fatalf("reset clock %+v", f.Clock)
	}
}

func TestEventsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 2
	r, _ := setup(t, cfg)

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodPost, "/api/events/toggle", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
	if w := do(r, http.MethodPost, "/api/events/toggle", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("over budget: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/snapshot", ""); w.Code != http.StatusOK {
		t.Fatalf("reads must not be limited: %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setup(t, testConfig())
	do(r, http.MethodPost, "/api/events/zoom-in", "")
	w := do(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "orrery_events_total") {
		t.Fatalf("metrics: %d", w.Code)
	}
}

func TestStream(t *testing.T) {
	r, engine := setup(t, testConfig())
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first simulation.Frame
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if first.Seq == 0 {
		t.Fatal("stream sent an empty frame")
	}

	engine.PhysicsTick(time.Second / 60)
	var next simulation.Frame
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatal(err)
	}
	if next.Seq <= first.Seq || next.Clock.Ticks != 1 {
		t.Fatalf("stream did not advance: %d -> %d (ticks %d)", first.Seq, next.Seq, next.Clock.Ticks)
	}
}

func TestStreamEndsWhenClientLeaves(t *testing.T) {
	r, engine := setup(t, testConfig())
	finished := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req)
		close(finished)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f simulation.Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatal(err)
	}
	conn.Close()

	// Keep publishing so the handler also hits a failing write.
	deadline := time.After(2 * time.Second)
	for {
		engine.PhysicsTick(time.Second / 60)
		select {
		case <-finished:
			return
		case <-deadline:
			t.Fatal("stream handler still running after the client left")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
