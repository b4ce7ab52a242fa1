package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/config"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/serverapp"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/tracker"
)

type testApp struct {
	handler http.Handler
	cfg     *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()

	// Timestamps a few minutes ahead always land inside the current
	// UTC hour window, keeping the test stable near hour boundaries.
	foundAt := time.Now().UTC().Add(5 * time.Minute).Format(time.RFC3339)
	data := model.Dataset{
		"1": {Lat: 10.5, Lng: 20.5, FoundAt: foundAt},
		"2": {Lat: 11.5, Lng: 21.5, FoundAt: foundAt},
		"3": {Lat: 12.5, Lng: 22.5, FoundAt: foundAt},
	}

	h, err := serverapp.NewHandler(serverapp.Options{
		Config:   cfg,
		Snapshot: tracker.Snapshot{Data: data, FetchedAt: time.Now().UTC()},
		Logger:   log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, cfg: cfg}
}

func (a *testApp) request(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b))
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil)
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_IndexAndEmbeddedStatic(t *testing.T) {
	app := newTestApp(t)

	indexRes := app.request(http.MethodGet, "/", nil)
	if indexRes.Code != http.StatusOK {
		t.Fatalf("index expected 200, got %d", indexRes.Code)
	}
	if !strings.Contains(indexRes.Body.String(), "New Pumpkins Found This Hour") {
		t.Fatalf("index page missing title, body=%s", indexRes.Body.String())
	}

	staticRes := app.request(http.MethodGet, "/static/js/app.js", nil)
	if staticRes.Code != http.StatusOK {
		t.Fatalf("embedded static asset expected 200, got %d", staticRes.Code)
	}
	if staticRes.Body.Len() == 0 {
		t.Fatalf("embedded static asset should not be empty")
	}

	notFoundRes := app.request(http.MethodGet, "/nope", nil)
	if notFoundRes.Code != http.StatusNotFound {
		t.Fatalf("unknown path expected 404, got %d", notFoundRes.Code)
	}
}

func TestServer_InitialDataRoundTrip(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/get_initial_data", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	body := decodeBodyMap(t, res)
	if body["success"] != false {
		t.Fatalf("expected success false before claimed file exists, body=%s", res.Body.String())
	}

	if err := os.WriteFile(app.cfg.ClaimedPath(), []byte(`{"claimed": [1]}`), 0o644); err != nil {
		t.Fatalf("write claimed file: %v", err)
	}

	res = app.request(http.MethodGet, "/get_initial_data", nil)
	body = decodeBodyMap(t, res)
	if body["success"] != true {
		t.Fatalf("expected success true after writing claimed file, body=%s", res.Body.String())
	}
}

func TestServer_UpdatePumpkinsFlow(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/update_pumpkins", map[string]any{
		"data": `{"claimed": [1, 2]}`,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	body := decodeBodyMap(t, res)
	if body["success"] != true {
		t.Fatalf("expected success, body=%s", res.Body.String())
	}
	if got := body["count"].(float64); got != 1 {
		t.Fatalf("expected 1 new pumpkin, got %v body=%s", got, res.Body.String())
	}
	if got := body["claimedPumpkins"].(float64); got != 2 {
		t.Fatalf("expected claimedPumpkins 2, got %v", got)
	}

	badRes := app.json(http.MethodPost, "/update_pumpkins", map[string]any{
		"data": `{"claimed": [1,`,
	})
	if badRes.Code != http.StatusOK {
		t.Fatalf("malformed input must not fail the request, got %d", badRes.Code)
	}
	badBody := decodeBodyMap(t, badRes)
	if badBody["success"] != false {
		t.Fatalf("expected success false, body=%s", badRes.Body.String())
	}
	if msg, _ := badBody["error"].(string); msg == "" {
		t.Fatalf("expected a non-empty error, body=%s", badRes.Body.String())
	}
}

func TestServer_StateReflectsClaimedFile(t *testing.T) {
	app := newTestApp(t)

	if err := os.WriteFile(app.cfg.ClaimedPath(), []byte(`[1, 2, 3]`), 0o644); err != nil {
		t.Fatalf("write claimed file: %v", err)
	}

	res := app.request(http.MethodGet, "/api/state", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	body := decodeBodyMap(t, res)
	if body["success"] != true {
		t.Fatalf("expected success, body=%s", res.Body.String())
	}
	if got := body["count"].(float64); got != 0 {
		t.Fatalf("all pumpkins claimed, expected count 0, got %v", got)
	}
	if got := body["discoveredPumpkins"].(float64); got != 3 {
		t.Fatalf("expected discoveredPumpkins 3, got %v", got)
	}
	if fetchedAt, _ := body["fetchedAt"].(string); fetchedAt == "" {
		t.Fatalf("expected fetchedAt to be set, body=%s", res.Body.String())
	}
}
