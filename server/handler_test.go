//go:build !js
// +build !js

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestKiosk starts a fake backend and a kiosk host in front of it.
func newTestKiosk(t *testing.T, backend http.HandlerFunc) *httptest.Server {
	t.Helper()
	be := httptest.NewServer(backend)
	t.Cleanup(be.Close)
	target, _ := url.Parse(be.URL)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "kiosk.js"), []byte("// compiled"), 0o644); err != nil {
		t.Fatal(err)
	}
	kiosk := httptest.NewServer(newHandler(Config{StaticDir: dir, Backend: target}))
	t.Cleanup(kiosk.Close)
	return kiosk
}

func get(t *testing.T, u string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestHandler_ServesPages(t *testing.T) {
	kiosk := newTestKiosk(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected backend request %s", r.URL.Path)
	})

	tests := []struct {
		path     string
		contains string
	}{
		{"/", `id="dialCanvas"`},
		{"/index.html", `id="previewBtn"`},
		{"/experiment.html", `id="cameraFeed"`},
		{"/collection.html", `id="collectionForm"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, kiosk.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200, got %d", resp.StatusCode)
			}
			if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
				t.Errorf("Expected HTML, got %q", resp.Header.Get("Content-Type"))
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("Expected page to contain %s", tt.contains)
			}
		})
	}
}

func TestHandler_ServesStaticFiles(t *testing.T) {
	kiosk := newTestKiosk(t, func(http.ResponseWriter, *http.Request) {})
	resp, body := get(t, kiosk.URL+"/kiosk.js")
	if resp.StatusCode != http.StatusOK || body != "// compiled" {
		t.Errorf("Expected the compiled script, got %d %q", resp.StatusCode, body)
	}
}

func TestHandler_ProxiesToBackend(t *testing.T) {
	var seen []string
	kiosk := newTestKiosk(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "http://elsewhere")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","frequencies":[432]}`))
	})

	resp, body := get(t, kiosk.URL+"/api/frequencies/used")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "432") {
		t.Fatalf("Expected proxied body, got %d %q", resp.StatusCode, body)
	}
	if got := resp.Header.Values("Access-Control-Allow-Origin"); len(got) != 1 || got[0] != "*" {
		t.Errorf("Expected a single wildcard CORS header, got %v", got)
	}

	get(t, kiosk.URL+"/static/captures/1.jpg")
	if len(seen) != 2 || seen[0] != "GET /api/frequencies/used" || seen[1] != "GET /static/captures/1.jpg" {
		t.Errorf("Unexpected backend requests %v", seen)
	}
}

func TestHandler_Preflight(t *testing.T) {
	kiosk := newTestKiosk(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Expected preflight to be answered locally, backend saw %s", r.Method)
	})
	req, _ := http.NewRequest(http.MethodOptions, kiosk.URL+"/api/experiment/start", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Access-Control-Allow-Methods") == "" {
		t.Errorf("Unexpected preflight response %d %v", resp.StatusCode, resp.Header)
	}
}

func TestHandler_Health(t *testing.T) {
	kiosk := newTestKiosk(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected backend request %s", r.URL.Path)
	})
	_, body := get(t, kiosk.URL+"/api/health")
	var health map[string]string
	if err := json.Unmarshal([]byte(body), &health); err != nil || health["status"] != "healthy" {
		t.Errorf("Unexpected health response %q", body)
	}
}

func TestHandler_BackendDown(t *testing.T) {
	target, _ := url.Parse("http://127.0.0.1:1")
	kiosk := httptest.NewServer(newHandler(Config{StaticDir: t.TempDir(), Backend: target}))
	defer kiosk.Close()

	resp, body := get(t, kiosk.URL+"/api/experiment/current")
	if resp.StatusCode != http.StatusBadGateway || !strings.Contains(body, "backend unavailable") {
		t.Errorf("Expected 502, got %d %q", resp.StatusCode, body)
	}
}
