//go:build !js
// +build !js

package main

import (
	"embed"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

//go:embed pages/*.html
var pages embed.FS

// pageRoutes maps request paths to embedded pages.
var pageRoutes = map[string]string{
	"/":                "pages/index.html",
	"/index.html":      "pages/index.html",
	"/experiment.html": "pages/experiment.html",
	"/collection.html": "pages/collection.html",
}

// proxiedPrefixes are forwarded to the backend unchanged.
var proxiedPrefixes = []string{"/api/", "/ws/", "/static/captures/"}

// Config configures the kiosk host.
type Config struct {
	StaticDir string
	Backend   *url.URL
}

func newHandler(cfg Config) http.Handler {
	mux := http.NewServeMux()
	proxy := newBackendProxy(cfg.Backend)
	static := http.FileServer(http.Dir(cfg.StaticDir))

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"backend": cfg.Backend.String(),
		})
	})

	for _, prefix := range proxiedPrefixes {
		mux.Handle(prefix, withCORS(proxy))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if name, ok := pageRoutes[r.URL.Path]; ok {
			servePage(w, name)
			return
		}
		static.ServeHTTP(w, r)
	})

	return mux
}

func servePage(w http.ResponseWriter, name string) {
	data, err := pages.ReadFile(name)
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// newBackendProxy forwards requests, including WebSocket upgrades, to
// target. An unreachable backend answers 502 with a JSON body.
func newBackendProxy(target *url.URL) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
	}
	// CORS headers come from withCORS only.
	proxy.ModifyResponse = func(resp *http.Response) error {
		for name := range resp.Header {
			if strings.HasPrefix(name, "Access-Control-") {
				resp.Header.Del(name)
			}
		}
		return nil
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Proxy %s %s failed: %v", r.Method, r.URL.Path, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"detail": "backend unavailable"})
	}
	return proxy
}

// withCORS adds the permissive CORS headers the kiosk has always sent and
// answers preflight requests directly.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
