//go:build !js
// +build !js

// Command server hosts the kiosk pages and the compiled front end, and
// forwards API, stream and capture requests to the backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory to serve the compiled script and assets from")
	backend := flag.String("backend", "http://127.0.0.1:8000", "Backend base URL for /api/, /ws/ and captures")
	flag.Parse()

	target, err := url.Parse(*backend)
	if err != nil || target.Host == "" {
		log.Fatalf("invalid backend URL %q", *backend)
	}

	h := newHandler(Config{StaticDir: *staticDir, Backend: target})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Cymatics kiosk starting on http://localhost%s", addr)
	log.Printf("Serving static files from: %s", *staticDir)
	log.Printf("Proxying %v to %s", proxiedPrefixes, target)

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal(err)
	}
}
