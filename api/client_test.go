package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer serves fixed handlers per path and records request bodies.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), srv
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestClient_CurrentExperiment(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected float64
		wantNil  bool
	}{
		{"present", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]interface{}{"status": "success", "frequency": 432.5, "waveform": "square"})
		}, 432.5, false},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"No active experiment"}`, http.StatusNotFound)
		}, 0, true},
		{"null body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, map[string]http.HandlerFunc{"/api/experiment/current": tt.handler})
			exp, err := c.CurrentExperiment(context.Background())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantNil {
				if exp != nil {
					t.Errorf("Expected no experiment, got %+v", exp)
				}
				return
			}
			if exp == nil || exp.Frequency != tt.expected {
				t.Fatalf("Expected frequency %v, got %+v", tt.expected, exp)
			}
		})
	}
}

func TestClient_StartExperimentSendsTone(t *testing.T) {
	var got Tone
	c, _ := newTestServer(t, map[string]http.HandlerFunc{
		"/api/experiment/start": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("Expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}
			json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, map[string]interface{}{"status": "success"})
		},
	})
	if err := c.StartExperiment(context.Background(), Tone{Frequency: 528, Waveform: "triangle"}); err != nil {
		t.Fatal(err)
	}
	if got.Frequency != 528 || got.Waveform != "triangle" {
		t.Errorf("Server received %+v", got)
	}
}

func TestClient_ServerErrorIsNetworkFailure(t *testing.T) {
	c, _ := newTestServer(t, map[string]http.HandlerFunc{
		"/api/experiment/record": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	err := c.Record(context.Background(), RecordRequest{Frequency: 440, Duration: 20})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Expected ErrNetwork, got %v", err)
	}
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.Status != http.StatusInternalServerError || ne.Path != "/api/experiment/record" {
		t.Errorf("Unexpected error details: %+v", ne)
	}
}

func TestClient_UnreachableIsNetworkFailure(t *testing.T) {
	c, srv := newTestServer(t, nil)
	srv.Close()
	if _, err := c.Result(context.Background()); !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
}

func TestClient_StopAndResult(t *testing.T) {
	c, _ := newTestServer(t, map[string]http.HandlerFunc{
		"/api/experiment/stop": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]interface{}{"status": "success", "imagePath": "/captures/a.jpg"})
		},
		"/api/experiment/result": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]interface{}{"status": "success", "frequency": 440, "imagePath": "/captures/a.jpg", "videoPath": "/captures/a.mp4"})
		},
	})
	stop, err := c.Stop(context.Background())
	if err != nil || stop.ImagePath != "/captures/a.jpg" {
		t.Errorf("Unexpected stop result %+v (%v)", stop, err)
	}
	res, err := c.Result(context.Background())
	if err != nil || !res.OK() || res.VideoPath != "/captures/a.mp4" {
		t.Errorf("Unexpected result %+v (%v)", res, err)
	}
}

func TestClient_SaveSendsSubmission(t *testing.T) {
	var got map[string]interface{}
	c, _ := newTestServer(t, map[string]http.HandlerFunc{
		"/api/experiment/save": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusOK)
		},
	})
	sub := Submission{Name: "Ada", Email: "ada@example.com", OptIn: true, SendImage: true}
	if err := c.Save(context.Background(), sub); err != nil {
		t.Fatal(err)
	}
	if got["email"] != "ada@example.com" || got["optIn"] != true || got["sendVideo"] != false {
		t.Errorf("Server received %v", got)
	}
}

func TestClient_Frequencies(t *testing.T) {
	c, _ := newTestServer(t, map[string]http.HandlerFunc{
		"/api/frequencies/used": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]interface{}{"status": "success", "frequencies": []float64{432, 528.4}})
		},
		"/api/frequencies/suggest": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]interface{}{"status": "success", "frequency": 777, "is_new": true})
		},
	})
	h, err := c.UsedFrequencies(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !h.Contains(432.3) || !h.Contains(528) || h.Contains(440) {
		t.Errorf("Unexpected history %v", h)
	}
	f, err := c.SuggestFrequency(context.Background())
	if err != nil || f != 777 {
		t.Errorf("Expected suggestion 777, got %v (%v)", f, err)
	}
}

func TestExperiment_WaveformOrDefault(t *testing.T) {
	if w := (Experiment{Waveform: "square"}).WaveformOrDefault(); w.String() != "square" {
		t.Errorf("Expected square, got %v", w)
	}
	if w := (Experiment{Waveform: "noise"}).WaveformOrDefault(); w.String() != "sine" {
		t.Errorf("Expected unknown waveform to fall back to sine, got %v", w)
	}
}
