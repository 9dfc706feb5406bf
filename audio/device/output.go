//go:build !js
// +build !js

// Package device plays a software audio graph through the sound card. It is
// separate from package audio because oto needs cgo on Linux.
package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/simukka/cymatics-kiosk/audio"
)

// Output streams a SoftContext to the sound card as mono float32.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
	graph  *audio.SoftContext

	mu  sync.Mutex
	buf []float32
}

// NewOutput opens the platform audio device for graph. Only one Output may
// exist per process.
func NewOutput(graph *audio.SoftContext, bufferSize time.Duration) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(graph.SampleRate()),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrAudioUnavailable, err)
	}
	<-ready

	o := &Output{ctx: ctx, graph: graph}
	o.player = ctx.NewPlayer(o)
	return o, nil
}

// Read renders the next samples from the graph. oto calls it from its own
// goroutine.
func (o *Output) Read(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := len(p) / 4
	if len(o.buf) < n {
		o.buf = make([]float32, n)
	}
	samples := o.buf[:n]
	o.graph.Render(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Play starts pulling audio from the graph.
func (o *Output) Play() {
	o.player.Play()
}

// Close stops playback.
func (o *Output) Close() error {
	return o.player.Close()
}
