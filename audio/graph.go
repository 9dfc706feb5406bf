package audio

import (
	"errors"
	"math"
	"sync"
)

var errForeignNode = errors.New("audio: node belongs to another context")

type nodeKind int

const (
	kindDestination nodeKind = iota
	kindOscillator
	kindGain
	kindAnalyser
)

// SoftContext is a software audio graph with sample-accurate parameter
// automation. Tests render it offline; native builds stream it to the sound
// card through Output. It is safe to render from one goroutine while another
// drives the graph.
type SoftContext struct {
	mu     sync.Mutex
	rate   float64
	frame  int64
	dest   *softNode
	nodes  []*softNode
	calls  int
	closed bool
}

// NewSoftContext creates an empty graph running at sampleRate.
func NewSoftContext(sampleRate float64) *SoftContext {
	c := &SoftContext{rate: sampleRate}
	c.dest = c.newNode(kindDestination)
	return c
}

// Opener returns an Opener that hands out c.
func (c *SoftContext) Opener() Opener {
	return func() (Context, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return nil, errors.New("audio: context closed")
		}
		return c, nil
	}
}

func (c *SoftContext) newNode(kind nodeKind) *softNode {
	n := &softNode{ctx: c, kind: kind, cached: -1}
	c.nodes = append(c.nodes, n)
	return n
}

func (c *SoftContext) now() float64 {
	return float64(c.frame) / c.rate
}

// SampleRate returns the graph's sample rate in Hz.
func (c *SoftContext) SampleRate() float64 {
	return c.rate
}

func (c *SoftContext) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *SoftContext) Destination() Node {
	return c.dest
}

func (c *SoftContext) NewOscillator() (Oscillator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	n := c.newNode(kindOscillator)
	n.param = &softParam{ctx: c, initial: 440}
	return softOscillator{n}, nil
}

func (c *SoftContext) NewGain() (Gain, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	n := c.newNode(kindGain)
	n.param = &softParam{ctx: c, initial: 1}
	return softGain{n}, nil
}

func (c *SoftContext) NewAnalyser(size int) (Analyser, error) {
	if size <= 0 {
		return nil, errors.New("audio: analyser size must be positive")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	n := c.newNode(kindAnalyser)
	n.ring = make([]float32, size)
	return softAnalyser{n}, nil
}

func (c *SoftContext) Resume() {}

func (c *SoftContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Calls counts graph operations (node creation, wiring, parameter access).
func (c *SoftContext) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Sources counts running oscillators that feed another node.
func (c *SoftContext) Sources() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, n := range c.nodes {
		if n.kind == kindOscillator && n.running && c.consumed(n) {
			count++
		}
	}
	return count
}

func (c *SoftContext) consumed(src *softNode) bool {
	for _, n := range c.nodes {
		for _, in := range n.inputs {
			if in == src {
				return true
			}
		}
	}
	return false
}

// Render fills dst with the next len(dst) samples and advances the clock.
func (c *SoftContext) Render(dst []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range dst {
		v := c.dest.pull(c.frame, c.now())
		dst[i] = float32(math.Max(-1, math.Min(1, v)))
		c.frame++
	}
	t := c.now()
	for _, n := range c.nodes {
		if n.param != nil {
			n.param.prune(t)
		}
	}
}

// RenderSeconds renders d seconds and returns the samples.
func (c *SoftContext) RenderSeconds(d float64) []float32 {
	out := make([]float32, int(math.Round(d*c.rate)))
	c.Render(out)
	return out
}

type softNode struct {
	ctx    *SoftContext
	kind   nodeKind
	inputs []*softNode
	cached int64
	out    float64

	param *softParam // frequency or gain

	// oscillator
	wave    Waveform
	phase   float64
	running bool
	stopped bool

	// analyser
	ring []float32
	pos  int
}

func (n *softNode) node() *softNode { return n }

func (n *softNode) Connect(dst Node) error {
	d, ok := dst.(interface{ node() *softNode })
	if !ok || d.node().ctx != n.ctx {
		return errForeignNode
	}
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	n.ctx.calls++
	target := d.node()
	for _, in := range target.inputs {
		if in == n {
			return nil
		}
	}
	target.inputs = append(target.inputs, n)
	return nil
}

func (n *softNode) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	n.ctx.calls++
	for _, other := range n.ctx.nodes {
		for i, in := range other.inputs {
			if in == n {
				other.inputs = append(other.inputs[:i], other.inputs[i+1:]...)
				break
			}
		}
	}
}

// pull computes the node output for frame, once per frame. Callers hold ctx.mu.
func (n *softNode) pull(frame int64, t float64) float64 {
	if n.cached == frame {
		return n.out
	}
	var v float64
	if n.kind == kindOscillator {
		if n.running {
			v = n.wave.Shape(n.phase)
			n.phase += 2 * math.Pi * n.param.at(t) / n.ctx.rate
			if n.phase >= 2*math.Pi {
				n.phase = math.Mod(n.phase, 2*math.Pi)
			}
		}
	} else {
		for _, in := range n.inputs {
			v += in.pull(frame, t)
		}
		switch n.kind {
		case kindGain:
			v *= n.param.at(t)
		case kindAnalyser:
			n.ring[n.pos] = float32(v)
			n.pos = (n.pos + 1) % len(n.ring)
		}
	}
	n.cached, n.out = frame, v
	return v
}

type softOscillator struct{ *softNode }

func (o softOscillator) Frequency() Param { return o.param }

func (o softOscillator) SetType(w Waveform) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.ctx.calls++
	o.wave = w
}

func (o softOscillator) Start() {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.ctx.calls++
	if !o.stopped {
		o.running = true
	}
}

func (o softOscillator) Stop() {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.ctx.calls++
	o.running = false
	o.stopped = true
}

type softGain struct{ *softNode }

func (g softGain) Gain() Param { return g.param }

type softAnalyser struct{ *softNode }

func (a softAnalyser) Size() int { return len(a.ring) }

// TimeDomain copies the window oldest sample first.
func (a softAnalyser) TimeDomain(dst []float32) {
	a.ctx.mu.Lock()
	defer a.ctx.mu.Unlock()
	size := len(a.ring)
	for i := 0; i < len(dst) && i < size; i++ {
		dst[i] = a.ring[(a.pos+i)%size]
	}
}
