//go:build js
// +build js

package audio

import (
	"errors"

	"github.com/gopherjs/gopherjs/js"
)

// OpenWebAudio creates a browser AudioContext, falling back to the prefixed
// webkit constructor.
func OpenWebAudio() (Context, error) {
	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return nil, errors.New("Web Audio API not supported")
	}

	var ctx *js.Object
	if err := catch(func() { ctx = audioCtx.New() }); err != nil {
		return nil, err
	}
	return &webContext{ctx: ctx}, nil
}

// catch converts a JavaScript exception raised by fn into an error.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(*js.Error); ok {
				err = jsErr
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

type webContext struct {
	ctx *js.Object
}

func (c *webContext) CurrentTime() float64 {
	return c.ctx.Get("currentTime").Float()
}

func (c *webContext) Destination() Node {
	return webNode{c.ctx.Get("destination")}
}

func (c *webContext) NewOscillator() (Oscillator, error) {
	var obj *js.Object
	if err := catch(func() { obj = c.ctx.Call("createOscillator") }); err != nil {
		return nil, err
	}
	return webOscillator{webNode{obj}}, nil
}

func (c *webContext) NewGain() (Gain, error) {
	var obj *js.Object
	if err := catch(func() { obj = c.ctx.Call("createGain") }); err != nil {
		return nil, err
	}
	return webGain{webNode{obj}}, nil
}

func (c *webContext) NewAnalyser(size int) (Analyser, error) {
	var obj *js.Object
	err := catch(func() {
		obj = c.ctx.Call("createAnalyser")
		obj.Set("fftSize", size)
	})
	if err != nil {
		return nil, err
	}
	return &webAnalyser{
		webNode: webNode{obj},
		size:    size,
		buf:     js.Global.Get("Float32Array").New(size),
	}, nil
}

// Resume wakes a context suspended by the browser's autoplay policy.
func (c *webContext) Resume() {
	if c.ctx.Get("state").String() == "suspended" {
		c.ctx.Call("resume")
	}
}

func (c *webContext) Close() error {
	return catch(func() { c.ctx.Call("close") })
}

type webNode struct {
	obj *js.Object
}

func (n webNode) object() *js.Object { return n.obj }

func (n webNode) Connect(dst Node) error {
	d, ok := dst.(interface{ object() *js.Object })
	if !ok {
		return errors.New("audio: cannot connect to a non-WebAudio node")
	}
	return catch(func() { n.obj.Call("connect", d.object()) })
}

func (n webNode) Disconnect() {
	catch(func() { n.obj.Call("disconnect") })
}

type webParam struct {
	p *js.Object
}

func (p webParam) Value() float64 { return p.p.Get("value").Float() }

func (p webParam) SetValueAtTime(v, t float64) { p.p.Call("setValueAtTime", v, t) }

func (p webParam) LinearRampToValueAtTime(v, t float64) {
	p.p.Call("linearRampToValueAtTime", v, t)
}

func (p webParam) CancelScheduledValues(t float64) { p.p.Call("cancelScheduledValues", t) }

type webOscillator struct{ webNode }

func (o webOscillator) Frequency() Param { return webParam{o.obj.Get("frequency")} }

func (o webOscillator) SetType(w Waveform) { o.obj.Set("type", w.String()) }

func (o webOscillator) Start() { o.obj.Call("start") }

// Stop tolerates oscillators that were never started.
func (o webOscillator) Stop() {
	catch(func() { o.obj.Call("stop") })
}

type webGain struct{ webNode }

func (g webGain) Gain() Param { return webParam{g.obj.Get("gain")} }

type webAnalyser struct {
	webNode
	size int
	buf  *js.Object
}

func (a *webAnalyser) Size() int { return a.size }

func (a *webAnalyser) TimeDomain(dst []float32) {
	a.obj.Call("getFloatTimeDomainData", a.buf)
	for i := 0; i < len(dst) && i < a.size; i++ {
		dst[i] = float32(a.buf.Index(i).Float())
	}
}
