//go:build js
// +build js

package common

import (
	"time"

	"github.com/gopherjs/gopherjs/js"
)

// Browser schedules work with setTimeout and requestAnimationFrame.
type Browser struct{}

func (Browser) After(d time.Duration, fn func()) Handle {
	return Handle(js.Global.Call("setTimeout", fn, d.Milliseconds()).Int())
}

func (Browser) Cancel(h Handle) {
	if h != 0 {
		js.Global.Call("clearTimeout", int(h))
	}
}

func (Browser) RequestFrame(fn func(timestamp float64)) Handle {
	return Handle(js.Global.Call("requestAnimationFrame", fn).Int())
}

func (Browser) CancelFrame(h Handle) {
	if h != 0 {
		js.Global.Call("cancelAnimationFrame", int(h))
	}
}
