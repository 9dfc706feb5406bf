//go:build js
// +build js

package render

import (
	"math"

	"github.com/gopherjs/gopherjs/js"
)

// Canvas draws on an HTML canvas element through its 2D context.
type Canvas struct {
	el  *js.Object
	ctx *js.Object
}

// NewCanvas wraps a canvas element.
func NewCanvas(el *js.Object) *Canvas {
	return &Canvas{el: el, ctx: el.Call("getContext", "2d")}
}

// Element returns the wrapped canvas element.
func (c *Canvas) Element() *js.Object {
	return c.el
}

// FitToElement resizes the backing store to the element's layout size.
func (c *Canvas) FitToElement() {
	w, h := c.el.Get("clientWidth").Int(), c.el.Get("clientHeight").Int()
	if w > 0 && h > 0 {
		c.el.Set("width", w)
		c.el.Set("height", h)
	}
}

func (c *Canvas) Size() (w, h float64) {
	return c.el.Get("width").Float(), c.el.Get("height").Float()
}

func (c *Canvas) SetAlpha(a float64) {
	c.ctx.Set("globalAlpha", a)
}

func (c *Canvas) Fill(color string) {
	w, h := c.Size()
	c.FillRect(0, 0, w, h, color)
}

func (c *Canvas) FillRect(x, y, w, h float64, color string) {
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *Canvas) Polyline(pts []Point, width float64, color string, glow float64) {
	if len(pts) == 0 {
		return
	}
	ctx := c.ctx
	ctx.Call("beginPath")
	ctx.Call("moveTo", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		ctx.Call("lineTo", p.X, p.Y)
	}
	ctx.Set("lineWidth", width)
	ctx.Set("strokeStyle", color)
	c.glow(color, glow)
	ctx.Call("stroke")
	c.glow("", 0)
}

func (c *Canvas) Sector(cx, cy, r0, r1, a0, a1 float64, color string, glow float64) {
	ctx := c.ctx
	ctx.Call("beginPath")
	ctx.Call("arc", cx, cy, r1, a0, a1)
	ctx.Call("arc", cx, cy, r0, a1, a0, true)
	ctx.Call("closePath")
	ctx.Set("fillStyle", color)
	c.glow(color, glow)
	ctx.Call("fill")
	c.glow("", 0)
}

func (c *Canvas) Circle(cx, cy, r float64, color string, glow float64) {
	ctx := c.ctx
	ctx.Call("beginPath")
	ctx.Call("arc", cx, cy, r, 0, math.Pi*2)
	ctx.Set("fillStyle", color)
	c.glow(color, glow)
	ctx.Call("fill")
	c.glow("", 0)
}

func (c *Canvas) Text(x, y float64, s, color string) {
	c.ctx.Set("font", Theme.OverlayFont)
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("fillText", s, x, y)
}

func (c *Canvas) glow(color string, blur float64) {
	c.ctx.Set("shadowBlur", blur)
	if blur > 0 {
		c.ctx.Set("shadowColor", color)
	}
}
