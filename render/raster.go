//go:build !js
// +build !js

package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Raster draws into an in-memory RGBA image with an anti-aliasing vector
// rasterizer. Glow is ignored.
type Raster struct {
	img   *image.RGBA
	alpha float64
}

// NewRaster creates a w x h transparent image.
func NewRaster(w, h int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, w, h)), alpha: 1}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) Size() (w, h float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) SetAlpha(a float64) {
	r.alpha = math.Max(0, math.Min(1, a))
}

// source resolves a CSS color with the current global alpha applied.
func (r *Raster) source(css string) image.Image {
	c, err := ParseColor(css)
	if err != nil {
		c = color.NRGBA{A: 0xff}
	}
	c.A = uint8(float64(c.A)*r.alpha + 0.5)
	return image.NewUniform(c)
}

func (r *Raster) Fill(color string) {
	draw.Draw(r.img, r.img.Bounds(), r.source(color), image.Point{}, draw.Over)
}

func (r *Raster) FillRect(x, y, w, h float64, color string) {
	r.fill(color, func(z *vector.Rasterizer) {
		z.MoveTo(float32(x), float32(y))
		z.LineTo(float32(x+w), float32(y))
		z.LineTo(float32(x+w), float32(y+h))
		z.LineTo(float32(x), float32(y+h))
		z.ClosePath()
	})
}

// Polyline strokes each segment as a quad of the given width.
func (r *Raster) Polyline(pts []Point, width float64, color string, glow float64) {
	half := width / 2
	r.fill(color, func(z *vector.Rasterizer) {
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*half, dx/l*half
			z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
			z.LineTo(float32(b.X+nx), float32(b.Y+ny))
			z.LineTo(float32(b.X-nx), float32(b.Y-ny))
			z.LineTo(float32(a.X-nx), float32(a.Y-ny))
			z.ClosePath()
		}
	})
}

func (r *Raster) Sector(cx, cy, r0, r1, a0, a1 float64, color string, glow float64) {
	steps := int(math.Max(4, math.Ceil((a1-a0)*r1/2)))
	r.fill(color, func(z *vector.Rasterizer) {
		for i := 0; i <= steps; i++ {
			a := a0 + (a1-a0)*float64(i)/float64(steps)
			x, y := float32(cx+math.Cos(a)*r1), float32(cy+math.Sin(a)*r1)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		for i := steps; i >= 0; i-- {
			a := a0 + (a1-a0)*float64(i)/float64(steps)
			z.LineTo(float32(cx+math.Cos(a)*r0), float32(cy+math.Sin(a)*r0))
		}
		z.ClosePath()
	})
}

func (r *Raster) Circle(cx, cy, radius float64, color string, glow float64) {
	steps := int(math.Max(16, math.Ceil(radius*2)))
	r.fill(color, func(z *vector.Rasterizer) {
		z.MoveTo(float32(cx+radius), float32(cy))
		for i := 1; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			z.LineTo(float32(cx+math.Cos(a)*radius), float32(cy+math.Sin(a)*radius))
		}
		z.ClosePath()
	})
}

// Text draws s with its baseline at y using the fixed 7x13 face.
func (r *Raster) Text(x, y float64, s, color string) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  r.source(color),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(s)
}

func (r *Raster) fill(color string, path func(z *vector.Rasterizer)) {
	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	path(z)
	z.Draw(r.img, b, r.source(color), image.Point{})
}
