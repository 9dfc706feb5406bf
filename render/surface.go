package render

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Surface is the drawing subset shared by the browser canvas and the raster
// image. Colors are CSS hex ("#RGB", "#RRGGBB") or "rgba(r,g,b,a)" strings.
// Glow is a blur radius honoured where the backend supports it.
type Surface interface {
	Size() (w, h float64)
	SetAlpha(a float64)
	Fill(color string)
	FillRect(x, y, w, h float64, color string)
	Polyline(pts []Point, width float64, color string, glow float64)
	Sector(cx, cy, r0, r1, a0, a1 float64, color string, glow float64)
	Circle(cx, cy, r float64, color string, glow float64)
	Text(x, y float64, s, color string)
}
