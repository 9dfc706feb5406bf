package render

// recorder is a Surface that logs draw calls for assertions.
type recorder struct {
	w, h      float64
	alpha     float64
	fills     []string
	rects     int
	polylines [][]Point
	colors    []string
	sectors   []string
	circles   []Point
	texts     []string
}

func newRecorder(w, h float64) *recorder {
	return &recorder{w: w, h: h, alpha: 1}
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) SetAlpha(a float64)        { r.alpha = a }
func (r *recorder) Fill(color string)         { r.fills = append(r.fills, color) }
func (r *recorder) FillRect(x, y, w, h float64, color string) {
	r.rects++
}
func (r *recorder) Polyline(pts []Point, width float64, color string, glow float64) {
	r.polylines = append(r.polylines, append([]Point(nil), pts...))
	r.colors = append(r.colors, color)
}
func (r *recorder) Sector(cx, cy, r0, r1, a0, a1 float64, color string, glow float64) {
	r.sectors = append(r.sectors, color)
}
func (r *recorder) Circle(cx, cy, radius float64, color string, glow float64) {
	r.circles = append(r.circles, Point{cx, cy})
}
func (r *recorder) Text(x, y float64, s, color string) { r.texts = append(r.texts, s) }
