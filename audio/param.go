package audio

import "sort"

type automation struct {
	linear bool
	value  float64
	time   float64
}

// softParam follows the WebAudio automation model for the subset the engine
// uses: a value holds until the next event, and a linear ramp interpolates from
// the previous event to its own time.
type softParam struct {
	ctx     *SoftContext
	initial float64
	events  []automation
}

func (p *softParam) insert(e automation) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > e.time })
	p.events = append(p.events, automation{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

// at returns the value at time t. Callers hold ctx.mu.
func (p *softParam) at(t float64) float64 {
	v, from := p.initial, 0.0
	for _, e := range p.events {
		if e.time <= t {
			v, from = e.value, e.time
			continue
		}
		if e.linear && e.time > from {
			return v + (e.value-v)*(t-from)/(e.time-from)
		}
		break
	}
	return v
}

// prune folds events that can no longer affect values at or after t.
func (p *softParam) prune(t float64) {
	n := 0
	for n < len(p.events) && p.events[n].time <= t {
		n++
	}
	if n <= 1 {
		return
	}
	p.initial = p.events[n-1].value
	p.events = append(p.events[:0], p.events[n-1:]...)
}

func (p *softParam) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ctx.calls++
	return p.at(p.ctx.now())
}

func (p *softParam) SetValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ctx.calls++
	p.insert(automation{value: v, time: t})
}

func (p *softParam) LinearRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ctx.calls++
	p.insert(automation{linear: true, value: v, time: t})
}

func (p *softParam) CancelScheduledValues(t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ctx.calls++
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time >= t })
	p.events = p.events[:i]
}
