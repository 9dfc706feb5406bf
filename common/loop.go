//go:build !js
// +build !js

package common

import (
	"context"
	"sync"
	"time"
)

// Loop is the native Scheduler. Timers fire on their own goroutines but only
// post into a queue; Run executes the queue serially, so callbacks never race
// with each other or with work submitted through Post.
type Loop struct {
	FrameInterval time.Duration

	mu     sync.Mutex
	nextID Handle
	timers map[Handle]*time.Timer
	queue  chan func()
	start  time.Time

	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop scheduler. Nothing runs until Run is called.
func NewLoop() *Loop {
	return &Loop{
		FrameInterval: DefaultFrameInterval,
		timers:        make(map[Handle]*time.Timer),
		queue:         make(chan func(), 64),
		start:         time.Now(),
		done:          make(chan struct{}),
	}
}

// Post queues fn to run on the loop and reports whether it was queued. Once
// Run has returned, fn is dropped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes queued callbacks until ctx is done. A Loop runs once.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.doneOnce.Do(func() { close(l.done) })
			l.stopAll()
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (l *Loop) After(d time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.timers[id] = time.AfterFunc(d, func() {
		l.Post(func() {
			if l.take(id) {
				fn()
			}
		})
	})
	return id
}

func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

func (l *Loop) RequestFrame(fn func(timestamp float64)) Handle {
	return l.After(l.FrameInterval, func() {
		fn(float64(time.Since(l.start)) / float64(time.Millisecond))
	})
}

func (l *Loop) CancelFrame(h Handle) {
	l.Cancel(h)
}

// take removes id from the pending set and reports whether it was still pending.
func (l *Loop) take(id Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.timers[id]; !ok {
		return false
	}
	delete(l.timers, id)
	return true
}

func (l *Loop) stopAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
}
