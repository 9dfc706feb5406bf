//go:build !js
// +build !js

package common

import (
	"context"
	"testing"
	"time"
)

func TestLoop_RunsTimersSerially(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var order []int
	l.After(20*time.Millisecond, func() { order = append(order, 2) })
	l.Post(func() { order = append(order, 1) })
	l.After(40*time.Millisecond, func() {
		order = append(order, 3)
		cancel()
	})

	if err := l.Run(ctx); err != context.Canceled {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", order)
	}
}

func TestLoop_CancelledTimerDoesNotRun(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	ran := false
	h := l.After(10*time.Millisecond, func() { ran = true })
	l.Cancel(h)
	_ = l.Run(ctx)
	if ran {
		t.Error("Expected cancelled timer not to run")
	}
}

func TestLoop_PostAfterRunReturnsDoesNotBlock(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = l.Run(ctx)

	done := make(chan int)
	go func() {
		queued := 0
		for i := 0; i < 200; i++ {
			if l.Post(func() {}) {
				queued++
			}
		}
		done <- queued
	}()

	select {
	case queued := <-done:
		if queued != 0 {
			t.Errorf("Expected nothing queued after Run returned, got %d", queued)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected Post to return once the loop has stopped")
	}
}
