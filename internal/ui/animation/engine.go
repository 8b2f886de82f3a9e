// Package animation drives short visual pulses on the timer screen.
package animation

import (
	"context"
	"sync"
	"time"
)

// Pattern describes a sequence of highlight pulses.
type Pattern struct {
	Pulses int
	On     time.Duration
	Off    time.Duration
}

// Duration returns how long the pattern runs.
func (pattern Pattern) Duration() time.Duration {
	if pattern.Pulses <= 0 {
		return 0
	}
	return time.Duration(pattern.Pulses)*pattern.On + time.Duration(pattern.Pulses-1)*pattern.Off
}

// Engine toggles a highlight on and off. Only one pattern runs at a time;
// starting another cancels the current one.
type Engine struct {
	mu        sync.Mutex
	highlight func(bool)
	cancel    context.CancelFunc
	running   sync.WaitGroup
}

// New creates a new animation engine. highlight is called from the
// engine goroutine and must hop to the UI thread itself.
func New(highlight func(bool)) *Engine {
	return &Engine{highlight: highlight}
}

// Flash runs pattern until it finishes, ctx is done, or Stop is called.
// The highlight always ends switched off.
func (engine *Engine) Flash(ctx context.Context, pattern Pattern) {
	if pattern.Pulses <= 0 {
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.highlight(false)
		for pulse := 0; pulse < pattern.Pulses; pulse++ {
			if pulse > 0 && !sleepWithContext(runCtx, pattern.Off) {
				return
			}
			engine.highlight(true)
			if !sleepWithContext(runCtx, pattern.On) {
				return
			}
			engine.highlight(false)
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Wait blocks until every started pattern has returned.
func (engine *Engine) Wait() {
	engine.running.Wait()
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.running.Add(1)
	engine.mu.Unlock()

	go func() {
		defer engine.running.Done()
		defer cancel()
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
