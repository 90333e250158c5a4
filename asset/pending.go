package asset

import (
	"context"
	"fmt"
)

// State is the resolution of a Pending resource
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

type result[T any] struct {
	value T
	err   error
}

// Pending is a resource that resolves once to Ready(value) or Failed(err)
// The producer completes through a buffered channel; the owner observes the
// transition by polling on its own goroutine, so no callback ever runs on the
// producer side
type Pending[T any] struct {
	done  chan result[T]
	state State
	value T
	err   error
}

// NewPromise returns a loading resource and its one-shot completion functions
// Only the first call to either function has effect
func NewPromise[T any]() (p *Pending[T], resolve func(T), reject func(error)) {
	p = &Pending[T]{done: make(chan result[T], 1)}
	complete := func(r result[T]) {
		select {
		case p.done <- r:
		default:
		}
	}
	resolve = func(v T) { complete(result[T]{value: v}) }
	reject = func(err error) { complete(result[T]{err: err}) }
	return p, resolve, reject
}

// Go runs load on a new goroutine and returns its pending result
// A panic inside load becomes a failure
func Go[T any](load func() (T, error)) *Pending[T] {
	p, resolve, reject := NewPromise[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				reject(fmt.Errorf("asset: loader panic: %v", r))
			}
		}()
		v, err := load()
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	}()
	return p
}

// Ready returns an already resolved resource
func Ready[T any](v T) *Pending[T] {
	return &Pending[T]{state: StateReady, value: v}
}

// Failed returns an already failed resource
func Failed[T any](err error) *Pending[T] {
	return &Pending[T]{state: StateFailed, err: err}
}

// Poll observes completion without blocking and returns the current state
// Once Ready or Failed the state never changes
func (p *Pending[T]) Poll() State {
	if p.state != StateLoading {
		return p.state
	}
	select {
	case r := <-p.done:
		p.settle(r)
	default:
	}
	return p.state
}

// Wait blocks until the resource settles or ctx ends
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	if p.state == StateLoading {
		select {
		case r := <-p.done:
			p.settle(r)
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	return p.value, p.err
}

// State returns the last observed state without polling
func (p *Pending[T]) State() State {
	return p.state
}

// Value returns the resolved value and whether it is ready
func (p *Pending[T]) Value() (T, bool) {
	return p.value, p.state == StateReady
}

// Err returns the failure, nil unless Failed
func (p *Pending[T]) Err() error {
	return p.err
}

func (p *Pending[T]) settle(r result[T]) {
	if r.err != nil {
		p.state = StateFailed
		p.err = r.err
		return
	}
	p.state = StateReady
	p.value = r.value
}
