// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"runtime"
)

// Context is a graphics context that can be made current on the
// calling OS thread.
type Context interface {
	MakeCurrent() error
	ReleaseCurrent()
}

// thread runs functions on a goroutine locked to an OS thread with
// a current context.
type thread struct {
	funcs chan func()
	done  chan struct{}
}

func startThread(ctx Context) (*thread, error) {
	t := &thread{
		funcs: make(chan func()),
		done:  make(chan struct{}),
	}
	errCh := make(chan error)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(t.done)
		if err := ctx.MakeCurrent(); err != nil {
			errCh <- err
			return
		}
		errCh <- nil
		for f := range t.funcs {
			f()
		}
		ctx.ReleaseCurrent()
	}()
	if err := <-errCh; err != nil {
		return nil, err
	}
	return t, nil
}

func (t *thread) do(f func() error) error {
	errCh := make(chan error, 1)
	t.funcs <- func() {
		errCh <- f()
	}
	return <-errCh
}

// stop ends the thread after the queued functions ran.
func (t *thread) stop() {
	close(t.funcs)
	<-t.done
}
