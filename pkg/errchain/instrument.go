package errchain

import (
	"context"
	"errors"
)

// Func returns fn instrumented so that every error it returns gains one
// node of the given kind. The nodes carry the site where Func was called,
// which is normally where the instrumented function is declared.
func Func[V, K any](kind K, fn func() (V, error)) func() (V, error) {
	site := Caller(1)
	return func() (V, error) {
		v, err := fn()
		if err != nil {
			return v, wrap(err, kind, site)
		}
		return v, nil
	}
}

// Func1 is Func for functions taking one argument.
func Func1[A, V, K any](kind K, fn func(A) (V, error)) func(A) (V, error) {
	site := Caller(1)
	return func(a A) (V, error) {
		v, err := fn(a)
		if err != nil {
			return v, wrap(err, kind, site)
		}
		return v, nil
	}
}

// Async instruments a context-aware function.
//
// The wrapper runs fn on the calling goroutine and blocks exactly where fn
// blocks; the context is attached only once fn has returned. If fn gave up
// because ctx ended, its error is returned unchanged and no node is built.
func Async[V, K any](kind K, fn func(context.Context) (V, error)) func(context.Context) (V, error) {
	site := Caller(1)
	return func(ctx context.Context) (V, error) {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
			return v, err
		}
		return v, wrap(err, kind, site)
	}
}

// Future is the pending outcome of a computation started with Go.
type Future[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Go runs fn on a new goroutine and returns its pending outcome.
// Instrument fn with Async to have its failures wrapped on that goroutine.
func Go[V any](ctx context.Context, fn func(context.Context) (V, error)) *Future[V] {
	f := &Future[V]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Done is closed once the computation has produced its outcome.
func (f *Future[V]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the computation resolves or ctx ends. In the latter
// case it returns ctx.Err() and the computation keeps running.
func (f *Future[V]) Await(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
