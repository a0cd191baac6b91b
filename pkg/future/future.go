// Package future provides the deferred-result primitive behind every REST action.
//
// A Future is a function that always returns the same (value, error) pair no matter how many
// times it is called. Actions hand out Futures when submitted; callers can block on them or
// bound them with WithTimeout.
package future

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"slices"
	"sync"
	"time"
)

// Task performs one asynchronous computation.
type Task[T any] func(context.Context) (T, error)

// Future returns the result of a Task. Every call yields the same result.
type Future[T any] func(context.Context) (T, error)

// New starts task immediately and returns its Future.
func New[T any](ctx context.Context, task Task[T]) Future[T] {
	runner, receiver := makeRunnerAndReceiver(task)
	go runner(ctx)
	return receiver
}

// NewDeferred returns a Future that starts task the first time it is awaited.
func NewDeferred[T any](task Task[T]) Future[T] {
	runner, receiver := makeRunnerAndReceiver(task)
	var once sync.Once
	return func(ctx context.Context) (T, error) {
		once.Do(func() { go runner(ctx) })
		return receiver(ctx)
	}
}

// NewValue returns a Future that always resolves to v.
func NewValue[T any](v T) Future[T] {
	return func(_ context.Context) (T, error) {
		return v, nil
	}
}

// NewError returns a Future that always fails with err.
func NewError[T any](err error) Future[T] {
	var zero T
	return func(_ context.Context) (T, error) {
		return zero, err
	}
}

// Await waits for the Future. Equivalent to calling f(ctx).
func (f Future[T]) Await(ctx context.Context) (T, error) {
	return f(ctx)
}

// WithTimeout bounds every await of f by d. The deadline is reported as context.DeadlineExceeded.
func WithTimeout[T any](f Future[T], d time.Duration) Future[T] {
	if d <= 0 {
		return f
	}
	return func(ctx context.Context) (T, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return f(ctx)
	}
}

// Callback awaits f on a new goroutine and hands the outcome to success or failure.
// Either callback may be nil.
func Callback[T any](ctx context.Context, f Future[T], success func(T), failure func(error)) {
	go func() {
		v, err := f(ctx)
		if err != nil {
			if failure != nil {
				failure(err)
			}
			return
		}
		if success != nil {
			success(v)
		}
	}()
}

// Result holds the outcome of a Future.
type Result[T any] struct {
	Value T
	Err   error
}

func makeRunnerAndReceiver[T any](task func(context.Context) (T, error)) (runner func(context.Context), receiver func(context.Context) (T, error)) {
	ch := make(chan Result[T], 1)
	runner = func(ctx context.Context) {
		defer close(ch)
		var result Result[T]
		defer func() { ch <- result }()
		defer result.recover()
		result.Value, result.Err = task(ctx)
	}
	var once sync.Once
	var result Result[T]
	receiver = func(ctx context.Context) (T, error) {
		once.Do(func() {
			result.receive(ctx, ch)
		})
		return result.Value, result.Err
	}
	return runner, receiver
}

// receive takes the result off ch. A canceled ctx wins unless the result is already there.
func (r *Result[T]) receive(ctx context.Context, ch <-chan Result[T]) {
	select {
	case result, ok := <-ch:
		if ok {
			*r = result
		}
	case <-ctx.Done():
		select {
		case result, ok := <-ch:
			if ok {
				*r = result
			}
		default:
			r.Err = ctx.Err()
		}
	}
}

// recover turns a panic inside a task into its error.
func (r *Result[T]) recover() {
	switch v := recover().(type) {
	case nil:
	case error:
		r.Err = v
	default:
		r.Err = fmt.Errorf("%+v", v)
	}
}

// Await runs futures in parallel and yields their results in submission order.
// Every future yields exactly one Result, even after ctx is canceled.
func Await[T any](ctx context.Context, futures iter.Seq[Future[T]]) iter.Seq[Result[T]] {
	receiverCh := make(chan func(context.Context) (T, error), runtime.NumCPU())
	go func() {
		defer close(receiverCh)
		for f := range futures {
			runner, receiver := makeRunnerAndReceiver(f)
			receiverCh <- receiver
			go runner(ctx)
		}
	}()
	return slices.Values(slices.Collect(func(yield func(Result[T]) bool) {
		for receiver := range receiverCh {
			var result Result[T]
			result.Value, result.Err = receiver(ctx)
			if !yield(result) {
				return
			}
		}
	}))
}
