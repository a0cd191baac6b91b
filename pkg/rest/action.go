package rest

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/disgoorg/json"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/future"
)

// MaxReasonLength is the longest audit log reason Discord accepts.
const MaxReasonLength = 512

// RunFunc performs the work of an action. reason is the audit log reason, if any.
type RunFunc[T any] func(ctx context.Context, reason string) (T, error)

// Action is a deferred API call. Nothing is sent until Complete, Submit or Queue is called,
// and each of them sends a new request.
//
// Setters on an Action are not safe for concurrent use; configure it before running it.
type Action[T any] struct {
	run     RunFunc[T]
	checks  []func() error
	reason  string
	timeout time.Duration
	err     error
}

// NewAction returns an action sending body to route and decoding the response with decode.
// A nil decode ignores the response.
func NewAction[T any](requester Requester, route CompiledRoute, body any, decode func(json.RawMessage) (T, error)) *Action[T] {
	return ActionFunc(func(ctx context.Context, reason string) (T, error) {
		raw, err := requester.Do(ctx, Request{Route: route, Body: body, Reason: reason})
		if err != nil || decode == nil {
			var zero T
			return zero, err
		}
		return decode(raw)
	})
}

// ActionFunc wraps run as an action, for calls made of several requests.
func ActionFunc[T any](run RunFunc[T]) *Action[T] {
	return &Action[T]{run: run}
}

// Failed returns an action that fails with err on every run path without any I/O.
func Failed[T any](err error) *Action[T] {
	return &Action[T]{err: err}
}

// Decode returns a decoder for JSON responses into T.
func Decode[T any]() func(json.RawMessage) (T, error) {
	return func(raw json.RawMessage) (T, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, err
		}
		return v, nil
	}
}

// Reason sets the audit log reason.
func (a *Action[T]) Reason(reason string) *Action[T] {
	if err := checks.NotLonger(reason, MaxReasonLength, "Reason"); err != nil {
		a.err = errors.Join(a.err, err)
		return a
	}
	a.reason = reason
	return a
}

// Timeout bounds every run of the action. Zero means no bound beyond the context.
func (a *Action[T]) Timeout(d time.Duration) *Action[T] {
	a.timeout = d
	return a
}

// Precheck adds a check that runs right before each request. A failing check aborts the
// request. Checks see the cache as of the run, not as of building the action.
func (a *Action[T]) Precheck(check func() error) *Action[T] {
	a.checks = append(a.checks, check)
	return a
}

// Err returns the error recorded while building the action, if any.
func (a *Action[T]) Err() error { return a.err }

func (a *Action[T]) preflight() error {
	if a.err != nil {
		return a.err
	}
	for _, check := range a.checks {
		if err := check(); err != nil {
			return err
		}
	}
	if a.run == nil {
		return errors.New("action has nothing to run")
	}
	return nil
}

// Complete runs the action and blocks until it finishes.
func (a *Action[T]) Complete(ctx context.Context) (T, error) {
	return a.complete(ctx, "")
}

// complete runs the action with reason overriding the action's own reason when set.
func (a *Action[T]) complete(ctx context.Context, reason string) (T, error) {
	if err := a.preflight(); err != nil {
		var zero T
		return zero, err
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	if reason == "" {
		reason = a.reason
	}
	return a.run(ctx, reason)
}

// Submit starts the action and returns its result as a future. Awaiting the future is bounded
// by the action's timeout even when the run does not honor its context.
func (a *Action[T]) Submit(ctx context.Context) future.Future[T] {
	if err := a.preflight(); err != nil {
		return future.NewError[T](err)
	}
	return future.WithTimeout(future.New(ctx, a.Complete), a.timeout)
}

// Queue runs the action in the background and reports to success or failure. Either may be nil.
func (a *Action[T]) Queue(ctx context.Context, success func(T), failure func(error)) {
	future.Callback(ctx, a.Submit(ctx), success, failure)
}

// Map transforms the result of a. a's own reason, timeout and checks still apply; a reason set
// on the returned action takes precedence.
func Map[T, U any](a *Action[T], fn func(T) (U, error)) *Action[U] {
	return Then(a, func(_ context.Context, v T) (U, error) { return fn(v) })
}

// Then chains another step after a, such as a follow-up request.
func Then[T, U any](a *Action[T], fn func(context.Context, T) (U, error)) *Action[U] {
	return &Action[U]{
		run: func(ctx context.Context, reason string) (U, error) {
			v, err := a.complete(ctx, reason)
			if err != nil {
				var zero U
				return zero, err
			}
			return fn(ctx, v)
		},
	}
}

// AllOf runs actions concurrently and collects their results in order. It fails with every
// error that occurred.
func AllOf[T any](actions ...*Action[T]) *Action[[]T] {
	return ActionFunc(func(ctx context.Context, _ string) ([]T, error) {
		futures := make([]future.Future[T], len(actions))
		for i, a := range actions {
			futures[i] = a.Complete
		}
		results := make([]T, 0, len(actions))
		var errs []error
		for res := range future.Await(ctx, slices.Values(futures)) {
			if res.Err != nil {
				errs = append(errs, res.Err)
				continue
			}
			results = append(results, res.Value)
		}
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
		return results, nil
	})
}
