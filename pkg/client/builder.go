package client

import (
	"errors"

	"github.com/norio-nomura/discordkit/pkg/rest"
)

// builder collects setter errors and the audit log reason of an action builder. Errors are
// reported when the action runs, never from the setters.
type builder struct {
	errs   []error
	reason string
}

func (b *builder) check(err error) bool {
	if err != nil {
		b.errs = append(b.errs, err)
		return false
	}
	return true
}

func (b *builder) err() error { return errors.Join(b.errs...) }

// finish applies the collected state to a. An action built with errors fails without I/O.
func finish[T any](b *builder, a *rest.Action[T]) *rest.Action[T] {
	if err := b.err(); err != nil {
		return rest.Failed[T](err)
	}
	if b.reason != "" {
		a.Reason(b.reason)
	}
	return a
}
