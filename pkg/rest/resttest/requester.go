// Package resttest provides an in-memory rest.Requester for tests.
package resttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/disgoorg/json"

	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

// HandlerFunc answers a request. The returned value is encoded as the JSON response body;
// a nil value means an empty response.
type HandlerFunc func(rq rest.Request) (any, error)

// Requester records every request and answers from per-route handlers. Requests on routes
// without a handler fail with an UNKNOWN error response.
type Requester struct {
	mu       sync.Mutex
	handlers map[string]HandlerFunc
	requests []rest.Request
}

func New() *Requester {
	return &Requester{handlers: map[string]HandlerFunc{}}
}

// Handle installs fn for every request on route.
func (r *Requester) Handle(route rest.Route, fn HandlerFunc) *Requester {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[route.String()] = fn
	return r
}

// Respond answers every request on route with v.
func (r *Requester) Respond(route rest.Route, v any) *Requester {
	return r.Handle(route, func(rest.Request) (any, error) { return v, nil })
}

// Fail answers every request on route with the given error response.
func (r *Requester) Fail(route rest.Route, response discord.ErrorResponse) *Requester {
	return r.Handle(route, func(rest.Request) (any, error) {
		return nil, discord.NewErrorResponseError(response)
	})
}

func (r *Requester) Do(ctx context.Context, rq rest.Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.requests = append(r.requests, rq)
	fn, ok := r.handlers[rq.Route.Route().String()]
	r.mu.Unlock()
	if !ok {
		return nil, &discord.ErrorResponseError{
			Response: discord.ErrorResponseUnknown,
			Message:  fmt.Sprintf("no handler for %s", rq.Route),
		}
	}
	v, err := fn(rq)
	if err != nil || v == nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Requests returns every request received so far.
func (r *Requester) Requests() []rest.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rest.Request(nil), r.requests...)
}

// RequestsTo returns the requests received on route.
func (r *Requester) RequestsTo(route rest.Route) []rest.Request {
	var out []rest.Request
	for _, rq := range r.Requests() {
		if rq.Route.Route().String() == route.String() {
			out = append(out, rq)
		}
	}
	return out
}

// Count is the number of requests received so far.
func (r *Requester) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}
