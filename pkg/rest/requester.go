package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	disgorest "github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"

	"github.com/norio-nomura/discordkit/pkg/discord"
)

// Request is one API call.
type Request struct {
	Route  CompiledRoute
	Body   any
	Reason string
}

// Requester executes requests. Implementations own rate limiting and retries.
// A nil RawMessage with a nil error means the response had no body.
type Requester interface {
	Do(ctx context.Context, rq Request) (json.RawMessage, error)
}

// Doer is the subset of disgo's rest client used by DisgoRequester.
type Doer interface {
	Do(endpoint *disgorest.CompiledEndpoint, rqBody any, rsBody any, opts ...disgorest.RequestOpt) error
}

// DisgoRequester sends requests through disgo's rate limited REST client.
type DisgoRequester struct {
	doer   Doer
	logger *slog.Logger
}

// NewDisgoRequester wraps doer, usually bot.Client.Rest().
func NewDisgoRequester(doer Doer, logger *slog.Logger) *DisgoRequester {
	if logger == nil {
		logger = slog.Default()
	}
	return &DisgoRequester{doer: doer, logger: logger}
}

func (r *DisgoRequester) Do(ctx context.Context, rq Request) (json.RawMessage, error) {
	endpoint := rq.Route.Endpoint()

	opts := []disgorest.RequestOpt{disgorest.WithCtx(ctx)}
	if rq.Reason != "" {
		opts = append(opts, disgorest.WithReason(rq.Reason))
	}
	var body any
	if rq.Route.HasBody() {
		body = rq.Body
	}

	r.logger.Debug("Sending request", slog.String("route", rq.Route.String()), slog.String("major", endpoint.MajorParams))
	var raw json.RawMessage
	if err := r.doer.Do(endpoint, body, &raw, opts...); err != nil {
		return nil, mapError(rq, err)
	}
	return raw, nil
}

// mapError turns disgo's API errors into *discord.ErrorResponseError. Other errors (context,
// transport) are wrapped unchanged.
func mapError(rq Request, err error) error {
	var restErr *disgorest.Error
	if !errors.As(err, &restErr) {
		return fmt.Errorf("failed to %s: %w", rq.Route, err)
	}
	e := &discord.ErrorResponseError{
		Response: discord.ErrorResponseFromKey(int(restErr.Code)),
		Code:     int(restErr.Code),
		Message:  restErr.Message,
	}
	if restErr.Response != nil {
		e.StatusCode = restErr.Response.StatusCode
		if e.Code == 0 && e.StatusCode >= 500 {
			e.Response = discord.ErrorResponseServerError
		}
	}
	if e.Message == "" {
		e.Message = e.Response.Meaning()
	}
	return e
}
