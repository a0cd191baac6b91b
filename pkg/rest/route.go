// Package rest turns Discord API calls into deferred actions.
//
// A Route wraps one of disgo's endpoints. Compiling it with the path parameters yields the
// concrete URL and the major parameters disgo's rate limiter buckets the request by. An Action
// pairs a compiled route with a request body and a response decoder, and executes through a
// Requester.
package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	disgodiscord "github.com/disgoorg/disgo/discord"
	disgorest "github.com/disgoorg/disgo/rest"
)

// apiPath is the path prefix of disgorest.API, stripped from relative URLs.
var apiPath = func() string {
	u, err := url.Parse(disgorest.API)
	if err != nil {
		return ""
	}
	return u.Path
}()

// Route is a disgo endpoint with the names of its {param} placeholders.
type Route struct {
	endpoint *disgorest.Endpoint
	params   []string
}

// NewRoute creates the endpoint for method and path. It panics on an unbalanced brace since
// routes are package level variables.
func NewRoute(method, path string) Route {
	r := Route{endpoint: disgorest.NewEndpoint(method, path)}
	for rest := path; ; {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			panic("rest: unbalanced route " + path)
		}
		r.params = append(r.params, rest[open+1:open+end])
		rest = rest[open+end+1:]
	}
	return r
}

// Endpoint is the disgo endpoint every compilation of r shares. disgo's rate limiter keys its
// buckets by this pointer.
func (r Route) Endpoint() *disgorest.Endpoint { return r.endpoint }

func (r Route) Method() string { return r.endpoint.Method }
func (r Route) Path() string   { return r.endpoint.Route }

// ParamCount is the number of placeholders Compile expects.
func (r Route) ParamCount() int { return len(r.params) }

func (r Route) String() string { return r.Method() + " " + r.Path() }

// Compile checks params against the placeholders. The path itself is filled in by disgo.
func (r Route) Compile(params ...any) (CompiledRoute, error) {
	if len(params) != len(r.params) {
		return CompiledRoute{}, fmt.Errorf("route %s expects %d parameters, got %d", r, len(r.params), len(params))
	}
	values := make([]string, len(params))
	for i, p := range params {
		v := fmt.Sprint(p)
		if v == "" {
			return CompiledRoute{}, fmt.Errorf("route %s: parameter %s may not be empty", r, r.params[i])
		}
		values[i] = v
	}
	return CompiledRoute{route: r, params: params, values: values}, nil
}

// MustCompile is Compile for parameters already known to be valid. It panics on mismatch.
func (r Route) MustCompile(params ...any) CompiledRoute {
	c, err := r.Compile(params...)
	if err != nil {
		panic(err)
	}
	return c
}

// CompiledRoute is a Route with its parameters and query filled in.
type CompiledRoute struct {
	route  Route
	params []any
	values []string
	query  disgodiscord.QueryValues
}

func (c CompiledRoute) Route() Route     { return c.route }
func (c CompiledRoute) Method() string   { return c.route.Method() }
func (c CompiledRoute) Params() []string { return c.values }

// Endpoint compiles the route through disgo.
func (c CompiledRoute) Endpoint() *disgorest.CompiledEndpoint {
	return c.route.endpoint.Compile(c.query, c.params...)
}

// Path is the compiled path relative to the API root, without the query.
func (c CompiledRoute) Path() string {
	path, _ := c.split()
	return path
}

// URL is the path plus the encoded query, relative to the API root.
func (c CompiledRoute) URL() string {
	path, query := c.split()
	if query == "" {
		return path
	}
	return path + "?" + query
}

func (c CompiledRoute) split() (path, query string) {
	full := c.FullURL()
	u, err := url.Parse(full)
	if err != nil {
		return strings.TrimPrefix(full, disgorest.API), ""
	}
	return strings.TrimPrefix(u.EscapedPath(), apiPath), u.RawQuery
}

// FullURL is the absolute URL disgo requests.
func (c CompiledRoute) FullURL() string { return c.Endpoint().URL }

// Bucket names the rate limit bucket: the route template plus the major parameters.
func (c CompiledRoute) Bucket() string {
	return c.route.String() + " " + c.Endpoint().MajorParams
}

// Query returns a copy of the query values.
func (c CompiledRoute) Query() disgodiscord.QueryValues {
	q := make(disgodiscord.QueryValues, len(c.query))
	for k, v := range c.query {
		q[k] = v
	}
	return q
}

// WithQuery returns a copy of c with key set to value in the query.
func (c CompiledRoute) WithQuery(key string, value any) CompiledRoute {
	q := c.Query()
	q[key] = value
	c.query = q
	return c
}

func (c CompiledRoute) String() string { return c.Method() + " " + c.URL() }

// HasBody reports whether requests on this route carry a JSON body.
func (c CompiledRoute) HasBody() bool {
	switch c.Method() {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
