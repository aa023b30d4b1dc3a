package fetch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gofetch/httpclient"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

var errNoResponse = errors.New("transport returned no response")

func (c *Client) resolveOptions(opts []Option) *callOptions {
	o := &callOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// track observes one call: a span, metrics and a log line per outcome.
// run returns the response status, or 0 when none arrived.
func (c *Client) track(ctx context.Context, url string, o *callOptions, run func(context.Context) (int, *Error)) *Error {
	method := o.effectiveMethod()
	callID := uuid.NewString()
	ctx, call := c.instruments.StartCall(ctx, method, url, callID)
	trace.SpanFromContext(ctx).SetAttributes(observability.AttrCaseStrategy.String(c.codecOptions(o).Case.String()))

	log := c.log.WithContext(ctx)
	fields := logger.Fields(logger.FieldCallID, callID, logger.FieldMethod, method, logger.FieldURL, url)
	log.Debug("fetch started", fields)

	status, ferr := run(ctx)
	if ferr != nil && status == 0 && ferr.Response != nil {
		status = ferr.Response.StatusCode
	}

	kind := ""
	var err error
	if ferr != nil {
		kind = ferr.Kind.String()
		err = ferr
	}
	d := call.End(ctx, status, kind, err)

	fields = logger.MergeWithDuration(fields, d)
	if status > 0 {
		fields[logger.FieldStatus] = status
	}
	if ferr != nil {
		fields[logger.FieldErrorKind] = kind
		log.Warn("fetch failed", logger.MergeWithError(fields, ferr))
		return ferr
	}
	log.Debug("fetch completed", fields)
	return nil
}

// exchange builds the request and performs it. Only 2xx responses are
// returned; anything else becomes a FetchFailed error with the body unread.
func (c *Client) exchange(ctx context.Context, url string, o *callOptions, decoding bool) (*httpclient.RawResponse, *Error) {
	opts, ferr := c.build(o, decoding)
	if ferr != nil {
		return nil, ferr
	}
	resp, err := c.invoke(ctx, url, opts)
	if err != nil {
		if httpclient.IsRequest(err) {
			return nil, preparing(err)
		}
		return nil, network(err)
	}
	if resp == nil {
		return nil, network(&httpclient.TransportError{
			Code: httpclient.ErrCodeConnection, Method: opts.Method, URL: url, Err: errNoResponse,
		})
	}
	if !resp.IsSuccess() {
		return nil, fetchFailed(resp)
	}
	return resp, nil
}

func (c *Client) invoke(ctx context.Context, url string, opts httpclient.Options) (resp *httpclient.RawResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, panicError("transport", r)
		}
	}()
	return c.transport.Perform(ctx, url, opts)
}

// fetchDecoded runs a call whose response body decodes into R.
func fetchDecoded[R any](ctx context.Context, c *Client, url string, opts []Option) Result[R] {
	c = orDefault(c)
	o := c.resolveOptions(opts)

	var value R
	ferr := c.track(ctx, url, o, func(ctx context.Context) (int, *Error) {
		dec, err := selectDecoder[R](c, o)
		if err != nil {
			return 0, preparing(err)
		}
		resp, ferr := c.exchange(ctx, url, o, true)
		if ferr != nil {
			return 0, ferr
		}
		value, ferr = resolveDecoded(resp, dec)
		return resp.StatusCode, ferr
	})
	if ferr != nil {
		return Fail[R](ferr)
	}
	return Ok(value)
}

// fetchEmpty runs a call that expects no response body.
func fetchEmpty(ctx context.Context, c *Client, url string, opts []Option) Result[Unit] {
	c = orDefault(c)
	o := c.resolveOptions(opts)

	ferr := c.track(ctx, url, o, func(ctx context.Context) (int, *Error) {
		resp, ferr := c.exchange(ctx, url, o, false)
		if ferr != nil {
			return 0, ferr
		}
		return resp.StatusCode, resolveEmpty(resp, o.noBodyMessage)
	})
	if ferr != nil {
		return Fail[Unit](ferr)
	}
	return Ok(Unit{})
}
