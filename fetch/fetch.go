package fetch

import "context"

// FetchAs performs a request and decodes the response into R. The method
// defaults to GET and can be set with WithMethod; a payload with WithData.
//
// A non-2xx status yields a FetchFailed *Error whose Response body is still
// open. Callers must read it with Bytes or Text, or Close it.
func FetchAs[R any](ctx context.Context, c *Client, url string, opts ...Option) (R, error) {
	return TryFetchAs[R](ctx, c, url, opts...).Unwrap()
}

// TryFetchAs is FetchAs returning a Result.
func TryFetchAs[R any](ctx context.Context, c *Client, url string, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, opts)
}

// FetchUnit performs a request that expects an empty response body.
func FetchUnit(ctx context.Context, c *Client, url string, opts ...Option) error {
	_, err := TryFetchUnit(ctx, c, url, opts...).Unwrap()
	return err
}

// TryFetchUnit is FetchUnit returning a Result.
func TryFetchUnit(ctx context.Context, c *Client, url string, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, withVerb(opts, withNoBodyMessage(noBodyExpected)))
}
