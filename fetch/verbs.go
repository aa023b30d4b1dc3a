package fetch

import (
	"context"
	"net/http"
)

func verbOptions(opts []Option, method, unitHint string, payload Option) []Option {
	fixed := []Option{WithMethod(method)}
	if payload != nil {
		fixed = append(fixed, payload)
	}
	if unitHint != "" {
		fixed = append(fixed, withNoBodyMessage("No body expected for "+method+" request, use "+unitHint+" instead"))
	}
	return withVerb(opts, fixed...)
}

// GetAs sends a GET request and decodes the response into R.
func GetAs[R any](ctx context.Context, c *Client, url string, opts ...Option) (R, error) {
	return TryGetAs[R](ctx, c, url, opts...).Unwrap()
}

// TryGetAs is GetAs returning a Result.
func TryGetAs[R any](ctx context.Context, c *Client, url string, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodGet, "", nil))
}

// Get sends a GET request that expects an empty response body.
func Get(ctx context.Context, c *Client, url string, opts ...Option) error {
	_, err := TryGet(ctx, c, url, opts...).Unwrap()
	return err
}

// TryGet is Get returning a Result.
func TryGet(ctx context.Context, c *Client, url string, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodGet, "GetAs", nil))
}

// PostAs sends data as a JSON POST body and decodes the response into R.
// A nil interface data sends no body.
func PostAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) (R, error) {
	return TryPostAs[R](ctx, c, url, data, opts...).Unwrap()
}

// TryPostAs is PostAs returning a Result.
func TryPostAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodPost, "", WithData(data)))
}

// Post sends data as a JSON POST body and expects an empty response body.
func Post[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) error {
	_, err := TryPost(ctx, c, url, data, opts...).Unwrap()
	return err
}

// TryPost is Post returning a Result.
func TryPost[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodPost, "PostAs", WithData(data)))
}

// PutAs sends data as a JSON PUT body and decodes the response into R.
// A nil interface data sends no body.
func PutAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) (R, error) {
	return TryPutAs[R](ctx, c, url, data, opts...).Unwrap()
}

// TryPutAs is PutAs returning a Result.
func TryPutAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodPut, "", WithData(data)))
}

// Put sends data as a JSON PUT body and expects an empty response body.
func Put[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) error {
	_, err := TryPut(ctx, c, url, data, opts...).Unwrap()
	return err
}

// TryPut is Put returning a Result.
func TryPut[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodPut, "PutAs", WithData(data)))
}

// PatchAs sends data as a JSON PATCH body and decodes the response into R.
// A nil interface data sends no body.
func PatchAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) (R, error) {
	return TryPatchAs[R](ctx, c, url, data, opts...).Unwrap()
}

// TryPatchAs is PatchAs returning a Result.
func TryPatchAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodPatch, "", WithData(data)))
}

// Patch sends data as a JSON PATCH body and expects an empty response body.
func Patch[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) error {
	_, err := TryPatch(ctx, c, url, data, opts...).Unwrap()
	return err
}

// TryPatch is Patch returning a Result.
func TryPatch[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodPatch, "PatchAs", WithData(data)))
}

// DeleteAs sends data as a JSON DELETE body and decodes the response into R.
// A nil interface data sends no body.
func DeleteAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) (R, error) {
	return TryDeleteAs[R](ctx, c, url, data, opts...).Unwrap()
}

// TryDeleteAs is DeleteAs returning a Result.
func TryDeleteAs[R, D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodDelete, "", WithData(data)))
}

// Delete sends data as a JSON DELETE body and expects an empty response body.
func Delete[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) error {
	_, err := TryDelete(ctx, c, url, data, opts...).Unwrap()
	return err
}

// TryDelete is Delete returning a Result.
func TryDelete[D any](ctx context.Context, c *Client, url string, data D, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodDelete, "DeleteAs", WithData(data)))
}
