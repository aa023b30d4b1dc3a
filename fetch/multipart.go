package fetch

import (
	"context"
	"net/http"

	"github.com/kbukum/gofetch/httpclient"
)

// PostMultipartAs sends body as a multipart/form-data POST and decodes the
// response into R.
func PostMultipartAs[R any](ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) (R, error) {
	return TryPostMultipartAs[R](ctx, c, url, body, opts...).Unwrap()
}

// TryPostMultipartAs is PostMultipartAs returning a Result.
func TryPostMultipartAs[R any](ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodPost, "", WithMultipart(body)))
}

// PostMultipart sends body as a multipart/form-data POST and expects an
// empty response body.
func PostMultipart(ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) error {
	_, err := TryPostMultipart(ctx, c, url, body, opts...).Unwrap()
	return err
}

// TryPostMultipart is PostMultipart returning a Result.
func TryPostMultipart(ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodPost, "PostMultipartAs", WithMultipart(body)))
}

// PutMultipartAs sends body as a multipart/form-data PUT and decodes the
// response into R.
func PutMultipartAs[R any](ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) (R, error) {
	return TryPutMultipartAs[R](ctx, c, url, body, opts...).Unwrap()
}

// TryPutMultipartAs is PutMultipartAs returning a Result.
func TryPutMultipartAs[R any](ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodPut, "", WithMultipart(body)))
}

// PutMultipart sends body as a multipart/form-data PUT and expects an
// empty response body.
func PutMultipart(ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) error {
	_, err := TryPutMultipart(ctx, c, url, body, opts...).Unwrap()
	return err
}

// TryPutMultipart is PutMultipart returning a Result.
func TryPutMultipart(ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodPut, "PutMultipartAs", WithMultipart(body)))
}

// PatchMultipartAs sends body as a multipart/form-data PATCH and decodes the
// response into R.
func PatchMultipartAs[R any](ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) (R, error) {
	return TryPatchMultipartAs[R](ctx, c, url, body, opts...).Unwrap()
}

// TryPatchMultipartAs is PatchMultipartAs returning a Result.
func TryPatchMultipartAs[R any](ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) Result[R] {
	return fetchDecoded[R](ctx, c, url, verbOptions(opts, http.MethodPatch, "", WithMultipart(body)))
}

// PatchMultipart sends body as a multipart/form-data PATCH and expects an
// empty response body.
func PatchMultipart(ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) error {
	_, err := TryPatchMultipart(ctx, c, url, body, opts...).Unwrap()
	return err
}

// TryPatchMultipart is PatchMultipart returning a Result.
func TryPatchMultipart(ctx context.Context, c *Client, url string, body *httpclient.MultipartBody, opts ...Option) Result[Unit] {
	return fetchEmpty(ctx, c, url, verbOptions(opts, http.MethodPatch, "PatchMultipartAs", WithMultipart(body)))
}
