package fetch

import (
	"bytes"

	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/httpclient"
)

const noBodyExpected = "No body expected for this request"

// resolveDecoded reads the body once and decodes it. The response must be a
// success; non-2xx responses never reach here.
func resolveDecoded[R any](resp *httpclient.RawResponse, dec codec.Decoder[R]) (R, *Error) {
	var zero R
	body, err := resp.Bytes()
	if err != nil {
		return zero, network(err)
	}
	value, err := safeDecode(dec, body)
	if err != nil {
		return zero, decodingFailed(err.Error(), err)
	}
	return value, nil
}

func safeDecode[R any](dec codec.Decoder[R], body []byte) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("decoder", r)
		}
	}()
	return dec(body)
}

// resolveEmpty reads the body once and requires it to be blank.
func resolveEmpty(resp *httpclient.RawResponse, message string) *Error {
	body, err := resp.Bytes()
	if err != nil {
		return network(err)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if message == "" {
			message = noBodyExpected
		}
		return decodingFailed(message, nil)
	}
	return nil
}
