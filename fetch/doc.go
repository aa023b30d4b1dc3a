// Package fetch issues typed HTTP calls: one function per verb encodes an
// optional payload to JSON, performs a single request and decodes the JSON
// response into a Go value.
//
// Every failure surfaces as a *Error of exactly one Kind:
//
//	PreparingRequestFailed  the payload could not be encoded or the request built
//	NetworkError            no response was received
//	FetchFailed             the response status was not 2xx (body left unread)
//	DecodingFailed          the body did not match the expected type
//
// Each verb comes in an unsafe form returning (R, error) and a safe form
// returning Result[R]:
//
//	book, err := fetch.GetAs[Book](ctx, client, "/books/1")
//
//	res := fetch.TryPostAs[Book](ctx, client, "/books", draft)
//	if !res.IsOk() {
//	    log.Println(res.Err().Kind)
//	}
//
// Bodyless forms (Get, Post, ...) expect an empty response body and fail with
// DecodingFailed when one arrives. Multipart forms send a
// *httpclient.MultipartBody instead of JSON.
//
// Codecs are derived from the Go types on first use and cached. Field names
// come from json tags or, failing that, the call's case strategy. Explicit
// codecs (WithEncoder, WithDecoder) take precedence over registered coders
// (WithExtraCoders), which take precedence over derivation.
package fetch
