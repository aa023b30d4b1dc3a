// Package httpclient is the transport underneath gofetch: one HTTP attempt
// per call, returning the response with its body unread.
//
// The Adapter resolves paths against a base URL, applies default headers,
// authentication, TLS and an optional cookie jar, and classifies network
// failures as *TransportError. It never inspects the status code and never
// reads the body; that is left to the caller through RawResponse.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := adapter.Perform(ctx, "/users/123", httpclient.Options{
//	    Method:  http.MethodGet,
//	    Headers: []httpclient.Header{{Name: "Accept", Value: "application/json"}},
//	})
//	if err != nil {
//	    return err
//	}
//	defer resp.Close()
//	body, err := resp.Bytes()
//
// # Multipart
//
//	body := &httpclient.MultipartBody{
//	    Fields: map[string]string{"title": "cover"},
//	    Files:  []httpclient.FileField{{FieldName: "file", FileName: "a.png", Data: png}},
//	}
//	reader, contentType, err := body.Encode()
package httpclient
