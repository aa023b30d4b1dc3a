// Package fetchtest provides an in-process JSON API for exercising fetch
// calls end to end.
//
// The server is a gin engine behind httptest.Server with a small books and
// authors resource, endpoints that answer with a chosen status code, an echo
// endpoint and a multipart upload endpoint:
//
//	srv := fetchtest.NewServer()
//	defer srv.Close()
//
//	book, err := fetch.GetAs[fetchtest.Book](ctx, client, srv.URL("/books/1"))
//
// Extra routes can be registered on Engine before the first request.
package fetchtest
