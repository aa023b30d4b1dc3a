// Command fetchctl performs one typed HTTP call and prints the JSON response.
//
//	fetchctl https://api.example.com/books/1
//	fetchctl -X POST -d '{"title":"Dune"}' -H 'X-Trace: 1' /books
//	fetchctl -X POST -F language=en -F audio=@clip.wav /transcriptions
//	fetchctl --no-body -X DELETE /books/1
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
