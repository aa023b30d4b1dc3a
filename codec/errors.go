package codec

import (
	"fmt"
	"reflect"
	"strings"
)

// UnsupportedTypeError reports a type no codec can be derived for.
type UnsupportedTypeError struct {
	// Type is the offending type.
	Type reflect.Type
	// Path locates the type inside the root type, using Go field names.
	Path string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("codec: cannot derive a JSON codec for %s at %s", e.Type, e.Path)
}

// Issue is a single decoding problem located by JSON path.
type Issue struct {
	Path    string
	Message string
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// DecodeError lists every issue found while decoding a document.
// Its message is one issue per line.
type DecodeError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}
