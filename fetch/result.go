package fetch

// Unit is the value of a call that expects no response body.
type Unit struct{}

// Result is the outcome of a safe call: a value or a *Error, never both.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok returns a successful result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail returns a failed result.
func Fail[T any](err *Error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports success.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Value returns the value, or the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *Error {
	return r.err
}

// Unwrap converts the result to Go's (value, error) form.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
