package codec

import (
	"bytes"
	"reflect"
)

// Encoder turns a value into a JSON document.
type Encoder[T any] func(value T) ([]byte, error)

// Decoder parses a JSON document into a value. On failure it returns the zero
// value and, for malformed or mismatched input, a *DecodeError.
type Decoder[T any] func(data []byte) (T, error)

// Options select how a codec is derived.
type Options struct {
	// Case names fields whose json tag does not.
	Case CaseStrategy
	// Extra supplies hand-written coders. May be nil.
	Extra *Registry
}

// EncoderFor returns the encoder for T, deriving it on first use.
// A nil cache means DefaultCache.
func EncoderFor[T any](c *Cache, opts Options) (Encoder[T], error) {
	if c == nil {
		c = DefaultCache
	}
	t := reflect.TypeFor[T]()
	n, err := c.node(t, opts)
	if err != nil {
		return nil, err
	}
	return func(value T) ([]byte, error) {
		v := reflect.New(t).Elem()
		v.Set(reflect.ValueOf(&value).Elem())
		var buf bytes.Buffer
		if err := n.encode(&buf, v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}, nil
}

// DecoderFor returns the decoder for T, deriving it on first use.
// A nil cache means DefaultCache.
func DecoderFor[T any](c *Cache, opts Options) (Decoder[T], error) {
	if c == nil {
		c = DefaultCache
	}
	n, err := c.node(reflect.TypeFor[T](), opts)
	if err != nil {
		return nil, err
	}
	return func(data []byte) (T, error) {
		var out T
		if err := n.decodeDocument(data, reflect.ValueOf(&out).Elem()); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}, nil
}

// Encode encodes value with the DefaultCache codec for T.
func Encode[T any](value T, opts Options) ([]byte, error) {
	enc, err := EncoderFor[T](DefaultCache, opts)
	if err != nil {
		return nil, err
	}
	return enc(value)
}

// Decode decodes data with the DefaultCache codec for T.
func Decode[T any](data []byte, opts Options) (T, error) {
	dec, err := DecoderFor[T](DefaultCache, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec(data)
}
