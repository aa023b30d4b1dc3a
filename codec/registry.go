package codec

import (
	"reflect"
	"sync/atomic"
)

var registryIDs atomic.Uint64

// Registry holds hand-written coders that take precedence over derivation.
//
// A Registry never changes after it is built: Register returns an extended
// copy with a new identity. Cached codecs are keyed by that identity, so
// extending a registry never leaves a stale codec behind.
type Registry struct {
	id     uint64
	coders map[reflect.Type]coder
}

type coder struct {
	encode func(v reflect.Value) ([]byte, error)
	decode func(data []byte, v reflect.Value) error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		id:     registryIDs.Add(1),
		coders: make(map[reflect.Type]coder),
	}
}

// Register returns a copy of r with enc and dec installed for T. r may be nil.
// A nil enc or dec leaves that direction to derivation.
func Register[T any](r *Registry, enc Encoder[T], dec Decoder[T]) *Registry {
	next := NewRegistry()
	if r != nil {
		for t, c := range r.coders {
			next.coders[t] = c
		}
	}

	var c coder
	if enc != nil {
		c.encode = func(v reflect.Value) ([]byte, error) {
			var value T
			reflect.ValueOf(&value).Elem().Set(v)
			return enc(value)
		}
	}
	if dec != nil {
		c.decode = func(data []byte, v reflect.Value) error {
			value, err := dec(data)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(&value).Elem())
			return nil
		}
	}
	next.coders[reflect.TypeFor[T]()] = c
	return next
}

// ID returns the registry identity used in cache keys. A nil registry has ID 0.
func (r *Registry) ID() uint64 {
	if r == nil {
		return 0
	}
	return r.id
}

// Len returns the number of types with registered coders.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.coders)
}

func (r *Registry) lookup(t reflect.Type) (coder, bool) {
	if r == nil {
		return coder{}, false
	}
	c, ok := r.coders[t]
	return c, ok
}
