package fetch

import (
	"fmt"
	"reflect"

	"github.com/kbukum/gofetch/codec"
)

func (c *Client) codecOptions(o *callOptions) codec.Options {
	opts := codec.Options{Case: c.caseStrategy, Extra: c.extra}
	if o.caseStrategy != nil {
		opts.Case = *o.caseStrategy
	}
	if o.extraSet {
		opts.Extra = o.extra
	}
	return opts
}

// selectEncoder picks the explicit encoder, else the cached codec for D, which
// itself prefers a registered coder over derivation.
func selectEncoder[D any](c *Client, o *callOptions) (codec.Encoder[D], error) {
	if o.encoder != nil {
		enc, ok := o.encoder.(codec.Encoder[D])
		if !ok {
			return nil, fmt.Errorf("fetch: explicit encoder %T does not encode %s", o.encoder, reflect.TypeFor[D]())
		}
		return enc, nil
	}
	return codec.EncoderFor[D](c.codecs, c.codecOptions(o))
}

func selectDecoder[R any](c *Client, o *callOptions) (codec.Decoder[R], error) {
	if o.decoder != nil {
		dec, ok := o.decoder.(codec.Decoder[R])
		if !ok {
			return nil, fmt.Errorf("fetch: explicit decoder %T does not decode %s", o.decoder, reflect.TypeFor[R]())
		}
		return dec, nil
	}
	return codec.DecoderFor[R](c.codecs, c.codecOptions(o))
}
