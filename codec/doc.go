// Package codec derives JSON encoders and decoders from Go types.
//
// A codec is derived once per (type, case strategy, registry) and memoized
// in a Cache. Field names come from the `json` tag when it names the field,
// otherwise from the CaseStrategy applied to the Go field name. Pointer
// fields and fields tagged omitempty are optional; every other field must be
// present in a decoded document.
//
// Untagged embedded structs are flattened into the outer object with the
// same precedence rules as encoding/json. Fields reached through an embedded
// pointer are optional; a nil pointer is skipped on encode and allocated on
// decode. The `,string` tag option carries a bool, number or string inside a
// JSON string.
//
// Decoding never stops at the first problem. A failed decode returns a
// *DecodeError listing every issue with its JSON path:
//
//	$.title: required field is missing
//	$.author: required field is missing
//	$.createdAt: required field is missing
//
// Types the derivation should not handle can be given hand-written coders
// through a Registry:
//
//	reg := codec.Register(nil, encodeMoney, decodeMoney)
//	dec, err := codec.DecoderFor[Invoice](codec.DefaultCache, codec.Options{Extra: reg})
package codec
