package types

import (
	errorsmod "cosmossdk.io/errors"
)

// CBOR major types used by the parameter buffer. The oracle parses the
// buffer as a flat sequence of alternating key and value items, so no
// outer map header is written.
const (
	majorUint   = 0
	majorNegInt = 1
	majorBytes  = 2
	majorText   = 3
)

// ParamBuffer accumulates request parameters as a deterministic,
// order-preserving byte sequence. Every Add call appends one key item
// and one value item; canonical shortest-form headers keep the encoding
// byte-identical for identical input sequences.
type ParamBuffer struct {
	data []byte
	keys map[string]struct{}
}

// NewParamBuffer returns an empty parameter buffer.
func NewParamBuffer() *ParamBuffer {
	return &ParamBuffer{
		data: make([]byte, 0, 256),
		keys: make(map[string]struct{}),
	}
}

// AddString appends a string-valued parameter.
func (b *ParamBuffer) AddString(key, value string) error {
	if err := b.addKey(key); err != nil {
		return err
	}
	b.appendText(value)
	return nil
}

// AddBytes appends a raw-bytes-valued parameter.
func (b *ParamBuffer) AddBytes(key string, value []byte) error {
	if err := b.addKey(key); err != nil {
		return err
	}
	b.appendHeader(majorBytes, uint64(len(value)))
	b.data = append(b.data, value...)
	return nil
}

// AddInt appends a signed-integer-valued parameter.
func (b *ParamBuffer) AddInt(key string, value int64) error {
	if err := b.addKey(key); err != nil {
		return err
	}
	if value < 0 {
		// two's complement: ^value == -value-1, always >= 0
		b.appendHeader(majorNegInt, uint64(^value))
	} else {
		b.appendHeader(majorUint, uint64(value))
	}
	return nil
}

// AddUint appends an unsigned-integer-valued parameter.
func (b *ParamBuffer) AddUint(key string, value uint64) error {
	if err := b.addKey(key); err != nil {
		return err
	}
	b.appendHeader(majorUint, value)
	return nil
}

// Bytes returns a copy of the encoded buffer.
func (b *ParamBuffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Len returns the encoded length in bytes.
func (b *ParamBuffer) Len() int {
	return len(b.data)
}

func (b *ParamBuffer) addKey(key string) error {
	if key == "" {
		return errorsmod.Wrap(ErrInvalidRequest, "empty parameter key")
	}
	if _, ok := b.keys[key]; ok {
		return errorsmod.Wrapf(ErrDuplicateParam, "%q", key)
	}
	b.keys[key] = struct{}{}
	b.appendText(key)
	return nil
}

func (b *ParamBuffer) appendText(s string) {
	b.appendHeader(majorText, uint64(len(s)))
	b.data = append(b.data, s...)
}

// appendHeader writes a CBOR item header in canonical shortest form.
func (b *ParamBuffer) appendHeader(major byte, n uint64) {
	ib := major << 5
	switch {
	case n < 24:
		b.data = append(b.data, ib|byte(n))
	case n <= 0xff:
		b.data = append(b.data, ib|24, byte(n))
	case n <= 0xffff:
		b.data = append(b.data, ib|25, byte(n>>8), byte(n))
	case n <= 0xffffffff:
		b.data = append(b.data, ib|26, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	default:
		b.data = append(b.data, ib|27,
			byte(n>>56), byte(n>>48), byte(n>>40), byte(n>>32),
			byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}
