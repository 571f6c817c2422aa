// Package codec serializes single protobuf messages for the RPC runtime.
//
// A call payload is exactly one protobuf-encoded message with no envelope
// and no length prefix; the message length is implicit in the buffer
// boundary, so framing is the transport's job.
package codec

import (
	"google.golang.org/protobuf/proto"
)

// EncodeError is a leaf error: a message violated wire-format invariants
// and could not be serialized.
type EncodeError struct {
	err error
}

func (e *EncodeError) Error() string {
	return "codec: encode failed: " + e.err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.err
}

// DecodeError is a leaf error: the input bytes were malformed or truncated.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return "codec: decode failed: " + e.err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// Encode serializes m into a freshly allocated buffer. The required
// capacity is computed up front with proto.Size so the write never
// reallocates.
func Encode(m proto.Message) ([]byte, error) {
	opts := proto.MarshalOptions{}
	buf := make([]byte, 0, opts.Size(m))
	out, err := opts.MarshalAppend(buf, m)
	if err != nil {
		return nil, &EncodeError{err: err}
	}
	return out, nil
}

// Decode parses data into m. The caller supplies m as an empty default
// value of the target message type.
func Decode(data []byte, m proto.Message) error {
	if err := proto.Unmarshal(data, m); err != nil {
		return &DecodeError{err: err}
	}
	return nil
}
