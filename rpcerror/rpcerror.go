// Package rpcerror defines the layered error type shared by every part of
// the RPC runtime.
//
// An Error carries a Kind telling which layer of a call produced it:
//
//   - Execution: the layer directly below failed (business logic, or a
//     nested handler). The inner error is kept whole, never flattened.
//   - Decode:    the raw payload could not be decoded at this layer.
//   - Encode:    a message could not be serialized at this layer.
//   - Canceled:  the in-flight operation was abandoned before completing.
//
// The wrapping rule: codec errors stay leaf values at the layer where they
// happen, but every error that crosses a handler boundary gets re-wrapped
// in a fresh Execution by the caller. Nesting depth therefore equals the
// number of handler layers a failure traveled through.
package rpcerror

// Kind identifies which layer of a call an Error came from.
type Kind uint8

const (
	KindExecution Kind = iota
	KindDecode
	KindEncode
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindExecution:
		return "execution"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is a tagged RPC error. Values are scoped to a single call and are
// never persisted.
type Error struct {
	kind Kind
	err  error // inner error, nil for Canceled
}

// Execution wraps the error returned by the layer directly below.
// The inner value is kept intact, including any Error tags of its own.
func Execution(err error) *Error {
	return &Error{kind: KindExecution, err: err}
}

// Decode wraps a local payload-decoding failure.
func Decode(err error) *Error {
	return &Error{kind: KindDecode, err: err}
}

// Encode wraps a local message-encoding failure.
func Encode(err error) *Error {
	return &Error{kind: KindEncode, err: err}
}

// Canceled reports that the underlying asynchronous operation was
// abandoned before it completed.
func Canceled() *Error {
	return &Error{kind: KindCanceled}
}

// Kind returns the layer tag of this error.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.kind.String() + " error"
	}
	return e.kind.String() + " error: " + e.err.Error()
}

// Unwrap exposes the inner error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// IsCanceled reports whether err itself is a Canceled Error. Only the top
// level is inspected: a Canceled error buried under Execution wrappers
// belongs to an inner layer and is not this layer's cancellation.
func IsCanceled(err error) bool {
	e, ok := err.(*Error)
	return ok && e.kind == KindCanceled
}

// ExecutionDepth counts the consecutive Execution wrappers at the top of
// err. It is the number of handler layers the original failure crossed.
func ExecutionDepth(err error) int {
	depth := 0
	for {
		e, ok := err.(*Error)
		if !ok || e.kind != KindExecution {
			return depth
		}
		depth++
		err = e.err
	}
}

// Root strips all Execution wrappers and returns the originating error.
func Root(err error) error {
	for {
		e, ok := err.(*Error)
		if !ok || e.kind != KindExecution {
			return err
		}
		err = e.err
	}
}
