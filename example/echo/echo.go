// Package echo holds the bindings a service generator emits for the Echo
// service, written out by hand over the protobuf well-known wrapper types.
//
// The shape is the contract every generated service follows: a service
// interface, package-level descriptors, a server wrapper exposing the
// implementation as a Handler, and a client wrapper implementing the
// interface over any Handler. Only single-request/single-response methods
// exist here; generators reject streaming methods outright.
package echo

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-rpc/client"
	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
	"simple-rpc/server"
)

// Echo is the service interface implementations provide.
type Echo interface {
	// Echo returns the request payload unchanged.
	Echo(ctx context.Context, input *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// Method descriptors and the service descriptor, fixed at generation time.
var (
	MethodEcho = descriptor.NewMethod(
		"Echo", "Echo",
		descriptor.TypeOf[*wrapperspb.BytesValue](), "google.protobuf.BytesValue",
		descriptor.TypeOf[*wrapperspb.BytesValue](), "google.protobuf.BytesValue",
	)

	Descriptor = descriptor.NewService("Echo", "example.Echo", MethodEcho)
)

// EchoServer exposes an Echo implementation as a Handler by decoding,
// dispatching, and re-encoding each call in-process.
type EchoServer struct {
	svc *server.Service
}

// NewEchoServer wraps impl. A nil logger disables call logging.
func NewEchoServer(impl Echo, logger *zap.Logger) *EchoServer {
	svc := server.NewService(Descriptor, logger)
	// Registration covers the declared method set exactly, so it cannot fail.
	_ = svc.Register(MethodEcho, server.NewRoute(
		func() *wrapperspb.BytesValue { return &wrapperspb.BytesValue{} },
		impl.Echo,
	))
	return &EchoServer{svc: svc}
}

func (s *EchoServer) Call(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
	return s.svc.Call(ctx, method, input)
}

// EchoClient implements Echo by delegating every call to the supplied
// handler — an EchoServer for in-process composition, or a transport stub.
type EchoClient struct {
	h handler.Handler
}

func NewEchoClient(h handler.Handler) *EchoClient {
	return &EchoClient{h: h}
}

// EchoCall starts the call and returns its state machine for callers that
// want to drive it by hand.
func (c *EchoClient) EchoCall(input *wrapperspb.BytesValue) *client.Call[*wrapperspb.BytesValue, *wrapperspb.BytesValue] {
	return client.New(c.h, MethodEcho, input,
		func() *wrapperspb.BytesValue { return &wrapperspb.BytesValue{} })
}

func (c *EchoClient) Echo(ctx context.Context, input *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return c.EchoCall(input).Wait(ctx)
}

var (
	_ handler.Handler = (*EchoServer)(nil)
	_ Echo            = (*EchoClient)(nil)
)
