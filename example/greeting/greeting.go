// Package greeting holds the generated-style bindings for the two-method
// Greeting service. See package echo for the shape these bindings follow.
package greeting

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

// Greeting is the service interface implementations provide.
type Greeting interface {
	// SayHello greets the named caller.
	SayHello(ctx context.Context, name *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	// SayGoodbye sees the named caller off.
	SayGoodbye(ctx context.Context, name *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// Method descriptors and the service descriptor, fixed at generation time.
var (
	MethodSayHello = descriptor.NewMethod(
		"SayHello", "SayHello",
		descriptor.TypeOf[*wrapperspb.StringValue](), "google.protobuf.StringValue",
		descriptor.TypeOf[*wrapperspb.StringValue](), "google.protobuf.StringValue",
	)

	MethodSayGoodbye = descriptor.NewMethod(
		"SayGoodbye", "SayGoodbye",
		descriptor.TypeOf[*wrapperspb.StringValue](), "google.protobuf.StringValue",
		descriptor.TypeOf[*wrapperspb.StringValue](), "google.protobuf.StringValue",
	)

	Descriptor = descriptor.NewService("Greeting", "example.Greeting",
		MethodSayHello, MethodSayGoodbye)
)

// GreetingServer exposes a Greeting implementation as a Handler.
type GreetingServer struct {
	svc *server.Service
}

// NewGreetingServer wraps impl. A nil logger disables call logging.
func NewGreetingServer(impl Greeting, logger *zap.Logger) *GreetingServer {
	svc := server.NewService(Descriptor, logger)
	newString := func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} }
	_ = svc.Register(MethodSayHello, server.NewRoute(newString, impl.SayHello))
	_ = svc.Register(MethodSayGoodbye, server.NewRoute(newString, impl.SayGoodbye))
	return &GreetingServer{svc: svc}
}

func (s *GreetingServer) Call(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
	return s.svc.Call(ctx, method, input)
}

// GreetingClient implements Greeting over any Handler.
type GreetingClient struct {
	h handler.Handler
}

func NewGreetingClient(h handler.Handler) *GreetingClient {
	return &GreetingClient{h: h}
}

// SayHelloCall starts a SayHello call and returns its state machine.
func (c *GreetingClient) SayHelloCall(name *wrapperspb.StringValue) *client.Call[*wrapperspb.StringValue, *wrapperspb.StringValue] {
	return client.New(c.h, MethodSayHello, name,
		func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
}

// SayGoodbyeCall starts a SayGoodbye call and returns its state machine.
func (c *GreetingClient) SayGoodbyeCall(name *wrapperspb.StringValue) *client.Call[*wrapperspb.StringValue, *wrapperspb.StringValue] {
	return client.New(c.h, MethodSayGoodbye, name,
		func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
}

func (c *GreetingClient) SayHello(ctx context.Context, name *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return c.SayHelloCall(name).Wait(ctx)
}

func (c *GreetingClient) SayGoodbye(ctx context.Context, name *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return c.SayGoodbyeCall(name).Wait(ctx)
}

var (
	_ handler.Handler = (*GreetingServer)(nil)
	_ Greeting        = (*GreetingClient)(nil)
)
