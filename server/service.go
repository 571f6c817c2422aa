package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
	"simple-rpc/rpcerror"
)

// RouteFunc is one method's decode/invoke/encode path, keyed by its
// descriptor in a Service table.
type RouteFunc func(ctx context.Context, input []byte) *future.Future[[]byte]

// NewRoute builds the route for one method: each inbound payload is driven
// through a fresh server Call on its own goroutine.
func NewRoute[In, Out proto.Message](newInput func() In, invoke func(context.Context, In) (Out, error)) RouteFunc {
	return func(ctx context.Context, input []byte) *future.Future[[]byte] {
		fut, promise := future.New[[]byte]()
		call := NewCall(input, newInput, invoke)
		go func() {
			payload, err := call.Wait(ctx)
			if err != nil {
				promise.Fail(err)
				return
			}
			promise.Complete(payload)
		}()
		return fut
	}
}

// Service exposes a generated method table as a Handler. Generated server
// wrappers create one Service per business-logic instance, register a
// route for every declared method, and hand the Service out as the
// in-process handler for that instance.
//
// A Service is safe for concurrent use once all routes are registered;
// registration happens up front in generated constructors, never at call
// time.
type Service struct {
	desc   descriptor.Service
	routes map[descriptor.Method]RouteFunc
	log    *zap.Logger
}

// NewService creates an empty dispatch table for the described service.
// A nil logger disables call logging.
func NewService(desc descriptor.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		desc:   desc,
		routes: make(map[descriptor.Method]RouteFunc),
		log:    logger,
	}
}

// Descriptor returns the service descriptor this table dispatches for.
func (s *Service) Descriptor() descriptor.Service {
	return s.desc
}

// Register binds a route to one of the service's declared methods. A
// method outside the declared set is rejected: the table must stay closed
// over Descriptor().Methods().
func (s *Service) Register(method descriptor.Method, route RouteFunc) error {
	if !s.desc.Declares(method) {
		return fmt.Errorf("server: method %q is not declared by service %q", method.Name(), s.desc.Name())
	}
	s.routes[method] = route
	return nil
}

// Missing returns the declared methods that have no registered route yet.
// Generated constructors use it to assert the table is total before the
// service goes live.
func (s *Service) Missing() []descriptor.Method {
	var missing []descriptor.Method
	for _, m := range s.desc.Methods() {
		if _, ok := s.routes[m]; !ok {
			missing = append(missing, m)
		}
	}
	return missing
}

// Call dispatches a raw invocation to the route registered for the
// method. Dispatch is total over the declared set; a descriptor the
// service never declared fails with an Execution error.
func (s *Service) Call(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
	route, ok := s.routes[method]
	if !ok {
		return future.Failed[[]byte](rpcerror.Execution(
			fmt.Errorf("server: no route for method %q on service %q", method.Name(), s.desc.Name())))
	}
	s.log.Debug("dispatching call",
		zap.String("service", s.desc.ProtoName()),
		zap.String("method", method.ProtoName()),
		zap.Int("input_bytes", len(input)))
	return route(ctx, input)
}

var _ handler.Handler = (*Service)(nil)
