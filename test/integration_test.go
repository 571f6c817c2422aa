package test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-rpc/codec"
	"simple-rpc/descriptor"
	"simple-rpc/example/echo"
	"simple-rpc/example/greeting"
	"simple-rpc/future"
	"simple-rpc/handler"
	"simple-rpc/middleware"
	"simple-rpc/rpcerror"
)

func encodeBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	payload, err := codec.Encode(wrapperspb.Bytes(data))
	if err != nil {
		t.Fatal(err)
	}
	return payload
}

func encodeString(t *testing.T, s string) []byte {
	t.Helper()
	payload, err := codec.Encode(wrapperspb.String(s))
	if err != nil {
		t.Fatal(err)
	}
	return payload
}

// ---- test services ----

var errBoom = errors.New("boom")

type echoService struct {
	fail bool
}

func (s *echoService) Echo(ctx context.Context, input *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s.fail {
		return nil, errBoom
	}
	return wrapperspb.Bytes(input.GetValue()), nil
}

type greetingService struct {
	failHello   bool
	failGoodbye bool
}

func (s *greetingService) SayHello(ctx context.Context, name *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if s.failHello {
		return nil, errBoom
	}
	return wrapperspb.String(fmt.Sprintf("Hello, %s!", name.GetValue())), nil
}

func (s *greetingService) SayGoodbye(ctx context.Context, name *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if s.failGoodbye {
		return nil, errBoom
	}
	return wrapperspb.String(fmt.Sprintf("Goodbye, %s!", name.GetValue())), nil
}

// ---- scenarios ----

// An in-process client driven against a non-failing server returns
// exactly what the business logic produced.
func TestEchoPassthrough(t *testing.T) {
	server := echo.NewEchoServer(&echoService{}, nil)
	client := echo.NewEchoClient(server)

	data := []byte{1, 2, 3}
	out, err := client.Echo(context.Background(), wrapperspb.Bytes(data))
	if err != nil {
		t.Fatalf("Echo failed: %v", err)
	}
	if string(out.GetValue()) != string(data) {
		t.Fatalf("expect %v back unchanged, got %v", data, out.GetValue())
	}
}

func TestGreetingScenario(t *testing.T) {
	server := greeting.NewGreetingServer(&greetingService{}, nil)
	client := greeting.NewGreetingClient(server)

	hello, err := client.SayHello(context.Background(), wrapperspb.String("dflemstr"))
	if err != nil {
		t.Fatalf("SayHello failed: %v", err)
	}
	if hello.GetValue() != "Hello, dflemstr!" {
		t.Fatalf("expect greeting, got %q", hello.GetValue())
	}

	goodbye, err := client.SayGoodbye(context.Background(), wrapperspb.String("dflemstr"))
	if err != nil {
		t.Fatalf("SayGoodbye failed: %v", err)
	}
	if goodbye.GetValue() != "Goodbye, dflemstr!" {
		t.Fatalf("expect farewell, got %q", goodbye.GetValue())
	}
}

// A failure crossing one handler layer carries one Execution wrapper; a
// second layer adds a second. The original error stays intact inside.
func TestErrorNestingDepth(t *testing.T) {
	server := echo.NewEchoServer(&echoService{fail: true}, nil)

	// One layer: calling the server handler directly.
	payload := encodeBytes(t, []byte("x"))
	_, err := server.Call(context.Background(), echo.MethodEcho, payload).Wait(context.Background())
	if d := rpcerror.ExecutionDepth(err); d != 1 {
		t.Fatalf("one handler layer: expect depth 1, got %d (%v)", d, err)
	}
	if rpcerror.Root(err) != errBoom {
		t.Fatalf("expect the business error at the root, got %v", rpcerror.Root(err))
	}

	// Two layers: a client whose handler is that server.
	client := echo.NewEchoClient(server)
	_, err = client.Echo(context.Background(), wrapperspb.Bytes([]byte("x")))
	if d := rpcerror.ExecutionDepth(err); d != 2 {
		t.Fatalf("two handler layers: expect depth 2, got %d (%v)", d, err)
	}
	if rpcerror.Root(err) != errBoom {
		t.Fatalf("expect the business error at the root, got %v", rpcerror.Root(err))
	}
}

// A corrupting hop between client and server turns the server's local
// decode error into Execution(Decode) on the client side: the inner tag
// is wrapped whole, never flattened.
func TestCompositionKeepsInnerTags(t *testing.T) {
	server := greeting.NewGreetingServer(&greetingService{}, nil)
	corrupting := handler.HandlerFunc(func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
		return server.Call(ctx, method, []byte{0xff, 0xff})
	})

	client := greeting.NewGreetingClient(corrupting)
	_, err := client.SayHello(context.Background(), wrapperspb.String("dflemstr"))

	var outer *rpcerror.Error
	if !errors.As(err, &outer) || outer.Kind() != rpcerror.KindExecution {
		t.Fatalf("expect execution wrapper at the client, got %v", err)
	}
	inner, ok := outer.Unwrap().(*rpcerror.Error)
	if !ok || inner.Kind() != rpcerror.KindDecode {
		t.Fatalf("expect the server's decode error inside, got %v", outer.Unwrap())
	}
}

// Every method the descriptor declares dispatches to a real result.
func TestExhaustiveDispatch(t *testing.T) {
	server := greeting.NewGreetingServer(&greetingService{}, nil)

	input := encodeString(t, "dflemstr")
	for _, m := range greeting.Descriptor.Methods() {
		out, err := server.Call(context.Background(), m, input).Wait(context.Background())
		if err != nil {
			t.Fatalf("method %s did not dispatch: %v", m.Name(), err)
		}
		if len(out) == 0 {
			t.Fatalf("method %s produced no payload", m.Name())
		}
	}
}

// Handlers compose with middleware between client and server.
func TestMiddlewareStack(t *testing.T) {
	server := greeting.NewGreetingServer(&greetingService{}, nil)
	stack := middleware.Chain(
		middleware.Logging(nil),
		middleware.Timeout(time.Second),
		middleware.RateLimit(100, 100),
	)(server)

	client := greeting.NewGreetingClient(stack)
	out, err := client.SayHello(context.Background(), wrapperspb.String("dflemstr"))
	if err != nil {
		t.Fatalf("SayHello through middleware failed: %v", err)
	}
	if out.GetValue() != "Hello, dflemstr!" {
		t.Fatalf("expect greeting, got %q", out.GetValue())
	}
}

// One shared server handler carries many concurrent independent calls.
func TestConcurrentCalls(t *testing.T) {
	server := greeting.NewGreetingServer(&greetingService{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client := greeting.NewGreetingClient(server)
			name := fmt.Sprintf("caller-%d", i)
			out, err := client.SayHello(context.Background(), wrapperspb.String(name))
			if err != nil {
				t.Errorf("call %d failed: %v", i, err)
				return
			}
			want := fmt.Sprintf("Hello, %s!", name)
			if out.GetValue() != want {
				t.Errorf("call %d: expect %q, got %q", i, want, out.GetValue())
			}
		}(i)
	}
	wg.Wait()
}

// A call abandoned before the business logic answers delivers nothing and
// fails with Canceled when waited on with a dead context.
func TestCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := handler.HandlerFunc(func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
		fut, promise := future.New[[]byte]()
		go func() {
			<-release
			promise.Abandon()
		}()
		return fut
	})

	client := greeting.NewGreetingClient(slow)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.SayHello(ctx, wrapperspb.String("dflemstr"))
	if !rpcerror.IsCanceled(err) {
		t.Fatalf("expect canceled error, got %v", err)
	}
}
