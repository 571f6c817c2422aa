package test

import (
	"context"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-rpc/codec"
	"simple-rpc/example/echo"
	"simple-rpc/example/greeting"
)

func BenchmarkEchoRoundTrip(b *testing.B) {
	server := echo.NewEchoServer(&echoService{}, nil)
	client := echo.NewEchoClient(server)
	input := wrapperspb.Bytes([]byte("benchmark payload"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Echo(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGreetingRoundTrip(b *testing.B) {
	server := greeting.NewGreetingServer(&greetingService{}, nil)
	client := greeting.NewGreetingClient(server)
	input := wrapperspb.String("dflemstr")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.SayHello(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodecEncode(b *testing.B) {
	msg := wrapperspb.Bytes(make([]byte, 1024))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Encode(msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodecDecode(b *testing.B) {
	payload, err := codec.Encode(wrapperspb.Bytes(make([]byte, 1024)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var msg wrapperspb.BytesValue
		if err := codec.Decode(payload, &msg); err != nil {
			b.Fatal(err)
		}
	}
}
