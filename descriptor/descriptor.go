// Package descriptor defines the static identity values for RPC services
// and their methods.
//
// Descriptors are built once by generated code, live for the process
// lifetime, and are never mutated. A Method value doubles as the dispatch
// key: servers select the decode/invoke/encode path for a call by comparing
// Method values, and routing layers enumerate Service.Methods() to validate
// what a service offers.
package descriptor

import "reflect"

// Service identifies one RPC service and its full method set.
type Service struct {
	name      string
	protoName string
	methods   []Method
}

// NewService builds a service descriptor. Generated code calls this once
// per service with the complete, final method list.
func NewService(name, protoName string, methods ...Method) Service {
	ms := make([]Method, len(methods))
	copy(ms, methods)
	return Service{name: name, protoName: protoName, methods: ms}
}

// Name returns the service name as used in Go code.
func (s Service) Name() string {
	return s.name
}

// ProtoName returns the raw protobuf name of the service.
func (s Service) ProtoName() string {
	return s.protoName
}

// Methods returns the complete list of declared methods. The list is
// stable: every Method value handed out by this package round-trips
// through it.
func (s Service) Methods() []Method {
	ms := make([]Method, len(s.methods))
	copy(ms, s.methods)
	return ms
}

// MethodByProtoName looks up a declared method by its protobuf name.
func (s Service) MethodByProtoName(protoName string) (Method, bool) {
	for _, m := range s.methods {
		if m.protoName == protoName {
			return m, true
		}
	}
	return Method{}, false
}

// Declares reports whether m is one of the service's declared methods.
func (s Service) Declares(m Method) bool {
	for _, dm := range s.methods {
		if dm == m {
			return true
		}
	}
	return false
}

// Method identifies one method of a service.
//
// Method values are comparable and are compared by value; two descriptors
// for the same declared method are interchangeable.
type Method struct {
	name            string
	protoName       string
	inputType       reflect.Type
	inputProtoType  string
	outputType      reflect.Type
	outputProtoType string
}

// NewMethod builds a method descriptor. The reflect.Type arguments are
// opaque identity tokens for the input and output message types; they are
// only ever compared for equality.
func NewMethod(name, protoName string, inputType reflect.Type, inputProtoType string, outputType reflect.Type, outputProtoType string) Method {
	return Method{
		name:            name,
		protoName:       protoName,
		inputType:       inputType,
		inputProtoType:  inputProtoType,
		outputType:      outputType,
		outputProtoType: outputProtoType,
	}
}

// TypeOf returns the identity token for a message type, for use with
// NewMethod. Generated code writes TypeOf[*pb.SomeRequest]().
func TypeOf[M any]() reflect.Type {
	return reflect.TypeOf((*M)(nil)).Elem()
}

// Name returns the method name as used in Go code.
func (m Method) Name() string {
	return m.name
}

// ProtoName returns the raw protobuf name of the method.
func (m Method) ProtoName() string {
	return m.protoName
}

// InputType returns the identity token of the input message type.
func (m Method) InputType() reflect.Type {
	return m.inputType
}

// InputProtoType returns the raw protobuf name of the input type.
func (m Method) InputProtoType() string {
	return m.inputProtoType
}

// OutputType returns the identity token of the output message type.
func (m Method) OutputType() reflect.Type {
	return m.outputType
}

// OutputProtoType returns the raw protobuf name of the output type.
func (m Method) OutputProtoType() string {
	return m.outputProtoType
}
