// Package registry tracks which addresses currently serve a given RPC
// service. Entries are keyed by the service's protobuf name, so clients
// and servers agree on identity through their descriptors rather than Go
// type names.
//
// The registry stores transport addresses only; connecting to them is the
// job of externally supplied transport handlers.
package registry

// Instance is one registered provider of a service.
type Instance struct {
	Addr    string
	Weight  int // weight for load balancing
	Version string
}

// Registry is the service discovery interface.
type Registry interface {
	// Register announces an instance for serviceProtoName with a TTL in
	// seconds; implementations renew the entry until Deregister.
	Register(serviceProtoName string, instance Instance, ttl int64) error

	// Deregister withdraws the instance at addr.
	Deregister(serviceProtoName string, addr string) error

	// Discover returns all currently registered instances.
	Discover(serviceProtoName string) ([]Instance, error)

	// Watch emits the updated instance list whenever it changes.
	Watch(serviceProtoName string) <-chan []Instance
}
