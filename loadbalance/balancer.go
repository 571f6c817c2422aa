// Package loadbalance picks a target instance for each call when a
// service is served by more than one provider.
//
// Strategies:
//   - RoundRobin:      stateless services, equal-capacity instances
//   - WeightedRandom:  heterogeneous instances
//   - ConsistentHash:  key affinity for stateful services
package loadbalance

import (
	"errors"

	"simple-rpc/registry"
)

// ErrNoInstances is returned when a balancer is asked to pick from an
// empty instance list.
var ErrNoInstances = errors.New("loadbalance: no instances available")

// Balancer selects one instance from the available list. Pick runs on
// every call and must be goroutine-safe.
type Balancer interface {
	Pick(instances []registry.Instance) (*registry.Instance, error)

	// Name returns the strategy name, for logging.
	Name() string
}
