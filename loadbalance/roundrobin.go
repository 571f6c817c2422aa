package loadbalance

import (
	"sync/atomic"

	"simple-rpc/registry"
)

// RoundRobinBalancer distributes calls evenly across all instances in
// order, using an atomic counter for lock-free operation.
type RoundRobinBalancer struct {
	counter atomic.Int64
}

func (b *RoundRobinBalancer) Pick(instances []registry.Instance) (*registry.Instance, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}
	index := b.counter.Add(1) % int64(len(instances))
	return &instances[index], nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
