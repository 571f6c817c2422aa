package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"

	"simple-rpc/registry"
)

// ConsistentHashBalancer maps keys to instances on a hash ring, so the
// same key lands on the same instance until the ring changes.
//
// Each real instance is placed on the ring as N virtual nodes, hashed
// from "{addr}#{i}", which keeps the distribution statistically uniform
// even with few instances.
//
// Note: PickKey takes a caller-supplied affinity key instead of the plain
// Balancer Pick signature, because consistent hashing is key-based.
type ConsistentHashBalancer struct {
	replicas int
	ring     []uint32
	nodes    map[uint32]*registry.Instance
}

// NewConsistentHashBalancer creates a ring with 100 virtual nodes per
// instance.
func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		replicas: 100,
		nodes:    make(map[uint32]*registry.Instance),
	}
}

// Add places an instance onto the ring.
func (b *ConsistentHashBalancer) Add(instance *registry.Instance) {
	for i := 0; i < b.replicas; i++ {
		key := fmt.Sprintf("%s#%d", instance.Addr, i)
		hash := crc32.ChecksumIEEE([]byte(key))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = instance
	}
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// PickKey finds the instance responsible for key: the first ring node at
// or after the key's hash, wrapping around at the end of the ring.
func (b *ConsistentHashBalancer) PickKey(key string) (*registry.Instance, error) {
	if len(b.ring) == 0 {
		return nil, ErrNoInstances
	}
	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}
	return b.nodes[b.ring[idx]], nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}
