package registry

import (
	"sync"
)

// MemoryRegistry is a process-local Registry for tests and single-process
// wiring. TTLs are ignored; entries live until Deregister.
type MemoryRegistry struct {
	mu        sync.RWMutex
	instances map[string][]Instance
	watchers  map[string][]chan []Instance
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		instances: make(map[string][]Instance),
		watchers:  make(map[string][]chan []Instance),
	}
}

func (m *MemoryRegistry) Register(serviceProtoName string, instance Instance, ttl int64) error {
	m.mu.Lock()
	m.instances[serviceProtoName] = append(m.instances[serviceProtoName], instance)
	m.mu.Unlock()
	m.notify(serviceProtoName)
	return nil
}

func (m *MemoryRegistry) Deregister(serviceProtoName string, addr string) error {
	m.mu.Lock()
	insts := m.instances[serviceProtoName]
	for i, inst := range insts {
		if inst.Addr == addr {
			m.instances[serviceProtoName] = append(insts[:i], insts[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.notify(serviceProtoName)
	return nil
}

func (m *MemoryRegistry) Discover(serviceProtoName string) ([]Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	insts := make([]Instance, len(m.instances[serviceProtoName]))
	copy(insts, m.instances[serviceProtoName])
	return insts, nil
}

func (m *MemoryRegistry) Watch(serviceProtoName string) <-chan []Instance {
	ch := make(chan []Instance, 1)
	m.mu.Lock()
	m.watchers[serviceProtoName] = append(m.watchers[serviceProtoName], ch)
	m.mu.Unlock()
	return ch
}

func (m *MemoryRegistry) notify(serviceProtoName string) {
	instances, _ := m.Discover(serviceProtoName)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.watchers[serviceProtoName] {
		select {
		case ch <- instances:
		default: // watcher is behind, drop this update
		}
	}
}
