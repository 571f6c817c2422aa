package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

// prefix for all registry keys: /simple-rpc/{serviceProtoName}/{addr}
const keyPrefix = "/simple-rpc/"

// EtcdRegistry implements Registry on etcd v3.
//
// Registration uses TTL leases: if the owning process dies, the lease
// expires and the entry disappears on its own, so stale instances never
// linger.
type EtcdRegistry struct {
	client *clientv3.Client // thread-safe, shared across goroutines
	log    *zap.Logger
}

// NewEtcdRegistry connects to the given etcd endpoints. A nil logger
// disables logging.
func NewEtcdRegistry(endpoints []string, logger *zap.Logger) (*EtcdRegistry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
		Logger:    logger.Named("etcd"),
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c, log: logger}, nil
}

// Register stores the instance under a TTL lease and keeps renewing it in
// the background until Deregister or process exit.
func (r *EtcdRegistry) Register(serviceProtoName string, instance Instance, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	key := keyPrefix + serviceProtoName + "/" + instance.Addr
	_, err = r.client.Put(ctx, key, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain keepalive responses so the channel never fills up.
	go func() {
		for range ch {
		}
		r.log.Debug("keepalive stopped",
			zap.String("service", serviceProtoName),
			zap.String("addr", instance.Addr))
	}()

	r.log.Info("registered instance",
		zap.String("service", serviceProtoName),
		zap.String("addr", instance.Addr))
	return nil
}

// Deregister removes the instance entry.
func (r *EtcdRegistry) Deregister(serviceProtoName string, addr string) error {
	_, err := r.client.Delete(context.TODO(), keyPrefix+serviceProtoName+"/"+addr)
	if err != nil {
		return err
	}
	r.log.Info("deregistered instance",
		zap.String("service", serviceProtoName),
		zap.String("addr", addr))
	return nil
}

// Discover lists all instances currently registered under the service.
func (r *EtcdRegistry) Discover(serviceProtoName string) ([]Instance, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix+serviceProtoName+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var instance Instance
		if err := json.Unmarshal(kv.Value, &instance); err != nil {
			r.log.Warn("skipping malformed registry entry", zap.ByteString("key", kv.Key))
			continue
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// Watch re-fetches the full instance list on every change under the
// service prefix. etcd pushes changes, so there is no polling.
func (r *EtcdRegistry) Watch(serviceProtoName string) <-chan []Instance {
	ch := make(chan []Instance, 1)
	go func() {
		watchChan := r.client.Watch(context.TODO(), keyPrefix+serviceProtoName+"/", clientv3.WithPrefix())
		for range watchChan {
			instances, err := r.Discover(serviceProtoName)
			if err != nil {
				r.log.Warn("watch refresh failed", zap.String("service", serviceProtoName), zap.Error(err))
				continue
			}
			ch <- instances
		}
	}()
	return ch
}

// Close releases the etcd client.
func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}
