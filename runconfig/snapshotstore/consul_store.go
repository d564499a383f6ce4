package snapshotstore

import (
	"context"

	consul "github.com/hashicorp/consul/api"

	"github.com/launchdarkly/test-run-config/framework/opt"
	"github.com/launchdarkly/test-run-config/runconfig"
)

// ConsulStore keeps each snapshot in the Consul KV store under "<prefix>/<key>".
type ConsulStore struct {
	consul *consul.Client
	prefix string
}

func NewConsulStore(client *consul.Client, prefix string) *ConsulStore {
	return &ConsulStore{consul: client, prefix: prefix}
}

func (c *ConsulStore) kvKey(key string) string {
	return c.prefix + "/" + key
}

func (c *ConsulStore) Put(ctx context.Context, key string, snapshot runconfig.Snapshot) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := snapshot.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = c.consul.KV().Put(&consul.KVPair{Key: c.kvKey(key), Value: data}, (&consul.WriteOptions{}).WithContext(ctx))
	return err
}

func (c *ConsulStore) Get(ctx context.Context, key string) (opt.Maybe[runconfig.Snapshot], error) {
	if err := ValidateKey(key); err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	pair, _, err := c.consul.KV().Get(c.kvKey(key), (&consul.QueryOptions{}).WithContext(ctx))
	if err != nil || pair == nil {
		return opt.None[runconfig.Snapshot](), err
	}
	return decodeSnapshot(key, pair.Value)
}

// Reset removes every snapshot under the store's prefix.
func (c *ConsulStore) Reset() error {
	_, err := c.consul.KV().DeleteTree(c.prefix+"/", nil)
	return err
}
