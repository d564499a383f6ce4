package snapshotstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix used by the networked stores when a location does not name one.
const DefaultPrefix = "runctl"

// Open returns the Store described by location:
//
//	DIR or file:///DIR                    a DirStore
//	redis://HOST:PORT/PREFIX              a RedisStore
//	consul://HOST:PORT/PREFIX             a ConsulStore
//	dynamodb://TABLE/PREFIX?endpoint=URL  a DynamoStore, using the default AWS configuration
//	http://HOST:PORT or https://...       a read-only HTTPStore
//
// A store that holds a network client also implements io.Closer.
func Open(ctx context.Context, location string) (Store, error) {
	if !strings.Contains(location, "://") {
		return NewDirStore(location), nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot store location %q: %w", location, err)
	}
	prefix := strings.Trim(u.Path, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}

	switch u.Scheme {
	case "file":
		return NewDirStore(u.Path), nil
	case "http", "https":
		return NewHTTPStore(location, nil), nil
	case "redis":
		return NewRedisStore(redis.NewClient(&redis.Options{Addr: u.Host}), prefix), nil
	case "consul":
		config := consul.DefaultConfig()
		config.Address = u.Host
		client, err := consul.NewClient(config)
		if err != nil {
			return nil, err
		}
		return NewConsulStore(client, prefix), nil
	case "dynamodb":
		if u.Host == "" {
			return nil, fmt.Errorf("snapshot store location %q does not name a table", location)
		}
		client, err := NewDynamoClient(ctx, u.Query().Get("endpoint"))
		if err != nil {
			return nil, err
		}
		return NewDynamoStore(client, u.Host, prefix), nil
	default:
		return nil, fmt.Errorf("unsupported snapshot store location %q", location)
	}
}
