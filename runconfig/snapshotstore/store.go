// Package snapshotstore publishes controller snapshots so that worker processes can restore them.
//
// A coordinating process builds its runconfig.Controller, takes a Snapshot, and Puts it under a
// run key. Each worker Gets the snapshot by the same key and calls runconfig.Restore.
package snapshotstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/launchdarkly/test-run-config/framework/opt"
	"github.com/launchdarkly/test-run-config/runconfig"
)

// Store is a place where snapshots can be published and retrieved by key.
type Store interface {
	// Put stores a snapshot, replacing any existing one with the same key.
	Put(ctx context.Context, key string, snapshot runconfig.Snapshot) error

	// Get retrieves a snapshot. An undefined result with a nil error means there is no snapshot
	// with that key.
	Get(ctx context.Context, key string) (opt.Maybe[runconfig.Snapshot], error)
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`) //nolint:gochecknoglobals

// ValidateKey returns an error if key cannot be used with every Store implementation. Keys
// become file names and URL path segments, so only letters, digits, '.', '_' and '-' are
// allowed, and "." and ".." are rejected.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid snapshot key %q", key)
	}
	return nil
}

func decodeSnapshot(key string, data []byte) (opt.Maybe[runconfig.Snapshot], error) {
	var s runconfig.Snapshot
	if err := s.UnmarshalJSON(data); err != nil {
		return opt.None[runconfig.Snapshot](), fmt.Errorf("malformed snapshot %q: %w", key, err)
	}
	return opt.Some(s), nil
}
