package snapshotstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/launchdarkly/test-run-config/framework/opt"
	"github.com/launchdarkly/test-run-config/runconfig"
)

// DirStore keeps each snapshot in a "<key>.json" file in a directory.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (d *DirStore) Dir() string { return d.dir }

func (d *DirStore) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}

// Put writes the snapshot to a temporary file and renames it into place, so a concurrent Get
// never sees a partially written file.
func (d *DirStore) Put(ctx context.Context, key string, snapshot runconfig.Snapshot) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := snapshot.MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil { //nolint:gosec
		return fmt.Errorf("unable to create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(d.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("unable to write snapshot %q: %w", key, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("unable to write snapshot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write snapshot %q: %w", key, err)
	}
	return os.Rename(tmp.Name(), d.path(key))
}

func (d *DirStore) Get(ctx context.Context, key string) (opt.Maybe[runconfig.Snapshot], error) {
	if err := ValidateKey(key); err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return opt.None[runconfig.Snapshot](), nil
		}
		return opt.None[runconfig.Snapshot](), fmt.Errorf("unable to read snapshot %q: %w", key, err)
	}
	return decodeSnapshot(key, data)
}

// ReadSnapshotFile decodes a snapshot file written by DirStore, given its full path.
func ReadSnapshotFile(path string) (runconfig.Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return runconfig.Snapshot{}, fmt.Errorf("unable to read snapshot file: %w", err)
	}
	var s runconfig.Snapshot
	if err := s.UnmarshalJSON(data); err != nil {
		return runconfig.Snapshot{}, fmt.Errorf("malformed snapshot file %q: %w", path, err)
	}
	return s, nil
}
