package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"

	"github.com/launchdarkly/test-run-config/framework"
	"github.com/launchdarkly/test-run-config/framework/helpers"
	"github.com/launchdarkly/test-run-config/framework/hostenv"
	"github.com/launchdarkly/test-run-config/runconfig"
	"github.com/launchdarkly/test-run-config/runconfig/snapshotstore"
)

const (
	readHeaderTimeout = time.Second * 10
	storeOpenTimeout  = time.Second * 30
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	if err := run(params, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(params commandParams, out io.Writer) error {
	ctx := context.Background()
	controller, err := buildController(ctx, params)
	if err != nil {
		return err
	}

	printReport(out, controller)

	if params.publishTo != "" {
		store, err := openStore(ctx, params.publishTo)
		if err != nil {
			return err
		}
		defer closeStore(store)
		if err := store.Put(ctx, params.snapshotKey, controller.Snapshot()); err != nil {
			return fmt.Errorf("cannot publish snapshot: %w", err)
		}
		fmt.Fprintf(out, "published snapshot %q to %s\n", params.snapshotKey, params.publishTo)

		if params.serveAddr != "" {
			fmt.Fprintf(out, "serving snapshots on %s\n", params.serveAddr)
			server := &http.Server{
				Addr:              params.serveAddr,
				Handler:           snapshotstore.NewServer(store, controller.DebugLogger()),
				ReadHeaderTimeout: readHeaderTimeout,
			}
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
	}

	if n := controller.ErrorCount(); n > 0 {
		return fmt.Errorf("%d error(s) reported", n)
	}
	return nil
}

func buildController(ctx context.Context, params commandParams) (*runconfig.Controller, error) {
	if params.restoreFrom != "" {
		snapshot, err := readSnapshot(ctx, params.restoreFrom, params.snapshotKey)
		if err != nil {
			return nil, err
		}
		return runconfig.Restore(snapshot, runconfig.WithDebugLogger(makeDebugLogger(snapshot.Debug)))
	}

	options, err := params.Options()
	if err != nil {
		return nil, err
	}
	return runconfig.New(options, runconfig.WithDebugLogger(makeDebugLogger(options.Debug)))
}

// readSnapshot reads a single snapshot file if location names one, or else gets the snapshot
// with the given key from the store at location.
func readSnapshot(ctx context.Context, location, key string) (runconfig.Snapshot, error) {
	if strings.HasSuffix(location, ".json") && !strings.Contains(location, "://") {
		return snapshotstore.ReadSnapshotFile(location)
	}
	store, err := openStore(ctx, location)
	if err != nil {
		return runconfig.Snapshot{}, err
	}
	defer closeStore(store)
	result, err := store.Get(ctx, key)
	if err != nil {
		return runconfig.Snapshot{}, fmt.Errorf("cannot restore snapshot: %w", err)
	}
	snapshot, ok := result.Get()
	if !ok {
		return runconfig.Snapshot{}, fmt.Errorf("no snapshot %q in %s", key, location)
	}
	return snapshot, nil
}

func openStore(ctx context.Context, location string) (snapshotstore.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, storeOpenTimeout)
	defer cancel()
	return snapshotstore.Open(ctx, location)
}

func closeStore(store snapshotstore.Store) {
	if closer, ok := store.(io.Closer); ok {
		_ = closer.Close()
	}
}

func makeDebugLogger(debug bool) framework.Logger {
	if !debug {
		return framework.NullLogger()
	}
	base := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return framework.ZerologLogger(base)
}

// printReport shows what the controller derived from its inputs.
func printReport(out io.Writer, c *runconfig.Controller) {
	fmt.Fprintf(out, "program:            %s\n", c.ProgramName())
	fmt.Fprintf(out, "host:               %s (windows: %t)\n", c.HostOS(), c.IsHostWindows())
	fmt.Fprintf(out, "config names:       %s\n", strings.Join(c.ConfigNames(), " "))
	fmt.Fprintf(out, "site config names:  %s\n", strings.Join(c.SiteConfigNames(), " "))
	fmt.Fprintf(out, "local config names: %s\n", strings.Join(c.LocalConfigNames(), " "))
	shell := c.ShellPath()
	fmt.Fprintf(out, "shell:              %s\n", helpers.IfElse(shell == "", "(none)", shell))
	if prefix := c.LeakCheckPrefix(); len(prefix) > 0 {
		fmt.Fprintf(out, "leak check prefix:  %s\n", hostenv.QuoteCommand(prefix))
	}
	if timeout := c.PerTestTimeout(); timeout > 0 {
		fmt.Fprintf(out, "per-test timeout:   %ds\n", timeout)
	}
	params := c.Params()
	for _, k := range helpers.Sorted(maps.Keys(params)) {
		fmt.Fprintf(out, "param:              %s=%s\n", k, c.ParamString(k, ""))
	}
	groups := c.ParallelismGroups()
	for _, k := range helpers.Sorted(maps.Keys(groups)) {
		fmt.Fprintf(out, "parallelism group:  %s=%s\n", k, groups[k].JSONString())
	}
	if features := c.AvailableFeatures.List(); len(features) > 0 {
		fmt.Fprintf(out, "features:           %s\n", strings.Join(features, " "))
	}
	fmt.Fprintf(out, "errors: %d, warnings: %d\n", c.ErrorCount(), c.WarningCount())
}
