package snapshotstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/test-run-config/framework"
)

func TestHTTPStoreReadsFromServer(t *testing.T) {
	backing := NewDirStore(t.TempDir())
	s := makeSnapshot(t)
	require.NoError(t, backing.Put(context.Background(), "run1", s))

	httphelpers.WithServer(NewServer(backing, framework.NullLogger()), func(server *httptest.Server) {
		client := NewHTTPStore(server.URL+"/", nil)

		assert.True(t, client.Available(context.Background()))

		result, err := client.Get(context.Background(), "run1")
		require.NoError(t, err)
		assert.Equal(t, s, result.Value())

		result, err = client.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, result.IsDefined())
	})
}

func TestServerLogsWithPrefix(t *testing.T) {
	backing := NewDirStore(t.TempDir())
	require.NoError(t, backing.Put(context.Background(), "run1", makeSnapshot(t)))
	var logger framework.CapturingLogger
	server := NewServer(backing, &logger)

	rr := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", "/snapshots/run1", nil)
	server.ServeHTTP(rr, r)

	assert.Equal(t, 200, rr.Code)
	assert.Equal(t, []string{`[snapshots] Sending snapshot "run1"`}, logger.Output().Messages())
}

func TestHTTPStoreIsReadOnly(t *testing.T) {
	client := NewHTTPStore("http://localhost:1", nil)

	assert.ErrorIs(t, client.Put(context.Background(), "run1", makeSnapshot(t)), ErrReadOnly)
}

func TestHTTPStoreErrorStatus(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(500), func(server *httptest.Server) {
		client := NewHTTPStore(server.URL, nil)

		_, err := client.Get(context.Background(), "run1")
		assert.Error(t, err)
		assert.False(t, client.Available(context.Background()))
	})
}

func TestServerRoutes(t *testing.T) {
	server := NewServer(NewDirStore(t.TempDir()), nil)

	for _, tc := range []struct {
		method, path string
		status       int
	}{
		{"HEAD", "/", 200},
		{"GET", "/snapshots/missing", 404},
		{"POST", "/snapshots/missing", 405},
		{"GET", "/other", 404},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r, _ := http.NewRequest(tc.method, tc.path, nil)
			server.ServeHTTP(rr, r)
			assert.Equal(t, tc.status, rr.Code)
		})
	}
}
