package snapshotstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/launchdarkly/test-run-config/framework"
	"github.com/launchdarkly/test-run-config/framework/opt"
	"github.com/launchdarkly/test-run-config/runconfig"
)

// Server makes the snapshots in a Store readable over HTTP, for workers that do not share a
// file system with the coordinating process.
//
//	HEAD /                  liveness check
//	GET  /snapshots/{key}   the snapshot as JSON, or 404
type Server struct {
	store       Store
	handler     http.Handler
	debugLogger framework.Logger
}

func NewServer(store Store, debugLogger framework.Logger) *Server {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	s := &Server{store: store, debugLogger: framework.LoggerWithPrefix(debugLogger, "[snapshots] ")}
	router := mux.NewRouter()
	router.HandleFunc("/", s.serveStatus).Methods("HEAD", "GET")
	router.HandleFunc("/snapshots/{key}", s.serveSnapshot).Methods("GET")
	s.handler = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) serveStatus(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := ValidateKey(key); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := s.store.Get(r.Context(), key)
	if err != nil {
		s.debugLogger.Printf("Error reading snapshot %q: %s", key, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	snapshot, ok := result.Get()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	data, err := snapshot.MarshalJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.debugLogger.Printf("Sending snapshot %q", key)
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HTTPStore is a read-only Store client for a Server.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// ErrReadOnly is returned by HTTPStore.Put.
var ErrReadOnly = errors.New("snapshot store is read-only") //nolint:gochecknoglobals

func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

func (h *HTTPStore) Put(ctx context.Context, key string, snapshot runconfig.Snapshot) error {
	return ErrReadOnly
}

func (h *HTTPStore) Get(ctx context.Context, key string) (opt.Maybe[runconfig.Snapshot], error) {
	if err := ValidateKey(key); err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/snapshots/"+url.PathEscape(key), nil)
	if err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return decodeSnapshot(key, data)
	case http.StatusNotFound:
		return opt.None[runconfig.Snapshot](), nil
	default:
		return opt.None[runconfig.Snapshot](), fmt.Errorf("snapshot request for %q returned status %d", key, resp.StatusCode)
	}
}

// Available returns true if the server responds to a liveness check.
func (h *HTTPStore) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "HEAD", h.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
