package indexit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	embedded "github.com/poiesic/indexit/vectorstore/badger"
	"github.com/poiesic/indexit/vectorstore/qdrant"
)

func TestConnectStore_RemoteWhenReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store, err := ConnectStore(context.Background(), StoreConfig{
		RemoteURL:    server.URL,
		ProbeTimeout: time.Second,
	})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*qdrant.Store)
	assert.True(t, ok, "reachable remote must bind to the remote backend")
}

func TestConnectStore_FallsBackWhenUnreachable(t *testing.T) {
	store, err := ConnectStore(context.Background(), StoreConfig{
		RemoteURL:    "http://127.0.0.1:1",
		DataDir:      t.TempDir(),
		ProbeTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*embedded.Store)
	assert.True(t, ok, "probe failure must fall back to the embedded backend")
}

func TestConnectStore_EmbeddedWithoutRemote(t *testing.T) {
	store, err := ConnectStore(context.Background(), StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*embedded.Store)
	assert.True(t, ok)
}
