package transfer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/wstore/transfer"
	"github.com/sagarc03/wstore/transfer/transfertest"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		remote string
		want   string
	}{
		{"default base", "http://localhost:4500/", "files/image.jpg", "http://localhost:4500/files/image.jpg"},
		{"relative appended to base path", "http://example.com/store/", "a/b.txt", "http://example.com/store/a/b.txt"},
		{"absolute replaces base path", "http://example.com/store/", "/a/b.txt", "http://example.com/a/b.txt"},
		{"base without trailing slash drops last segment", "http://example.com/files", "image.jpg", "http://example.com/image.jpg"},
		{"dot segments are removed", "http://example.com/store/sub/", "../x.txt", "http://example.com/store/x.txt"},
		{"query kept from remote", "http://example.com/store/", "file.txt?v=1", "http://example.com/store/file.txt?v=1"},
		{"base query dropped", "http://example.com/store/?token=1", "file.txt", "http://example.com/store/file.txt"},
		{"port and https kept", "https://example.com:8443/", "x", "https://example.com:8443/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transfer.ResolveURL(tt.base, tt.remote)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("empty remote", func(t *testing.T) {
		_, err := transfer.ResolveURL("http://localhost:4500/", "")
		assert.ErrorIs(t, err, transfer.ErrEmptyPath)
	})

	t.Run("invalid base", func(t *testing.T) {
		_, err := transfer.ResolveURL("://bad", "a.txt")
		assert.ErrorIs(t, err, transfer.ErrInvalidBaseURL)
	})
}

func TestClient_RequestTarget(t *testing.T) {
	store := transfertest.NewStore(t)
	store.Seed("/root.txt", []byte("root"))
	store.Seed("/store/nested.txt", []byte("nested"))

	client, _, _ := newTestClient(t, &transfer.Config{BaseURL: store.URL() + "store/"})

	require.NoError(t, client.Get(context.Background(), "nested.txt", ""))
	require.NoError(t, client.Get(context.Background(), "/root.txt", ""))

	requests := store.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/store/nested.txt", requests[0].Path)
	assert.Equal(t, "/root.txt", requests[1].Path)
}

func TestDefaultAuthPolicy(t *testing.T) {
	policy := transfer.DefaultAuthPolicy()
	assert.False(t, policy.RequiresAuth(transfer.OpFetch))
	assert.True(t, policy.RequiresAuth(transfer.OpCreate))
	assert.True(t, policy.RequiresAuth(transfer.OpReplace))
	assert.True(t, policy.RequiresAuth(transfer.OpDelete))
}

// runAllOperations performs Get, Post, Put and Delete against store in that
// order and returns the Authorization header seen for each.
func runAllOperations(t *testing.T, store *transfertest.Store, client *transfer.Client) map[string]string {
	t.Helper()
	ctx := context.Background()

	store.Seed("/fetch.txt", []byte("fetch"))
	localPath := filepath.Join(t.TempDir(), "local.txt")
	require.NoError(t, os.WriteFile(localPath, []byte("local"), 0o600))

	require.NoError(t, client.Get(ctx, "fetch.txt", ""))
	require.NoError(t, client.Post(ctx, localPath, "created.txt"))
	require.NoError(t, client.Put(ctx, localPath, "created.txt"))
	require.NoError(t, client.Delete(ctx, "created.txt"))

	seen := make(map[string]string)
	for _, r := range store.Requests() {
		seen[r.Method] = r.Authorization
	}
	return seen
}

func TestClient_AuthHeader(t *testing.T) {
	const want = "Basic YWxpY2U6c2VjcmV0" // alice:secret

	t.Run("reads are anonymous and writes are signed", func(t *testing.T) {
		store := transfertest.NewStore(t, transfertest.WithBasicAuth("alice", "secret"))
		client, _, _ := newTestClient(t, &transfer.Config{
			BaseURL:     store.URL(),
			Credentials: &transfer.Credentials{Username: "alice", Password: "secret"},
		})

		seen := runAllOperations(t, store, client)
		assert.Empty(t, seen["GET"])
		assert.Equal(t, want, seen["POST"])
		assert.Equal(t, want, seen["PUT"])
		assert.Equal(t, want, seen["DELETE"])
	})

	t.Run("no credentials means no header", func(t *testing.T) {
		store := transfertest.NewStore(t)
		client, _, _ := newTestClient(t, &transfer.Config{BaseURL: store.URL()})

		seen := runAllOperations(t, store, client)
		for method, auth := range seen {
			assert.Empty(t, auth, method)
		}
	})

	t.Run("custom policy", func(t *testing.T) {
		store := transfertest.NewStore(t)
		client, _, _ := newTestClient(t,
			&transfer.Config{
				BaseURL:     store.URL(),
				Credentials: &transfer.Credentials{Username: "alice", Password: "secret"},
			},
			transfer.WithAuthPolicy(transfer.AuthPolicy{transfer.OpFetch: true}),
		)

		seen := runAllOperations(t, store, client)
		assert.Equal(t, want, seen["GET"])
		assert.Empty(t, seen["POST"])
		assert.Empty(t, seen["PUT"])
		assert.Empty(t, seen["DELETE"])
	})

	t.Run("rejected credentials", func(t *testing.T) {
		store := transfertest.NewStore(t, transfertest.WithBasicAuth("alice", "secret"))
		localPath := writeLocal(t, "a.txt", []byte("a"))

		client, _, stderr := newTestClient(t, &transfer.Config{
			BaseURL:     store.URL(),
			Credentials: &transfer.Credentials{Username: "alice", Password: "wrong"},
		})

		err := client.Put(context.Background(), localPath, "a.txt")
		assert.ErrorIs(t, err, transfer.ErrUnauthorized)
		assert.Equal(t, "Error updating file: HTTP error! Status: 401, Message: unauthorized\n", stderr.String())
	})
}
