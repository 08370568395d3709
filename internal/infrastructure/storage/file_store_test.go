package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
)

func newTestStore(t *testing.T, opts ...FileStoreOption) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFileStore(dir, nil, opts...)
	require.NoError(t, err)
	return fs, dir
}

func TestFileStore_ListMissingCollection(t *testing.T) {
	fs, _ := newTestStore(t)

	docs, err := fs.List(context.Background(), "tasks")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestFileStore_SequentialAppends(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	first, err := fs.Append(ctx, "tasks", map[string]any{"title": "write doc"})
	require.NoError(t, err)
	second, err := fs.Append(ctx, "tasks", map[string]any{"title": "review doc"})
	require.NoError(t, err)

	require.NotEmpty(t, first.ID)
	require.NotEqual(t, first.ID, second.ID)

	docs, err := fs.List(ctx, "tasks")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].ID)
	assert.Equal(t, second.ID, docs[1].ID)
	assert.JSONEq(t, `"write doc"`, string(docs[0].Fields["title"]))
	assert.JSONEq(t, `"review doc"`, string(docs[1].Fields["title"]))
	// UUIDv7 strings sort by creation time
	assert.Less(t, docs[0].ID, docs[1].ID)
}

func TestFileStore_ConcurrentAppendsKeepEveryRecord(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := fs.Append(ctx, "tasks", map[string]any{"n": n})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	docs, err := fs.List(ctx, "tasks")
	require.NoError(t, err)
	require.Len(t, docs, writers)

	ids := make(map[string]struct{}, writers)
	seen := make(map[string]struct{}, writers)
	for _, d := range docs {
		ids[d.ID] = struct{}{}
		seen[string(d.Fields["n"])] = struct{}{}
	}
	assert.Len(t, ids, writers)
	assert.Len(t, seen, writers)
}

func TestFileStore_ListIsIdempotent(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	_, err := fs.Append(ctx, "projects", map[string]any{"name": "Apollo", "sprint": 3})
	require.NoError(t, err)

	a, err := fs.List(ctx, "projects")
	require.NoError(t, err)
	b, err := fs.List(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFileStore_WritesPrettyPrintedArray(t *testing.T) {
	fs, dir := newTestStore(t)

	doc, err := fs.Append(context.Background(), "projects", map[string]any{"name": "Apollo"})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)

	want := fmt.Sprintf("[\n  {\n    \"id\": %q,\n    \"name\": \"Apollo\"\n  }\n]", doc.ID)
	assert.Equal(t, want, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.Equal(t, []string{"projects.json"}, names)
}

func TestFileStore_ReplacesFileAtomically(t *testing.T) {
	fs, dir := newTestStore(t)
	ctx := context.Background()
	path := filepath.Join(dir, "tasks.json")

	_, err := fs.Append(ctx, "tasks", map[string]any{"title": "first"})
	require.NoError(t, err)
	before, err := os.Stat(path)
	require.NoError(t, err)

	_, err = fs.Append(ctx, "tasks", map[string]any{"title": "second"})
	require.NoError(t, err)
	after, err := os.Stat(path)
	require.NoError(t, err)

	// a rename swaps in a new inode instead of rewriting the old one
	assert.False(t, os.SameFile(before, after))
	assert.Equal(t, os.FileMode(0), after.Mode().Perm()&0o022)

	docs, err := fs.List(ctx, "tasks")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_ClientIDIsReplaced(t *testing.T) {
	fs, _ := newTestStore(t, WithIDGenerator(func() (string, error) { return "server-1", nil }))

	doc, err := fs.Append(context.Background(), "tasks", json.RawMessage(`{"id":"client","title":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "server-1", doc.ID)
	_, hasID := doc.Fields["id"]
	assert.False(t, hasID)
}

func TestFileStore_CorruptCollection(t *testing.T) {
	fs, dir := newTestStore(t)
	ctx := context.Background()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "1", "title": `), 0o644))

	docs, err := fs.List(ctx, "tasks")
	require.NoError(t, err)
	assert.Empty(t, docs)

	doc, err := fs.Append(ctx, "tasks", map[string]any{"title": "after corruption"})
	require.NoError(t, err)

	docs, err = fs.List(ctx, "tasks")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)

	quarantined, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, quarantined, 1)
	kept, err := os.ReadFile(quarantined[0])
	require.NoError(t, err)
	assert.Equal(t, `[{"id": "1", "title": `, string(kept))
}

func TestFileStore_FailedAppendLeavesCollectionUnchanged(t *testing.T) {
	calls := 0
	gen := func() (string, error) {
		calls++
		if calls > 1 {
			return "", errors.New("entropy exhausted")
		}
		return "doc-1", nil
	}
	fs, dir := newTestStore(t, WithIDGenerator(gen))
	ctx := context.Background()

	_, err := fs.Append(ctx, "tasks", map[string]any{"title": "kept"})
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)

	_, err = fs.Append(ctx, "tasks", map[string]any{"title": "lost"})
	require.ErrorIs(t, err, repositories.ErrWriteFailed)

	after, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_IDCollisionIsRetried(t *testing.T) {
	ids := []string{"a", "a", "b"}
	gen := func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}
	fs, _ := newTestStore(t, WithIDGenerator(gen))
	ctx := context.Background()

	first, err := fs.Append(ctx, "tasks", map[string]any{"title": "one"})
	require.NoError(t, err)
	second, err := fs.Append(ctx, "tasks", map[string]any{"title": "two"})
	require.NoError(t, err)

	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestFileStore_RejectsBadInput(t *testing.T) {
	fs, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		collection string
		record     any
		want       error
	}{
		{name: "path traversal", collection: "../etc", record: map[string]any{}, want: repositories.ErrInvalidCollection},
		{name: "upper case", collection: "Tasks", record: map[string]any{}, want: repositories.ErrInvalidCollection},
		{name: "array record", collection: "tasks", record: json.RawMessage(`[1,2]`), want: repositories.ErrInvalidRecord},
		{name: "scalar record", collection: "tasks", record: 42, want: repositories.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fs.Append(ctx, tt.collection, tt.record)
			require.ErrorIs(t, err, tt.want)
		})
	}

	docs, err := fs.List(ctx, "tasks")
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = fs.List(ctx, strings.Repeat("x", 65))
	require.ErrorIs(t, err, repositories.ErrInvalidCollection)
}
