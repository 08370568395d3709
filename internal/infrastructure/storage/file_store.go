package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
)

const (
	maxIDAttempts      = 5
	collectionFileMode = 0o644
)

// IDGenerator returns a new document id
type IDGenerator func() (string, error)

// NewUUIDv7 generates time-ordered ids
func NewUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// FileStore keeps every collection in <dir>/<collection>.json as a
// pretty-printed JSON array. Writes replace the whole file through a
// temp file and rename, so readers see either the old or the new array.
type FileStore struct {
	dir    string
	logger *zap.Logger
	newID  IDGenerator

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

var _ repositories.DocumentStore = (*FileStore)(nil)

// FileStoreOption configures a FileStore
type FileStoreOption func(*FileStore)

// WithIDGenerator replaces the default UUIDv7 generator
func WithIDGenerator(gen IDGenerator) FileStoreOption {
	return func(fs *FileStore) {
		fs.newID = gen
	}
}

// NewFileStore creates the data directory if needed
func NewFileStore(dir string, logger *zap.Logger, opts ...FileStoreOption) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fs := &FileStore{
		dir:    dir,
		logger: logger,
		newID:  NewUUIDv7,
		locks:  make(map[string]*sync.RWMutex),
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs, nil
}

// List returns the collection in insertion order
func (fs *FileStore) List(ctx context.Context, collection string) ([]repositories.Document, error) {
	if err := repositories.ValidateCollection(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock := fs.lockFor(collection)
	lock.RLock()
	defer lock.RUnlock()

	docs, err := fs.read(collection)
	if err != nil {
		fs.logger.Warn("storage.read.degraded",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return []repositories.Document{}, nil
	}
	if docs == nil {
		docs = []repositories.Document{}
	}
	return docs, nil
}

// Append stores record under a new id
func (fs *FileStore) Append(ctx context.Context, collection string, record any) (repositories.Document, error) {
	if err := repositories.ValidateCollection(collection); err != nil {
		return repositories.Document{}, err
	}
	doc, err := repositories.NewDocument("", record)
	if err != nil {
		return repositories.Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return repositories.Document{}, err
	}

	lock := fs.lockFor(collection)
	lock.Lock()
	defer lock.Unlock()

	docs, err := fs.read(collection)
	if err != nil {
		// Keep the unreadable file around instead of overwriting it.
		quarantined, qerr := fs.quarantine(collection)
		if qerr != nil {
			return repositories.Document{}, fmt.Errorf("%w: %s: %v", repositories.ErrWriteFailed, collection, qerr)
		}
		fs.logger.Warn("storage.read.degraded",
			zap.String("collection", collection),
			zap.String("quarantined_as", quarantined),
			zap.Error(err),
		)
		docs = nil
	}

	id, err := fs.uniqueID(docs)
	if err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %s: %v", repositories.ErrWriteFailed, collection, err)
	}
	doc.ID = id

	next := make([]repositories.Document, 0, len(docs)+1)
	next = append(next, docs...)
	next = append(next, doc)

	if err := fs.write(collection, next); err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %s: %v", repositories.ErrWriteFailed, collection, err)
	}

	fs.logger.Debug("storage.append",
		zap.String("collection", collection),
		zap.String("id", id),
		zap.Int("size", len(next)),
	)
	return doc, nil
}

func (fs *FileStore) lockFor(collection string) *sync.RWMutex {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	lock, ok := fs.locks[collection]
	if !ok {
		lock = &sync.RWMutex{}
		fs.locks[collection] = lock
	}
	return lock
}

func (fs *FileStore) path(collection string) string {
	return filepath.Join(fs.dir, collection+".json")
}

// read returns nil for a collection that was never written
func (fs *FileStore) read(collection string) ([]repositories.Document, error) {
	data, err := os.ReadFile(fs.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrReadDegraded, err)
	}

	var docs []repositories.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrReadDegraded, err)
	}
	return docs, nil
}

// write atomically replaces the collection file. The temp file lives in the
// store directory so the final rename never crosses filesystems.
func (fs *FileStore) write(collection string, docs []repositories.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(fs.path(collection), data, collectionFileMode, renameio.WithTempDir(fs.dir))
}

func (fs *FileStore) quarantine(collection string) (string, error) {
	target := fmt.Sprintf("%s.corrupt-%d", fs.path(collection), time.Now().UnixNano())
	if err := os.Rename(fs.path(collection), target); err != nil {
		return "", err
	}
	return target, nil
}

func (fs *FileStore) uniqueID(docs []repositories.Document) (string, error) {
	taken := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		taken[d.ID] = struct{}{}
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := fs.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if _, dup := taken[id]; !dup && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("no unique id after %d attempts", maxIDAttempts)
}
