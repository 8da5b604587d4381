package keyvalue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/zenfit/internal/telemetry/tracing"
)

// FileStore keeps every key in its own JSON file within the root dir.
// The whole value is rewritten on each Set - simple, and fine at
// personal-use data sizes.
type FileStore struct {
	rootPath string
	mutex    sync.RWMutex
}

func NewFileStore(rootPath string) (*FileStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("create root dir: %w", err)
	}
	return &FileStore{
		rootPath: rootPath,
	}, nil
}

func (fs *FileStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "keyvalue.file.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	value, err := os.ReadFile(fs.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read value file: %w", err)
	}
	return value, nil
}

func (fs *FileStore) Set(ctx context.Context, key string, value []byte) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "keyvalue.file.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	// write to a temp file first, then swap, to never leave a
	// half-written value behind
	valuePath := fs.filePath(key)
	tempPath := valuePath + ".tmp"
	if err := os.WriteFile(tempPath, value, 0o644); err != nil {
		return fmt.Errorf("write temp value file: %w", err)
	}
	if err := os.Rename(tempPath, valuePath); err != nil {
		return fmt.Errorf("swap value file: %w", err)
	}

	log.Tracef("file store: key [%s] written, %d bytes", key, len(value))
	return nil
}

func (fs *FileStore) filePath(key string) string {
	return path.Join(fs.rootPath, key+".json")
}
