package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cliplabel/types"
)

// FileRecord keeps the queue in a single JSON file, rewriting the whole
// file on every mutation. Last writer wins.
type FileRecord struct {
	path string
}

// NewFileRecord creates a file-backed queue record at path.
func NewFileRecord(path string) *FileRecord {
	return &FileRecord{path: path}
}

func (f *FileRecord) Read(ctx context.Context) (types.Queue, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return types.EmptyQueue(), nil
	}
	if err != nil {
		return types.Queue{}, fmt.Errorf("read queue file: %w", err)
	}
	var q types.Queue
	if err := json.Unmarshal(data, &q); err != nil {
		return types.Queue{}, fmt.Errorf("decode queue file: %w", err)
	}
	if q.Videos == nil {
		q.Videos = []types.VideoDescriptor{}
	}
	return q, nil
}

func (f *FileRecord) Write(ctx context.Context, q types.Queue) error {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create queue dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write queue file: %w", err)
	}
	return nil
}
