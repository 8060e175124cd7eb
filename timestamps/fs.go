package timestamps

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cliplabel/types"
)

// FSStore keeps one CSV file per video name under a root directory.
// Directory components of the name become nested directories.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem-backed timestamp store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: dir}
}

func (s *FSStore) csvPath(videoName string) string {
	return filepath.Join(s.root, filepath.FromSlash(videoName)+".csv")
}

func (s *FSStore) Get(ctx context.Context, videoName string) ([]types.Segment, error) {
	data, err := os.ReadFile(s.csvPath(videoName))
	if os.IsNotExist(err) {
		return []types.Segment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read timestamps for %s: %w", videoName, err)
	}
	return Parse(string(data)), nil
}

func (s *FSStore) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".csv") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSuffix(filepath.ToSlash(rel), ".csv"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list timestamps: %w", err)
	}
	return names, nil
}

func (s *FSStore) Upsert(ctx context.Context, videoName string, segments []types.Segment) error {
	path := s.csvPath(videoName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create timestamp dir for %s: %w", videoName, err)
	}
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "%g,%g\n", seg.Start, seg.End)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write timestamps for %s: %w", videoName, err)
	}
	return nil
}

func (s *FSStore) BulkUpsert(ctx context.Context, entries []Entry) ([]UploadResult, error) {
	results := []UploadResult{}
	for _, e := range entries {
		if e.VideoName == "" || e.Segments == nil {
			continue
		}
		if err := s.Upsert(ctx, e.VideoName, e.Segments); err != nil {
			return results, err
		}
		results = append(results, UploadResult{VideoName: e.VideoName, Count: len(e.Segments)})
	}
	return results, nil
}

func (s *FSStore) Has(ctx context.Context, videoName string) bool {
	info, err := os.Stat(s.csvPath(videoName))
	return err == nil && !info.IsDir()
}
