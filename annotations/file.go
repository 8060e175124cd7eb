package annotations

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"cliplabel/types"
)

type fileDB struct {
	Annotations []types.Annotation `json:"annotations"`
}

// FileStore keeps all annotations in one JSON file, read and rewritten
// whole on every mutation. Last writer wins.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed annotation store, seeding an empty
// database file when none exists.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(fileDB{Annotations: []types.Annotation{}}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FileStore) read() (fileDB, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return fileDB{Annotations: []types.Annotation{}}, nil
	}
	if err != nil {
		return fileDB{}, fmt.Errorf("read annotation db: %w", err)
	}
	var db fileDB
	if err := json.Unmarshal(data, &db); err != nil {
		return fileDB{}, fmt.Errorf("decode annotation db: %w", err)
	}
	if db.Annotations == nil {
		db.Annotations = []types.Annotation{}
	}
	return db, nil
}

func (s *FileStore) write(db fileDB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode annotation db: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write annotation db: %w", err)
	}
	return nil
}

func (s *FileStore) GetAll(ctx context.Context, f Filter) ([]types.Annotation, error) {
	db, err := s.read()
	if err != nil {
		return nil, err
	}
	results := []types.Annotation{}
	for _, a := range db.Annotations {
		if f.VideoID != "" && a.VideoID != f.VideoID {
			continue
		}
		if f.Intent != "" && !strings.EqualFold(a.Intent, f.Intent) {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(a.Text), needle) &&
				!strings.Contains(strings.ToLower(a.Intent), needle) {
				continue
			}
		}
		results = append(results, a)
	}
	if f.Sort == "startTime" {
		sort.SliceStable(results, func(i, j int) bool { return results[i].StartTime < results[j].StartTime })
	} else {
		sort.SliceStable(results, func(i, j int) bool { return results[i].CreatedAt > results[j].CreatedAt })
	}
	return results, nil
}

func (s *FileStore) GetByID(ctx context.Context, id string) (types.Annotation, error) {
	db, err := s.read()
	if err != nil {
		return types.Annotation{}, err
	}
	for _, a := range db.Annotations {
		if a.ID == id {
			return a, nil
		}
	}
	return types.Annotation{}, ErrNotFound
}

func (s *FileStore) Create(ctx context.Context, in types.AnnotationInput) (types.Annotation, error) {
	db, err := s.read()
	if err != nil {
		return types.Annotation{}, err
	}
	ann := newRecord(in)
	db.Annotations = append(db.Annotations, ann)
	if err := s.write(db); err != nil {
		return types.Annotation{}, err
	}
	return ann, nil
}

func (s *FileStore) Update(ctx context.Context, id string, in types.AnnotationInput) (types.Annotation, error) {
	db, err := s.read()
	if err != nil {
		return types.Annotation{}, err
	}
	for i := range db.Annotations {
		if db.Annotations[i].ID == id {
			merge(&db.Annotations[i], in)
			if err := s.write(db); err != nil {
				return types.Annotation{}, err
			}
			return db.Annotations[i], nil
		}
	}
	return types.Annotation{}, ErrNotFound
}

func (s *FileStore) Remove(ctx context.Context, id string) (bool, error) {
	db, err := s.read()
	if err != nil {
		return false, err
	}
	kept := db.Annotations[:0]
	removed := false
	for _, a := range db.Annotations {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return false, nil
	}
	db.Annotations = kept
	if err := s.write(db); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) GetForExport(ctx context.Context, videoID string) ([]types.Annotation, error) {
	db, err := s.read()
	if err != nil {
		return nil, err
	}
	results := []types.Annotation{}
	for _, a := range db.Annotations {
		if videoID != "" && a.VideoID != videoID {
			continue
		}
		results = append(results, a)
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].StartTime < results[j].StartTime })
	return results, nil
}
