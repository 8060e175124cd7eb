package annotations

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cliplabel/types"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return s
}

func mustCreate(t *testing.T, s *FileStore, start, end float64, intent, text string) types.Annotation {
	t.Helper()
	ann, err := s.Create(context.Background(), types.AnnotationInput{
		StartTime: f64(start),
		EndTime:   f64(end),
		Intent:    str(intent),
		Text:      str(text),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return ann
}

func TestFileStore_CreateAssignsIDAndDefaults(t *testing.T) {
	s := newTestFileStore(t)
	ann := mustCreate(t, s, 5, 10, "Blurry", "hard to read")

	if ann.ID == "" {
		t.Fatalf("expected a generated ID")
	}
	if ann.VideoID != DefaultVideoID {
		t.Fatalf("videoId = %q, want %q", ann.VideoID, DefaultVideoID)
	}
	if ann.CreatedAt == "" || ann.UpdatedAt != ann.CreatedAt {
		t.Fatalf("timestamps not set: created=%q updated=%q", ann.CreatedAt, ann.UpdatedAt)
	}

	got, err := s.GetByID(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got.StartTime != 5 || got.EndTime != 10 || got.Intent != "Blurry" || got.Text != "hard to read" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFileStore_GetByID_NotFound(t *testing.T) {
	s := newTestFileStore(t)
	_, err := s.GetByID(context.Background(), "ann_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_GetAll_SortByStartTime(t *testing.T) {
	s := newTestFileStore(t)
	mustCreate(t, s, 30, 40, "Blurry", "")
	mustCreate(t, s, 5, 10, "Cannot See", "")
	mustCreate(t, s, 15, 20, "Able to See", "")

	got, err := s.GetAll(context.Background(), Filter{Sort: "startTime"})
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d annotations, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartTime < got[i-1].StartTime {
			t.Fatalf("not ordered by startTime: %v before %v", got[i-1].StartTime, got[i].StartTime)
		}
	}
}

func TestFileStore_GetAll_IntentFilterIgnoresCase(t *testing.T) {
	s := newTestFileStore(t)
	mustCreate(t, s, 5, 10, "Blurry", "")
	mustCreate(t, s, 15, 20, "Cannot See", "")

	got, err := s.GetAll(context.Background(), Filter{Intent: "blurry"})
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(got) != 1 || got[0].Intent != "Blurry" {
		t.Fatalf("intent filter returned %+v, want the single Blurry record", got)
	}
}

func TestFileStore_GetAll_SearchMatchesTextAndIntent(t *testing.T) {
	s := newTestFileStore(t)
	mustCreate(t, s, 5, 10, "Blurry", "speaker off camera")
	mustCreate(t, s, 15, 20, "Cannot See", "")
	mustCreate(t, s, 25, 30, "Able to See", "clear view")

	got, err := s.GetAll(context.Background(), Filter{Search: "CAMERA"})
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "speaker off camera" {
		t.Fatalf("text search returned %+v", got)
	}

	got, err = s.GetAll(context.Background(), Filter{Search: "cannot"})
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(got) != 1 || got[0].Intent != "Cannot See" {
		t.Fatalf("intent search returned %+v", got)
	}
}

func TestFileStore_GetAll_VideoIDFilter(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	if _, err := s.Create(ctx, types.AnnotationInput{
		VideoID: str("a/1"), StartTime: f64(5), EndTime: f64(10), Intent: str("Blurry"),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mustCreate(t, s, 15, 20, "Blurry", "")

	got, err := s.GetAll(ctx, Filter{VideoID: "a/1"})
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(got) != 1 || got[0].VideoID != "a/1" {
		t.Fatalf("videoId filter returned %+v", got)
	}
}

func TestFileStore_Update_MergesPartialInput(t *testing.T) {
	s := newTestFileStore(t)
	ann := mustCreate(t, s, 5, 10, "Blurry", "first pass")

	got, err := s.Update(context.Background(), ann.ID, types.AnnotationInput{
		EndTime: f64(12),
		Text:    str("second pass"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.StartTime != 5 || got.EndTime != 12 || got.Intent != "Blurry" || got.Text != "second pass" {
		t.Fatalf("merged record = %+v", got)
	}
	if got.CreatedAt != ann.CreatedAt {
		t.Fatalf("createdAt changed on update")
	}

	_, err = s.Update(context.Background(), "ann_missing", types.AnnotationInput{Text: str("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestFileStore_Remove(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	ann := mustCreate(t, s, 5, 10, "Blurry", "")

	removed, err := s.Remove(ctx, ann.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !removed {
		t.Fatalf("expected removal to report true")
	}
	if _, err := s.GetByID(ctx, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	removed, err = s.Remove(ctx, ann.ID)
	if err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
	if removed {
		t.Fatalf("expected second removal to report false")
	}
}

func TestFileStore_GetForExport_SortedAndFiltered(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	if _, err := s.Create(ctx, types.AnnotationInput{
		VideoID: str("a/1"), StartTime: f64(30), EndTime: f64(40), Intent: str("Blurry"),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(ctx, types.AnnotationInput{
		VideoID: str("a/1"), StartTime: f64(5), EndTime: f64(10), Intent: str("Cannot See"),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mustCreate(t, s, 0, 1, "Able to See", "")

	got, err := s.GetForExport(ctx, "a/1")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d export rows, want 2", len(got))
	}
	if got[0].StartTime != 5 || got[1].StartTime != 30 {
		t.Fatalf("export not ordered by startTime: %+v", got)
	}

	all, err := s.GetForExport(ctx, "")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("empty videoId should export all rows, got %d", len(all))
	}
}
