package queue

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cliplabel/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewFileRecord(filepath.Join(t.TempDir(), "queue.json")))
}

func TestGet_EmptyQueueWhenNoneExists(t *testing.T) {
	s := newTestStore(t)
	q, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if q.CurrentIndex != 0 || len(q.Videos) != 0 {
		t.Fatalf("got %+v, want empty queue", q)
	}
}

func TestSet_RejectsEmptyList(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Set(context.Background(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSet_FirstInProgressRestPending(t *testing.T) {
	s := newTestStore(t)
	q, err := s.Set(context.Background(), []string{
		"https://host/A/B.mp4",
		"https://host/C/D.mp4",
	})
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if len(q.Videos) != 2 {
		t.Fatalf("queue length = %d, want 2", len(q.Videos))
	}
	if q.Videos[0].Status != types.StatusInProgress {
		t.Fatalf("first status = %q, want in_progress", q.Videos[0].Status)
	}
	if q.Videos[1].Status != types.StatusPending {
		t.Fatalf("second status = %q, want pending", q.Videos[1].Status)
	}
	if q.Videos[0].Name != "A/B" || q.Videos[1].Name != "C/D" {
		t.Fatalf("names = %q, %q; want A/B, C/D", q.Videos[0].Name, q.Videos[1].Name)
	}
	if q.CurrentIndex != 0 {
		t.Fatalf("currentIndex = %d, want 0", q.CurrentIndex)
	}
}

func TestSetCurrent_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://host/a/b.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	for _, idx := range []int{-1, 1, 99} {
		if _, err := s.SetCurrent(ctx, idx); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("SetCurrent(%d): expected ErrOutOfRange, got %v", idx, err)
		}
	}
}

func TestSetCurrent_MarksEarlierCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	urls := []string{"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/3.mp4"}
	if _, err := s.Set(ctx, urls); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	q, err := s.SetCurrent(ctx, 2)
	if err != nil {
		t.Fatalf("set current failed: %v", err)
	}
	if q.CurrentIndex != 2 {
		t.Fatalf("currentIndex = %d, want 2", q.CurrentIndex)
	}
	if q.Videos[0].Status != types.StatusCompleted || q.Videos[1].Status != types.StatusCompleted {
		t.Fatalf("earlier videos not completed: %+v", q.Videos)
	}
	if q.Videos[2].Status != types.StatusInProgress {
		t.Fatalf("target status = %q, want in_progress", q.Videos[2].Status)
	}
}

// Jumping backward still marks intervening videos completed. The
// behavior is deliberate; this test pins it down so any future change
// is an explicit one.
func TestSetCurrent_BackwardJumpStillCompletesEarlier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	urls := []string{"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/3.mp4"}
	if _, err := s.Set(ctx, urls); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := s.SetCurrent(ctx, 2); err != nil {
		t.Fatalf("forward jump failed: %v", err)
	}
	q, err := s.SetCurrent(ctx, 1)
	if err != nil {
		t.Fatalf("backward jump failed: %v", err)
	}
	if q.CurrentIndex != 1 {
		t.Fatalf("currentIndex = %d, want 1", q.CurrentIndex)
	}
	// Video 1 was completed by the forward jump and stays completed.
	if q.Videos[1].Status != types.StatusCompleted {
		t.Fatalf("video 1 status = %q, want completed", q.Videos[1].Status)
	}
	if q.Videos[0].Status != types.StatusCompleted {
		t.Fatalf("video 0 status = %q, want completed", q.Videos[0].Status)
	}
}

func TestCompleteCurrent_AdvancesPointer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	urls := []string{"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/3.mp4"}
	if _, err := s.Set(ctx, urls); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	q, err := s.CompleteCurrent(ctx, 0)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if q.Videos[0].Status != types.StatusCompleted {
		t.Fatalf("completed video status = %q", q.Videos[0].Status)
	}
	if q.CurrentIndex != 1 {
		t.Fatalf("currentIndex = %d, want 1", q.CurrentIndex)
	}
	if q.Videos[1].Status != types.StatusInProgress {
		t.Fatalf("next status = %q, want in_progress", q.Videos[1].Status)
	}
}

func TestCompleteCurrent_LastVideoLeavesPointer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://h/a/1.mp4", "https://h/a/2.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := s.CompleteCurrent(ctx, 0); err != nil {
		t.Fatalf("complete 0 failed: %v", err)
	}
	q, err := s.CompleteCurrent(ctx, 1)
	if err != nil {
		t.Fatalf("complete 1 failed: %v", err)
	}
	if q.CurrentIndex != 1 {
		t.Fatalf("currentIndex = %d, want unchanged 1", q.CurrentIndex)
	}
	if q.Videos[1].Status != types.StatusCompleted {
		t.Fatalf("last video status = %q, want completed", q.Videos[1].Status)
	}
}

func TestCompleteCurrent_NonCurrentIndexDoesNotMovePointer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/3.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	q, err := s.CompleteCurrent(ctx, 2)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if q.CurrentIndex != 0 {
		t.Fatalf("currentIndex = %d, want 0", q.CurrentIndex)
	}
	if q.Videos[2].Status != types.StatusCompleted {
		t.Fatalf("video 2 status = %q, want completed", q.Videos[2].Status)
	}
}

func TestClear_ReplacesWithEmptyQueue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://h/a/1.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	q, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(q.Videos) != 0 || q.CurrentIndex != 0 {
		t.Fatalf("got %+v, want empty queue", q)
	}
}

func TestSyncFromConfig_KeepsStatusAddsAndDrops(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/3.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := s.CompleteCurrent(ctx, 0); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	// Drop a/3, keep a/1 and a/2, add a/4.
	q, changed, err := s.SyncFromConfig(ctx, []string{
		"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/4.mp4",
	})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected sync to report a change")
	}
	if len(q.Videos) != 3 {
		t.Fatalf("queue length = %d, want 3", len(q.Videos))
	}
	if q.Videos[0].Status != types.StatusCompleted {
		t.Fatalf("a/1 status = %q, want completed (preserved)", q.Videos[0].Status)
	}
	if q.Videos[1].Status != types.StatusInProgress {
		t.Fatalf("a/2 status = %q, want in_progress (preserved)", q.Videos[1].Status)
	}
	if q.Videos[2].Name != "a/4" || q.Videos[2].Status != types.StatusPending {
		t.Fatalf("appended video = %+v, want pending a/4", q.Videos[2])
	}
}

func TestSyncFromConfig_UnchangedConfigWritesNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	urls := []string{"https://h/a/1.mp4", "https://h/a/2.mp4"}
	if _, err := s.Set(ctx, urls); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	_, changed, err := s.SyncFromConfig(ctx, urls)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if changed {
		t.Fatalf("expected no change for identical config")
	}
}

func TestSyncFromConfig_PromotesFirstPendingWhenNothingInProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://h/a/1.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := s.CompleteCurrent(ctx, 0); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	q, changed, err := s.SyncFromConfig(ctx, []string{
		"https://h/a/1.mp4", "https://h/b/2.mp4",
	})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change after adding b/2")
	}
	if q.Videos[1].Status != types.StatusInProgress {
		t.Fatalf("new video status = %q, want promoted to in_progress", q.Videos[1].Status)
	}
}

func TestSyncFromConfig_ClampsCurrentIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Set(ctx, []string{"https://h/a/1.mp4", "https://h/a/2.mp4", "https://h/a/3.mp4"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := s.SetCurrent(ctx, 2); err != nil {
		t.Fatalf("set current failed: %v", err)
	}
	q, _, err := s.SyncFromConfig(ctx, []string{"https://h/a/1.mp4"})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if q.CurrentIndex != 0 {
		t.Fatalf("currentIndex = %d, want clamped to 0", q.CurrentIndex)
	}
}
