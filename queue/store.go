// Package queue persists the ordered list of videos under review and the
// pointer to the active one. A single transition engine operates on a
// Record backend chosen once at process start.
package queue

import (
	"context"
	"errors"
	"strings"

	"cliplabel/types"
	"cliplabel/videoname"
)

var (
	// ErrInvalidInput is returned when a queue replace is attempted with no URLs.
	ErrInvalidInput = errors.New("videos must be a non-empty list of URLs")
	// ErrOutOfRange is returned when an index falls outside the queue bounds.
	ErrOutOfRange = errors.New("index out of range")
)

// Record persists the single queue record for one backend.
type Record interface {
	Read(ctx context.Context) (types.Queue, error)
	Write(ctx context.Context, q types.Queue) error
}

// Store applies queue transitions on top of a Record backend.
type Store struct {
	rec Record
}

// NewStore wraps a record backend.
func NewStore(rec Record) *Store {
	return &Store{rec: rec}
}

// Get returns the current queue, or an empty one when none exists yet.
func (s *Store) Get(ctx context.Context) (types.Queue, error) {
	return s.rec.Read(ctx)
}

// Set fully replaces the queue from an ordered URL list. The first video
// becomes in_progress, the rest pending, and the pointer resets to zero.
func (s *Store) Set(ctx context.Context, urls []string) (types.Queue, error) {
	if len(urls) == 0 {
		return types.Queue{}, ErrInvalidInput
	}
	q := BuildQueue(urls)
	if err := s.rec.Write(ctx, q); err != nil {
		return types.Queue{}, err
	}
	return q, nil
}

// SetCurrent moves the pointer to index. Every earlier video that is not
// already completed is forced to completed and the target is forced to
// in_progress; this applies on backward jumps as well.
func (s *Store) SetCurrent(ctx context.Context, index int) (types.Queue, error) {
	q, err := s.rec.Read(ctx)
	if err != nil {
		return types.Queue{}, err
	}
	if index < 0 || index >= len(q.Videos) {
		return types.Queue{}, ErrOutOfRange
	}
	applyCurrent(&q, index)
	if err := s.rec.Write(ctx, q); err != nil {
		return types.Queue{}, err
	}
	return q, nil
}

// CompleteCurrent marks the video at index completed. When index is the
// active pointer and a next video exists, the pointer advances and the
// next video becomes in_progress. Completing the last video leaves the
// pointer in place.
func (s *Store) CompleteCurrent(ctx context.Context, index int) (types.Queue, error) {
	q, err := s.rec.Read(ctx)
	if err != nil {
		return types.Queue{}, err
	}
	if index < 0 || index >= len(q.Videos) {
		return types.Queue{}, ErrOutOfRange
	}
	q.Videos[index].Status = types.StatusCompleted
	if index == q.CurrentIndex && index < len(q.Videos)-1 {
		q.CurrentIndex = index + 1
		q.Videos[index+1].Status = types.StatusInProgress
	}
	if err := s.rec.Write(ctx, q); err != nil {
		return types.Queue{}, err
	}
	return q, nil
}

// Clear replaces the queue with an empty one.
func (s *Store) Clear(ctx context.Context) (types.Queue, error) {
	q := types.EmptyQueue()
	if err := s.rec.Write(ctx, q); err != nil {
		return types.Queue{}, err
	}
	return q, nil
}

// SyncFromConfig reconciles the persisted queue against the operator's
// configured URL list. Videos whose name survives keep their status, new
// names append as pending, missing names drop, and the first pending
// video is promoted when nothing is in_progress. Runs once at startup.
func (s *Store) SyncFromConfig(ctx context.Context, urls []string) (types.Queue, bool, error) {
	existing, err := s.rec.Read(ctx)
	if err != nil {
		return types.Queue{}, false, err
	}
	merged, changed := MergeConfig(existing, urls)
	if !changed {
		return existing, false, nil
	}
	if err := s.rec.Write(ctx, merged); err != nil {
		return types.Queue{}, false, err
	}
	return merged, true, nil
}

// BuildQueue constructs a fresh queue from URLs, resolving names.
func BuildQueue(urls []string) types.Queue {
	videos := make([]types.VideoDescriptor, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		videos = append(videos, types.VideoDescriptor{
			URL:    u,
			Name:   videoname.Resolve(u),
			Status: types.StatusPending,
		})
	}
	if len(videos) > 0 {
		videos[0].Status = types.StatusInProgress
	}
	return types.Queue{CurrentIndex: 0, Videos: videos}
}

// applyCurrent holds the forward-biased pointer move in one place so a
// future change to the backward-jump behavior stays local.
func applyCurrent(q *types.Queue, index int) {
	q.CurrentIndex = index
	for i := range q.Videos {
		if i < index && q.Videos[i].Status != types.StatusCompleted {
			q.Videos[i].Status = types.StatusCompleted
		}
		if i == index && q.Videos[i].Status != types.StatusCompleted {
			q.Videos[i].Status = types.StatusInProgress
		}
	}
}

// MergeConfig diffs a persisted queue against configured URLs by name
// set. The second return reports whether anything changed.
func MergeConfig(existing types.Queue, urls []string) (types.Queue, bool) {
	type entry struct{ url, name string }
	config := make([]entry, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		config = append(config, entry{url: u, name: videoname.Resolve(u)})
	}

	existingByName := make(map[string]types.VideoDescriptor, len(existing.Videos))
	for _, v := range existing.Videos {
		existingByName[v.Name] = v
	}
	configNames := make(map[string]bool, len(config))
	for _, c := range config {
		configNames[c.name] = true
	}

	added := 0
	for _, c := range config {
		if _, ok := existingByName[c.name]; !ok {
			added++
		}
	}
	removed := 0
	for _, v := range existing.Videos {
		if !configNames[v.Name] {
			removed++
		}
	}
	if added == 0 && removed == 0 {
		return existing, false
	}

	merged := make([]types.VideoDescriptor, 0, len(config))
	for _, c := range config {
		if v, ok := existingByName[c.name]; ok {
			merged = append(merged, v)
		} else {
			merged = append(merged, types.VideoDescriptor{URL: c.url, Name: c.name, Status: types.StatusPending})
		}
	}

	inProgress := false
	for _, v := range merged {
		if v.Status == types.StatusInProgress {
			inProgress = true
			break
		}
	}
	if len(merged) > 0 && !inProgress {
		for i := range merged {
			if merged[i].Status == types.StatusPending {
				merged[i].Status = types.StatusInProgress
				break
			}
		}
	}

	idx := existing.CurrentIndex
	if max := len(merged) - 1; idx > max {
		idx = max
	}
	if idx < 0 {
		idx = 0
	}
	return types.Queue{CurrentIndex: idx, Videos: merged}, true
}
