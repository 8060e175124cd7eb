// Package videocache downloads queued videos into a local cache and
// answers questions about what is cached. Downloads run once at startup
// and are never fatal; a missing video just stays unavailable until the
// operator fixes the source and restarts.
package videocache

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cliplabel/common"
	"cliplabel/types"
	"cliplabel/videoname"
)

// Cache resolves video names to cached files under dir.
type Cache struct {
	dir string
	s3  *common.S3
}

// New creates a cache rooted at dir. s3 may be nil when no s3:// sources
// are configured.
func New(dir string, s3 *common.S3) *Cache {
	return &Cache{dir: dir, s3: s3}
}

// LocalPath returns where the cached bytes for a video name live.
func (c *Cache) LocalPath(videoName string) string {
	return filepath.Join(c.dir, filepath.FromSlash(videoName)+".mp4")
}

// Downloaded reports whether a non-empty cached file exists.
func (c *Cache) Downloaded(videoName string) bool {
	return c.Size(videoName) > 0
}

// Size returns the cached file size in bytes, 0 when absent or empty.
func (c *Cache) Size(videoName string) int64 {
	info, err := os.Stat(c.LocalPath(videoName))
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}

// EnsureAll checks every queued video against the cache and fetches the
// missing ones. Failures are logged and skipped.
func (c *Cache) EnsureAll(ctx context.Context, q types.Queue) {
	if len(q.Videos) == 0 {
		return
	}
	log.Printf("Checking %d videos for local cache...", len(q.Videos))
	remoteFailed := false
	for _, v := range q.Videos {
		dest := c.LocalPath(v.Name)
		if c.Downloaded(v.Name) {
			log.Printf("  cached: %s (%.1f MB)", v.Name, float64(c.Size(v.Name))/1024/1024)
			continue
		}
		if err := c.fetch(ctx, v.URL, dest); err != nil {
			log.Printf("  failed: %s: %v", v.Name, err)
			if !videoname.IsLocal(v.URL) {
				remoteFailed = true
			}
			continue
		}
		log.Printf("  fetched: %s (%.1f MB)", v.Name, float64(c.Size(v.Name))/1024/1024)
	}
	log.Printf("Video download check complete.")
	if remoteFailed {
		log.Printf("Tip: use local paths in videos.json if the remote host is unreachable, or drop .mp4 files into the cache directory under the names the queue expects.")
	}
}

func (c *Cache) fetch(ctx context.Context, source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	switch {
	case videoname.IsLocal(source):
		return c.copyLocal(videoname.LocalPath(source), dest)
	case strings.HasPrefix(source, "s3://"):
		return c.fetchS3(ctx, source, dest)
	default:
		return c.download(ctx, source, dest)
	}
}

func (c *Cache) copyLocal(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open local source: %w", err)
	}
	defer in.Close()
	return writeTo(dest, in)
}

func (c *Cache) download(ctx context.Context, rawURL, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: HTTP %d", rawURL, resp.StatusCode)
	}
	return writeTo(dest, resp.Body)
}

func (c *Cache) fetchS3(ctx context.Context, rawURL, dest string) error {
	if c.s3 == nil {
		return fmt.Errorf("s3 source %s but no S3 client configured", rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse s3 url %s: %w", rawURL, err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return fmt.Errorf("s3 url %s missing bucket or key", rawURL)
	}
	ok, err := c.s3.Exists(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("check s3://%s/%s: %w", bucket, key, err)
	}
	if !ok {
		return fmt.Errorf("s3://%s/%s does not exist", bucket, key)
	}
	body, err := c.s3.Get(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer body.Close()
	return writeTo(dest, body)
}

// writeTo streams into dest, removing partial files on failure.
func writeTo(dest string, r io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("close cache file: %w", err)
	}
	return nil
}
