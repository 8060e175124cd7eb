// Package videoname derives stable identifiers for videos from their
// source URLs or local paths. The derived name is the unique key shared
// by the queue, the timestamp store, and the video cache.
package videoname

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_/-]`)

// IsLocal reports whether the source refers to a file on this machine
// rather than a remote URL.
func IsLocal(source string) bool {
	s := strings.TrimSpace(source)
	return strings.HasPrefix(s, "file://") ||
		filepath.IsAbs(s) ||
		strings.HasPrefix(s, "./") ||
		strings.HasPrefix(s, "../")
}

// LocalPath resolves a local source to a filesystem path.
func LocalPath(source string) string {
	s := strings.TrimSpace(source)
	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil && u.Path != "" {
			return u.Path
		}
		return s[len("file://"):]
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return s
	}
	return abs
}

// Resolve derives the "parent/base" name for a video source. The final
// path segment has its extension stripped and is joined with its parent
// directory segment. Two distinct sources can map to the same name; the
// collision is not detected here.
func Resolve(source string) string {
	s := strings.TrimSpace(source)
	if IsLocal(s) {
		return joinParentBase(splitSegments(LocalPath(s), string(filepath.Separator)))
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return unsafeChars.ReplaceAllString(s, "_")
	}
	return joinParentBase(splitSegments(u.Path, "/"))
}

func splitSegments(p, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(p, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinParentBase(parts []string) string {
	base := "video"
	if len(parts) > 0 {
		base = stripExtension(parts[len(parts)-1])
	}
	if len(parts) > 1 {
		return parts[len(parts)-2] + "/" + base
	}
	return base
}

func stripExtension(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		return name[:len(name)-len(ext)]
	}
	return name
}
