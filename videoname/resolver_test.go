package videoname

import (
	"strings"
	"testing"
)

func TestResolve_RemoteURLs(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://host/A/B.mp4", "A/B"},
		{"https://example.com/videos/session1/clip02.mp4", "session1/clip02"},
		{"http://cdn.example.com/deep/nested/path/final.mov", "path/final"},
		{"https://host/single.mp4", "single"},
		{"https://host/A/B", "A/B"},
	}
	for _, tc := range cases {
		if got := Resolve(tc.in); got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve_LocalPaths(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"./videos/C/D.mov", "C/D"},
		{"/data/sessions/E/F.mp4", "E/F"},
		{"file:///mnt/store/G/H.mp4", "G/H"},
		{"../captures/I/J.webm", "I/J"},
	}
	for _, tc := range cases {
		if got := Resolve(tc.in); got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve_UnparseableFallsBackToSanitized(t *testing.T) {
	got := Resolve("not a url at all!")
	if strings.ContainsAny(got, " !") {
		t.Fatalf("Resolve left unsafe characters in %q", got)
	}
	if got != "not_a_url_at_all_" {
		t.Fatalf("Resolve = %q, want sanitized form", got)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	in := "https://host/A/B.mp4"
	if Resolve(in) != Resolve(in) {
		t.Fatalf("Resolve is not deterministic for %q", in)
	}
}

func TestIsLocal(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"file:///x/y.mp4", true},
		{"/abs/path.mp4", true},
		{"./rel/path.mp4", true},
		{"../rel/path.mp4", true},
		{"https://host/a.mp4", false},
		{"s3://bucket/key.mp4", false},
	}
	for _, tc := range cases {
		if got := IsLocal(tc.in); got != tc.want {
			t.Fatalf("IsLocal(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLocalPath_FileScheme(t *testing.T) {
	if got := LocalPath("file:///mnt/store/G/H.mp4"); got != "/mnt/store/G/H.mp4" {
		t.Fatalf("LocalPath = %q, want /mnt/store/G/H.mp4", got)
	}
}
