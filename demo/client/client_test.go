package client

import "testing"

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("CLIPLABEL_TEST_KEY", "")
	if got := GetEnvOrDefault("CLIPLABEL_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("unset key = %q, want fallback", got)
	}

	t.Setenv("CLIPLABEL_TEST_KEY", "http://example:9999")
	if got := GetEnvOrDefault("CLIPLABEL_TEST_KEY", "fallback"); got != "http://example:9999" {
		t.Fatalf("set key = %q, want env value", got)
	}
}
