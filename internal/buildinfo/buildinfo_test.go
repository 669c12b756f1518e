package buildinfo

import "testing"

func TestShortPrefersVersion(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	Version, Commit = "v1.2.3", "abc"
	if got := Short(); got != "v1.2.3" {
		t.Fatalf("expected version, got %q", got)
	}
	Version = "dev"
	if got := Short(); got != "abc" {
		t.Fatalf("expected commit, got %q", got)
	}
	Commit = "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("expected dev, got %q", got)
	}
}
