package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "zebra.png")
	touch(t, dir, "apple.png")
	touch(t, dir, "middle.PNG") // case-insensitive match
	touch(t, dir, "skip.txt")
	touch(t, dir, "skip.jpeg")
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	sources, err := Scan(dir, "png")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := []string{"apple.png", "middle.PNG", "zebra.png"}
	if len(sources) != len(want) {
		t.Fatalf("got %d sources, want %d", len(sources), len(want))
	}
	for i, w := range want {
		if sources[i].Name != w {
			t.Errorf("sources[%d]: got %q, want %q", i, sources[i].Name, w)
		}
	}

	if sources[1].Stem != "middle" {
		t.Errorf("stem: got %q, want middle", sources[1].Stem)
	}
	if sources[0].Path != filepath.Join(dir, "apple.png") {
		t.Errorf("path: got %q", sources[0].Path)
	}
}

func TestScanAcceptsDottedExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpeg")

	sources, err := Scan(dir, ".JPEG")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent"), "png"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
