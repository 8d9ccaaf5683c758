package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// touch creates an empty file (and its parents) below root.
func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.Png", true},
		{"a.webp", true},
		{"a.gif", false},
		{"a.jpg.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsImage(tt.name); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScan_SortedRecursive(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.jpg", "A.PNG", "sub/c.webp", "sub/deeper/a.jpeg", "notes.txt", "a.jpg")

	got, err := Scan(root, "images/Parfum Homme")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{
		"images/Parfum Homme/A.PNG",
		"images/Parfum Homme/a.jpg",
		"images/Parfum Homme/b.jpg",
		"images/Parfum Homme/sub/c.webp",
		"images/Parfum Homme/sub/deeper/a.jpeg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan =\n%v\nwant\n%v", got, want)
	}
}

func TestScan_EmptyAndMissing(t *testing.T) {
	got, err := Scan(t.TempDir(), "images/x")
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("empty dir: %v, %v", got, err)
	}
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), "images/x"); err == nil {
		t.Error("missing dir should fail")
	}
}

func TestScanAll_FolderFailureIsIsolated(t *testing.T) {
	images := t.TempDir()
	touch(t, images, "Parfum Homme/1.jpg", "Parfum Homme/2.jpg", "skincare/nettoyants/Eaux micellaires/e.png")

	inv, err := NewScanner(images).ScanAll()
	if err == nil || !strings.Contains(err.Error(), "Parfum Femme") {
		t.Fatalf("err = %v, want Parfum Femme failure", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err should wrap ErrNotExist: %v", err)
	}
	perFolder, total := inv.Count()
	if perFolder["Parfum Homme"] != 2 || perFolder["skincare"] != 1 || total != 3 {
		t.Errorf("counts = %v total %d", perFolder, total)
	}
}

func TestEnsureDirectories(t *testing.T) {
	images := t.TempDir()
	if err := EnsureDirectories(images); err != nil {
		t.Fatal(err)
	}
	for _, rel := range []string{
		"Parfum Homme", "Parfum Femme", "skincare", "temp", "custom",
		"skincare/nettoyants/Nettoyants à base d'eau",
		"skincare/traitements/Sérums",
	} {
		if info, err := os.Stat(filepath.Join(images, rel)); err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", rel, err)
		}
	}
	if err := EnsureDirectories(images); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestUploadDir(t *testing.T) {
	tests := []struct {
		name                  string
		category, sub, subSub string
		want                  string
		wantErr               bool
	}{
		{name: "homme", category: "Parfum Homme", want: "Parfum Homme"},
		{name: "femme by id", category: "femme", want: "Parfum Femme"},
		{name: "unknown falls back", category: "bougies", want: "Parfum Homme"},
		{name: "skincare root", category: "skincare", want: "skincare"},
		{name: "skincare sub", category: "skincare", sub: "nettoyants", want: filepath.Join("skincare", "nettoyants")},
		{name: "skincare sub sub", category: "skincare", sub: "traitements", subSub: "Sérums", want: filepath.Join("skincare", "traitements", "Sérums")},
		{name: "subfolder ignored for perfume", category: "Parfum Femme", sub: "x", want: "Parfum Femme"},
		{name: "traversal", category: "skincare", sub: "..", wantErr: true},
		{name: "separator", category: "skincare", sub: "a", subSub: "../../etc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UploadDir(tt.category, tt.sub, tt.subSub)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFolder) {
					t.Fatalf("err = %v, want ErrInvalidFolder", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("UploadDir = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifySkincare(t *testing.T) {
	tests := []struct {
		path       string
		sub, other string
	}{
		{"images/skincare/nettoyants/Eaux micellaires/e.png", "nettoyants", "Eaux micellaires"},
		{"images/skincare/traitements/Sérums/deep/s.jpg", "traitements", "Sérums"},
		{"images/skincare/nettoyants/n.jpg", "nettoyants", ""},
		{"images/skincare/top.jpg", DefaultSkincareSubcategory, ""},
	}
	for _, tt := range tests {
		sub, subSub := ClassifySkincare(tt.path)
		if sub != tt.sub || subSub != tt.other {
			t.Errorf("ClassifySkincare(%q) = %q, %q; want %q, %q", tt.path, sub, subSub, tt.sub, tt.other)
		}
	}
}
