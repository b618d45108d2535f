package storage

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type kv interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	Delete(key string) error
}

func stores(t *testing.T) map[string]kv {
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir failed: %v", err)
	}
	return map[string]kv{
		"memory": NewMemory(),
		"dir":    dir,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Load("missing"); ok || err != nil {
				t.Fatalf("Load(missing) = ok %v, err %v", ok, err)
			}
			keys := []string{"sheets", "sheet-data-Sheet 1", "selected-cell-a/b", "zoom"}
			for i, key := range keys {
				if err := s.Save(key, []byte{byte('a' + i)}); err != nil {
					t.Fatalf("Save(%q) failed: %v", key, err)
				}
			}
			for i, key := range keys {
				v, ok, err := s.Load(key)
				if err != nil || !ok {
					t.Fatalf("Load(%q) = ok %v, err %v", key, ok, err)
				}
				if string(v) != string(rune('a'+i)) {
					t.Errorf("Load(%q) = %q", key, v)
				}
			}

			if err := s.Save("zoom", []byte("1.5")); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			if v, _, _ := s.Load("zoom"); string(v) != "1.5" {
				t.Errorf("overwritten value = %q, want 1.5", v)
			}

			if err := s.Delete("zoom"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, ok, _ := s.Load("zoom"); ok {
				t.Error("deleted key still present")
			}
			if err := s.Delete("zoom"); err != nil {
				t.Errorf("Delete of missing key failed: %v", err)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	m.Save("k", buf)
	buf[0] = 'x'

	v, _, _ := m.Load("k")
	if string(v) != "abc" {
		t.Errorf("stored value changed through caller slice: %q", v)
	}
	v[1] = 'y'
	if v2, _, _ := m.Load("k"); string(v2) != "abc" {
		t.Errorf("stored value changed through loaded slice: %q", v2)
	}
}

func TestKeys(t *testing.T) {
	m := NewMemory()
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir failed: %v", err)
	}
	for _, key := range []string{"theme", "sheet-data-My Sheet", "sheets"} {
		m.Save(key, nil)
		dir.Save(key, nil)
	}
	want := []string{"sheet-data-My Sheet", "sheets", "theme"}

	if got := m.Keys(); !slices.Equal(got, want) {
		t.Errorf("Memory.Keys() = %v, want %v", got, want)
	}
	got, err := dir.Keys()
	if err != nil {
		t.Fatalf("Dir.Keys failed: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("Dir.Keys() = %v, want %v", got, want)
	}
}

func TestDirLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	d, err := NewDir(root)
	if err != nil {
		t.Fatalf("NewDir failed: %v", err)
	}
	if d.Root() != root {
		t.Errorf("Root() = %q, want %q", d.Root(), root)
	}
	if err := d.Save("../escape", []byte("x")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	if !slices.Contains(files, "..%2Fescape.dat") {
		t.Errorf("files = %v, want escaped key file", files)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.dat")); err == nil {
		t.Error("key escaped the store directory")
	}
}

func TestDirSharedBetweenHandles(t *testing.T) {
	root := t.TempDir()
	a, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Save("sheets", []byte(`["Sheet1"]`)); err != nil {
		t.Fatal(err)
	}
	v, ok, err := b.Load("sheets")
	if err != nil || !ok || string(v) != `["Sheet1"]` {
		t.Errorf("Load from second handle = %q, %v, %v", v, ok, err)
	}
}
