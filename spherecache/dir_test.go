package spherecache

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDirStoreRoundTrip(t *testing.T) {
	store, err := NewDirStoreNotBefore(filepath.Join(t.TempDir(), "cache"), time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of missing key: err = %v, want ErrNotFound", err)
	}

	if err := store.Store("k", []byte{4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	data, err := store.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(data, []byte{4, 5, 6}) {
		t.Errorf("Load = %v, want [4 5 6]", data)
	}
}

func TestDirStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "cache")
	if _, err := NewDirStoreNotBefore(dir, time.Time{}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("cache directory not created: %v", err)
	}
}

func TestDirStoreStaleness(t *testing.T) {
	// Entries written before the reference time are rejected as stale;
	// they may come from an incompatible build of the index builder.
	dir := t.TempDir()

	fresh, err := NewDirStoreNotBefore(dir, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if err := fresh.Store("k", []byte{1}); err != nil {
		t.Fatal(err)
	}

	guarded, err := NewDirStoreNotBefore(dir, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := guarded.Load("k"); !errors.Is(err, ErrStale) {
		t.Errorf("Load of stale entry: err = %v, want ErrStale", err)
	}

	// With a reference time in the past the same entry loads fine.
	accepting, err := NewDirStoreNotBefore(dir, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := accepting.Load("k"); err != nil {
		t.Errorf("Load of fresh entry: %v", err)
	}
}

func TestDirStorePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStoreNotBefore(dir, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "samplingIndices_w8_h4_cu6_sw2_sh2_eqrc")
	if got := store.Path("samplingIndices_w8_h4_cu6_sw2_sh2_eqrc"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if store.Dir() != dir {
		t.Errorf("Dir = %q, want %q", store.Dir(), dir)
	}
}
