package save

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStoreUpdateGet(t *testing.T) {
	s := NewMemoryStore()

	st := s.Get()
	if st.DistanceMode != "near" {
		t.Errorf("expected default mode near, got %q", st.DistanceMode)
	}

	s.Update(func(st *State) {
		st.Camera = Position{X: 1, Y: 2, Z: 3}
		st.DistanceMode = "far"
	})

	st = s.Get()
	if st.Camera.X != 1 || st.Camera.Y != 2 || st.Camera.Z != 3 {
		t.Errorf("unexpected position %+v", st.Camera)
	}
	if st.DistanceMode != "far" {
		t.Errorf("expected mode far, got %q", st.DistanceMode)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s := NewFileStore(path)
	s.Update(func(st *State) {
		st.Camera = Position{X: 10, Y: 20, Z: 30}
		st.DistanceMode = "at"
	})
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	loaded := NewFileStore(path)
	st := loaded.Get()
	if st.Camera != (Position{X: 10, Y: 20, Z: 30}) {
		t.Errorf("unexpected restored position %+v", st.Camera)
	}
	if st.DistanceMode != "at" {
		t.Errorf("expected restored mode at, got %q", st.DistanceMode)
	}
}

func TestFileStoreMissingFileUsesDefaults(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))
	if s.Get().DistanceMode != "near" {
		t.Errorf("expected default mode near, got %q", s.Get().DistanceMode)
	}
}

func TestFileStoreCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path)
	if s.Get().DistanceMode != "near" {
		t.Errorf("expected default mode near for corrupt file, got %q", s.Get().DistanceMode)
	}
}

func TestFileStoreDebouncedFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s := NewFileStore(path, WithFlushInterval(10*time.Millisecond))

	s.Update(func(st *State) { st.DistanceMode = "far" })

	// First update flushes promptly through the pool.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected a background flush to create the file")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}

func TestFileStoreFlushSynchronous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s := NewFileStore(path)

	s.Update(func(st *State) { st.DistanceMode = "at" })
	if err := s.Flush(); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}

	if NewFileStore(path).Get().DistanceMode != "at" {
		t.Error("expected flushed state on disk")
	}
}

func TestFileStoreCloseIdempotent(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.yaml"))
	s.Update(func(st *State) { st.DistanceMode = "far" })

	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
