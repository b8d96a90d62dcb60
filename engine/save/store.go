package save

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"gopkg.in/yaml.v3"
)

// Position is a persisted world-space point.
type Position struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// State is the persisted camera snapshot. The camera position and the
// discrete distance label are saved; transient radius overrides are not.
type State struct {
	Camera       Position `yaml:"camera"`
	DistanceMode string   `yaml:"distance_mode"`
}

// DefaultState returns the state used when nothing has been persisted yet.
//
// Returns:
//   - State: the default snapshot
func DefaultState() State {
	return State{
		Camera:       Position{X: 0, Y: 25, Z: 43.3},
		DistanceMode: "near",
	}
}

// Store holds a draft of the persisted camera state. Update mutates the
// draft; implementations decide when the draft actually reaches disk, so
// callers on the interactive path never block on IO.
type Store interface {
	// Get returns the current draft state.
	//
	// Returns:
	//   - State: a copy of the draft
	Get() State

	// Update applies a mutation to the draft state.
	//
	// Parameters:
	//   - mutate: function applied to the draft under the store's lock
	Update(mutate func(*State))

	// Flush writes the draft synchronously.
	//
	// Returns:
	//   - error: if the write fails
	Flush() error

	// Close flushes any pending draft and releases the store.
	//
	// Returns:
	//   - error: if the final write fails
	Close() error
}

// memoryStore keeps the draft in memory only. Used when no save path is
// configured and by tests.
type memoryStore struct {
	mu    *sync.Mutex
	state State
}

var _ Store = &memoryStore{}

// NewMemoryStore creates a Store that never touches disk.
//
// Returns:
//   - Store: the in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		mu:    &sync.Mutex{},
		state: DefaultState(),
	}
}

func (m *memoryStore) Get() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *memoryStore) Update(mutate func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mutate(&m.state)
}

func (m *memoryStore) Flush() error { return nil }
func (m *memoryStore) Close() error { return nil }

// fileStore persists the draft as YAML. Writes are debounced: Update marks
// the draft dirty and at most one flush per flushInterval is handed to the
// worker pool, keeping the interactive path free of file IO.
type fileStore struct {
	mu   *sync.Mutex
	path string

	state State
	dirty bool

	flushInterval time.Duration
	lastFlush     time.Time

	pool   worker.DynamicWorkerPool
	taskID int
	closed bool
}

var _ Store = &fileStore{}

type FileStoreOption func(*fileStore)

// WithFlushInterval sets the minimum delay between background writes.
//
// Parameters:
//   - interval: minimum time between flushes
//
// Returns:
//   - FileStoreOption: the option to set the flush interval
func WithFlushInterval(interval time.Duration) FileStoreOption {
	return func(f *fileStore) {
		if interval > 0 {
			f.flushInterval = interval
		}
	}
}

// NewFileStore creates a Store backed by a YAML file. An existing file is
// loaded as the initial draft; a missing or unreadable file falls back to
// DefaultState so startup never fails on persistence.
//
// Parameters:
//   - path: file path for the persisted state
//   - options: functional options to configure the store
//
// Returns:
//   - Store: the file-backed store
func NewFileStore(path string, options ...FileStoreOption) Store {
	f := &fileStore{
		mu:            &sync.Mutex{},
		path:          path,
		state:         DefaultState(),
		flushInterval: 2 * time.Second,
		pool:          worker.NewDynamicWorkerPool(1, 16, 1*time.Second),
	}
	for _, option := range options {
		option(f)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		var loaded State
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			log.Printf("failed to parse saved state %s, using defaults: %v", path, err)
		} else {
			if loaded.DistanceMode == "" {
				loaded.DistanceMode = DefaultState().DistanceMode
			}
			f.state = loaded
		}
	} else if !os.IsNotExist(err) {
		log.Printf("failed to read saved state %s, using defaults: %v", path, err)
	}
	return f
}

func (f *fileStore) Get() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fileStore) Update(mutate func(*State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mutate(&f.state)
	f.dirty = true
	f.scheduleFlushLocked()
}

func (f *fileStore) Flush() error {
	f.mu.Lock()
	state := f.state
	f.dirty = false
	f.lastFlush = time.Now()
	f.mu.Unlock()
	return f.write(state)
}

func (f *fileStore) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()
	// A background flush may still be in flight; the final synchronous write
	// wins regardless of ordering because it carries the newest draft.
	return f.Flush()
}

// scheduleFlushLocked hands a write to the worker pool if the debounce
// interval has elapsed. Caller must hold the mutex.
func (f *fileStore) scheduleFlushLocked() {
	if f.closed || time.Since(f.lastFlush) < f.flushInterval {
		return
	}
	f.lastFlush = time.Now()
	state := f.state
	f.dirty = false
	f.taskID++
	f.pool.SubmitTask(worker.Task{
		ID: f.taskID,
		Do: func() (any, error) {
			if err := f.write(state); err != nil {
				log.Printf("failed to save camera state: %v", err)
			}
			return nil, nil
		},
	})
}

func (f *fileStore) write(state State) error {
	data, err := yaml.Marshal(&state)
	if err != nil {
		return fmt.Errorf("failed to encode saved state: %v", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write saved state: %v", err)
	}
	return nil
}
