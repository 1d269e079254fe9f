package buffer

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"
)

// FileSystem is the file access used by LoadFromFile and SaveToFile.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// Open opens the file at path for reading.
	Open(path string) (io.ReadCloser, error)
	// Create creates or truncates the file at path for writing.
	Create(path string) (io.WriteCloser, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open opens a file for reading.
func (OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create creates or truncates a file for writing.
func (OSFS) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// MemFS implements FileSystem in memory.
// It is primarily used for testing.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// Ensure MemFS implements FileSystem.
var _ FileSystem = (*MemFS)(nil)

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// Open opens a file for reading.
func (m *MemFS) Open(filePath string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create creates or truncates a file for writing.
// The content becomes visible when the writer is closed.
func (m *MemFS) Create(filePath string) (io.WriteCloser, error) {
	filePath = path.Clean(filePath)

	m.mu.Lock()
	m.files[filePath] = nil
	m.mu.Unlock()

	return &memWriter{fs: m, path: filePath}, nil
}

// ReadFile returns a copy of the file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	return bytes.Clone(data), nil
}

// WriteFile stores data at path, replacing any existing content.
func (m *MemFS) WriteFile(filePath string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(filePath)] = bytes.Clone(data)
}

type memWriter struct {
	fs     *MemFS
	path   string
	buf    bytes.Buffer
	closed bool
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true
	w.fs.WriteFile(w.path, w.buf.Bytes())
	return nil
}
