package editor

import (
	"os"
)

// FileStore is the file system as seen by a buffer.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileStore reads and writes the local file system. Existing files keep
// their permissions; new files are created 0644.
type OSFileStore struct{}

func (OSFileStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileStore) WriteFile(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, data, perm)
}
