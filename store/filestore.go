package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"axiapac.com/attendance/attendance"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("snapshot not found")

// FileStore keeps one YAML snapshot per employee in a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (fs *FileStore) path(employeeID int64) string {
	return filepath.Join(fs.Dir, strconv.FormatInt(employeeID, 10)+".yaml")
}

func (fs *FileStore) Load(employeeID int64) (attendance.Snapshot, error) {
	b, err := os.ReadFile(fs.path(employeeID))
	if errors.Is(err, os.ErrNotExist) {
		return attendance.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return attendance.Snapshot{}, fmt.Errorf("failed to read snapshot for employee %d: %w", employeeID, err)
	}

	var snap attendance.Snapshot
	if err := yaml.Unmarshal(b, &snap); err != nil {
		return attendance.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot for employee %d: %w", employeeID, err)
	}
	return snap, nil
}

// Save writes through a temp file so a crash never leaves a half-written snapshot.
func (fs *FileStore) Save(snap attendance.Snapshot) error {
	b, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(fs.Dir, "snapshot-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fs.path(snap.EmployeeID))
}

func (fs *FileStore) Delete(employeeID int64) error {
	err := os.Remove(fs.path(employeeID))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
