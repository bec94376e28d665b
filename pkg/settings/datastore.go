package settings

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/filesystem"
	"github.com/spf13/afero"
)

// DataStore is the opaque load/save surface the settings record is kept in
type DataStore interface {
	// Read returns the persisted bytes; false means nothing was saved yet
	Read() ([]byte, bool, error)
	Write(data []byte) error
	Location() string
}

// FileDataStore keeps the record in a single file
type FileDataStore struct {
	fs   afero.Fs
	path string
}

// NewFileDataStore returns a store for the file at path
func NewFileDataStore(fs afero.Fs, path string) *FileDataStore {
	return &FileDataStore{fs: fs, path: path}
}

func (d *FileDataStore) Location() string { return d.path }

func (d *FileDataStore) Read() ([]byte, bool, error) {
	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read settings from %s", d.path)
	}
	return data, true, nil
}

// Write replaces the file atomically, creating its directory first. The
// record holds the access key, so the file is private to the user.
func (d *FileDataStore) Write(data []byte) error {
	dir := filepath.Dir(d.path)
	if err := d.fs.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create settings directory %s", dir)
	}
	if err := filesystem.WriteFileAtomic(d.fs, d.path, data, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to save settings to %s", d.path)
	}
	return nil
}
