package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/spf13/afero"
)

// NewOS returns the OS-backed filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// DirExists reports whether path exists and is a directory
func DirExists(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}

// WriteFileAtomic writes data to name through a temp file in the same
// directory. The parent directory must exist.
func WriteFileAtomic(fsys afero.Fs, name string, data []byte, perm os.FileMode) error {
	tmp, err := createTemp(fsys, name)
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		discard(fsys, tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", name)
	}

	return commit(fsys, tmp, name, perm)
}

// CopyFileAtomic copies src to dst byte for byte, replacing dst if it
// exists. It returns the number of bytes copied. Cancelling ctx before the
// final rename leaves dst untouched.
func CopyFileAtomic(ctx context.Context, fsys afero.Fs, src, dst string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, errors.ErrCopyCanceled, "copy canceled before start")
	}

	in, err := fsys.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrapf(err, errors.ErrFileNotFound, "source not found: %s", src).
				WithDetail("source", src)
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to open source: %s", src).
			WithDetail("source", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat source: %s", src)
	}
	if info.IsDir() {
		return 0, errors.Newf(errors.ErrInvalidInput, "source is a directory: %s", src).
			WithDetail("source", src)
	}

	tmp, err := createTemp(fsys, dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(tmp, &contextReader{ctx: ctx, r: in})
	if err != nil {
		discard(fsys, tmp)
		if ctx.Err() != nil {
			return 0, errors.Wrap(err, errors.ErrCopyCanceled, "copy canceled")
		}
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s to %s", src, dst)
	}

	if err := ctx.Err(); err != nil {
		discard(fsys, tmp)
		return 0, errors.Wrap(err, errors.ErrCopyCanceled, "copy canceled before rename")
	}

	if err := commit(fsys, tmp, dst, info.Mode().Perm()); err != nil {
		return 0, err
	}
	return n, nil
}

// createTemp opens a temp file beside target. A missing parent directory is
// reported as ErrFileCreate on every backend, including in-memory ones that
// would otherwise create it implicitly.
func createTemp(fsys afero.Fs, target string) (afero.File, error) {
	dir := filepath.Dir(target)
	if !DirExists(fsys, dir) {
		return nil, errors.Newf(errors.ErrFileCreate, "destination directory does not exist: %s", dir).
			WithDetail("path", target)
	}

	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to create temp file in %s", dir).
			WithDetail("path", target)
	}
	return tmp, nil
}

func commit(fsys afero.Fs, tmp afero.File, target string, perm os.FileMode) error {
	if err := tmp.Sync(); err != nil {
		discard(fsys, tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to sync %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", tmp.Name())
	}
	if err := fsys.Chmod(tmp.Name(), perm); err != nil {
		_ = fsys.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", tmp.Name())
	}
	if err := fsys.Rename(tmp.Name(), target); err != nil {
		_ = fsys.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move file into place: %s", target).
			WithDetail("path", target)
	}
	return nil
}

func discard(fsys afero.Fs, tmp afero.File) {
	_ = tmp.Close()
	_ = fsys.Remove(tmp.Name())
}

// contextReader stops a copy once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
