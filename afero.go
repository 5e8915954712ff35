package fatinspect

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/aligator/fatinspect/checkpoint"
	"github.com/spf13/afero"
)

var _ afero.Fs = (*Fs)(nil)

// readOnlyError is returned by every operation which would modify the image.
func readOnlyError(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: checkpoint.Wrap(syscall.EROFS, ErrReadOnly)}
}

// rootEntry describes the root directory, which has no directory entry on disk.
func (fs *Fs) rootEntry() DirEntry {
	return DirEntry{
		Name:         [8]byte{'/', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
		Extension:    [3]byte{' ', ' ', ' '},
		Attribute:    AttrDirectory,
		FirstCluster: fs.bs.RootCluster,
	}
}

// find resolves a slash separated path by comparing every segment
// case-insensitively with the display names of the entries.
func (fs *Fs) find(name string) (DirEntry, error) {
	clean := path.Clean("/" + filepath.ToSlash(name))
	if clean == "/" {
		return fs.rootEntry(), nil
	}

	current := fs.rootEntry()
	for _, segment := range strings.Split(strings.TrimPrefix(clean, "/"), "/") {
		if !current.IsDir() {
			return DirEntry{}, checkpoint.Wrap(syscall.ENOTDIR, ErrPathNotFound)
		}

		entries, err := fs.readDir(current.FirstCluster)
		if err != nil {
			return DirEntry{}, err
		}

		found := false
		for _, entry := range entries {
			if !entry.IsDot() && strings.EqualFold(entry.DisplayName(), segment) {
				current = entry
				found = true
				break
			}
		}
		if !found {
			return DirEntry{}, checkpoint.Wrap(os.ErrNotExist, ErrPathNotFound)
		}
	}

	return current, nil
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, readOnlyError("create", name)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return readOnlyError("mkdir", name)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return readOnlyError("mkdir", path)
}

// Open opens a file or directory for reading. Names are matched
// case-insensitively against "name.ext".
func (fs *Fs) Open(name string) (afero.File, error) {
	entry, err := fs.find(name)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	return &File{
		fs:           fs,
		path:         name,
		isDirectory:  entry.IsDir(),
		firstCluster: entry.FirstCluster,
		stat:         entry.FileInfo(),
	}, nil
}

// OpenFile is Open for read only flags and fails with syscall.EROFS otherwise.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, readOnlyError("open", name)
	}
	return fs.Open(name)
}

func (fs *Fs) Remove(name string) error {
	return readOnlyError("remove", name)
}

func (fs *Fs) RemoveAll(path string) error {
	return readOnlyError("remove", path)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return readOnlyError("rename", oldname)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	entry, err := fs.find(name)
	if err != nil {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return entry.FileInfo(), nil
}

func (fs *Fs) Name() string {
	return "FAT32"
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return readOnlyError("chmod", name)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return readOnlyError("chown", name)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return readOnlyError("chtimes", name)
}

// NewIOFS exposes the partition as io/fs.FS.
func NewIOFS(fs *Fs) afero.IOFS {
	return afero.NewIOFS(fs)
}
