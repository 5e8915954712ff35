package fatinspect

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/fatinspect/checkpoint"
	"github.com/spf13/afero"
)

// fatFileFs is the part of Fs a File reads through, mocked in tests:
//
//	mockgen -source=file.go -destination=file_mock.go -package fatinspect
type fatFileFs interface {
	readFileAt(firstCluster uint32, fileSize int64, offset int64, readSize int64) ([]byte, error)
	readDir(cluster uint32) ([]DirEntry, error)
}

// File is an opened file or directory of a partition.
// All write operations fail with syscall.EROFS.
type File struct {
	fs   fatFileFs
	path string

	isDirectory  bool
	firstCluster uint32
	stat         os.FileInfo
	offset       int64
}

func (f *File) Close() error {
	f.fs = nil
	f.path = ""
	f.isDirectory = false
	f.firstCluster = 0
	f.stat = nil
	f.offset = 0

	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if f.stat.Size() <= f.offset {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.firstCluster, f.stat.Size(), f.offset, int64(len(p)))
	copy(p, data)

	// Move on even on errors, a read error still wins over a seek error.
	_, seekErr := f.Seek(int64(len(data)), io.SeekCurrent)

	if err != nil {
		return len(data), checkpoint.Wrap(err, ErrReadFile)
	}

	if seekErr != nil {
		return len(data), checkpoint.Wrap(seekErr, ErrReadFile)
	}

	return len(data), nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if f.stat.Size() <= off {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.firstCluster, f.stat.Size(), off, int64(len(p)))
	copy(p, data)

	if err != nil {
		return len(data), checkpoint.Wrap(err, ErrReadFile)
	}

	// io.ReaderAt requires an error for short reads.
	if len(data) < len(p) {
		return len(data), io.EOF
	}
	return len(data), nil
}

// Seek moves the offset used by Read. ReadAt ignores it.
// An unknown whence fails with syscall.EINVAL, an offset outside of the
// file with afero.ErrOutOfRange.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, readOnlyError("write", f.path)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, readOnlyError("write", f.path)
}

func (f *File) Name() string {
	return f.stat.Name()
}

// Readdir reads the contents of a directory without the "." and ".." entries.
// With count > 0 at most count entries are returned and io.EOF signals that
// nothing is left. Otherwise all remaining entries are returned.
// A File that is not a directory fails with syscall.ENOTDIR.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if !f.isDirectory {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	content, err := f.fs.readDir(f.firstCluster)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	entries := make([]DirEntry, 0, len(content))
	for _, entry := range content {
		if !entry.IsDot() {
			entries = append(entries, entry)
		}
	}

	start := int(f.offset)
	if start > len(entries) {
		start = len(entries)
	}
	remaining := entries[start:]

	if count > 0 {
		if len(remaining) == 0 {
			return nil, io.EOF
		}
		if count < len(remaining) {
			remaining = remaining[:count]
		}
	}
	f.offset += int64(len(remaining))

	result := make([]os.FileInfo, len(remaining))
	for i := range remaining {
		result[i] = remaining[i].FileInfo()
	}

	return result, nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, nil
}

func (f *File) Stat() (os.FileInfo, error) {
	return f.stat, nil
}

// Sync does nothing as nothing is ever written.
func (f *File) Sync() error {
	return nil
}

func (f *File) Truncate(size int64) error {
	return readOnlyError("truncate", f.path)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}
