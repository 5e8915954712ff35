package fatinspect

import "errors"

// Errors returned while decoding an image. Fatal ones abort the run, see the
// individual descriptions.
var (
	// ErrIO is a seek or read failure on the image, including reads past its end.
	ErrIO = errors.New("could not read the image")
	// ErrBadSignature means the master boot record does not end with 0xAA55.
	ErrBadSignature = errors.New("wrong master boot record signature")
	// ErrNotFat32 rejects a partition whose boot sector is not a usable FAT32 BPB.
	ErrNotFat32 = errors.New("partition is not properly FAT32 formatted")
	// ErrInvalidPartition is a partition number outside of the partition table.
	ErrInvalidPartition = errors.New("invalid partition number")
	// ErrInvalidPathSyntax is returned for non-absolute paths, trailing slashes
	// and segments longer than a short name.
	ErrInvalidPathSyntax = errors.New("invalid path")
	// ErrPathNotFound means the traversal finished without a matching file.
	ErrPathNotFound = errors.New("specified path does not exist")
	// ErrCorruptChain marks a truncated cluster chain or a directory cycle.
	// It is collected as a warning and never aborts a traversal.
	ErrCorruptChain = errors.New("corrupt cluster chain")
	// ErrReadOnly is returned by every mutating filesystem operation.
	ErrReadOnly = errors.New("the filesystem is read only")
)

// These errors may occur while processing a file through the afero surface.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)
