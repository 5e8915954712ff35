package fatinspect

import (
	"io"

	"github.com/aligator/fatinspect/checkpoint"
	"go.uber.org/zap"
)

// Option configures OpenImage and New.
type Option func(*options)

type options struct {
	log *zap.SugaredLogger
}

// WithLogger sets the logger used for debug output and corruption warnings.
// Without it nothing is logged.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Image is a raw disk image with a master boot record.
type Image struct {
	reader sectorReader
	mbr    *MasterBootRecord
	log    *zap.SugaredLogger
}

// OpenImage decodes the master boot record of the image.
func OpenImage(image io.ReadSeeker, opts ...Option) (*Image, error) {
	o := newOptions(opts)
	return openImage(NewSectorReader(image, o.log), o.log)
}

func openImage(reader sectorReader, log *zap.SugaredLogger) (*Image, error) {
	mbr, err := decodeMBR(reader)
	if err != nil {
		return nil, err
	}

	log.Infow("opened image", "fat32Partitions", len(mbr.FAT32Partitions()))
	return &Image{reader: reader, mbr: mbr, log: log}, nil
}

// MBR returns the decoded master boot record.
func (img *Image) MBR() *MasterBootRecord {
	return img.mbr
}

// FAT32Partitions returns the partition table entries of type 0x0C.
func (img *Image) FAT32Partitions() []NumberedPartition {
	return img.mbr.FAT32Partitions()
}

// OpenPartition opens the partition at the given 0-based index of the
// partition table. The entry is opened regardless of its type, so the
// boot sector decides if it is FAT32.
func (img *Image) OpenPartition(index int) (*Fs, error) {
	entry, err := img.mbr.Partition(index)
	if err != nil {
		return nil, err
	}

	fs, err := newFs(img.reader, entry, img.log.With("partition", index+1))
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return fs, nil
}
