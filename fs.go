package fatinspect

import (
	"io"

	"github.com/aligator/fatinspect/checkpoint"
	"go.uber.org/zap"
)

// Fs is an opened FAT32 partition of an image.
//
// It reads everything on demand: cluster chains and directories are
// re-read from the image on every call and nothing is cached. An Fs is not
// safe for concurrent use as all reads share the position of one image.
type Fs struct {
	reader sectorReader
	entry  PartitionEntry
	bs     BootSector
	log    *zap.SugaredLogger

	warnings []error
}

// New opens the FAT32 partition described by entry.
// It fails with ErrNotFat32 if the boot sector of the partition is not FAT32.
func New(image io.ReadSeeker, entry PartitionEntry, opts ...Option) (*Fs, error) {
	o := newOptions(opts)
	return newFs(NewSectorReader(image, o.log), entry, o.log)
}

func newFs(reader sectorReader, entry PartitionEntry, log *zap.SugaredLogger) (*Fs, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	bs, err := decodeBootSector(reader, entry)
	if err != nil {
		return nil, err
	}

	// Sector addresses are always computed with 512 bytes per sector.
	if bs.BytesPerSector != SectorSize {
		log.Warnw("boot sector uses an unusual sector size, addresses may be wrong",
			"bytesPerSector", bs.BytesPerSector)
	}

	log.Debugw("opened FAT32 partition",
		"startLBA", entry.StartLBA,
		"label", bs.Label(),
		"clusterSize", bs.ClusterSize(),
		"rootCluster", bs.RootCluster)

	return &Fs{
		reader: reader,
		entry:  entry,
		bs:     *bs,
		log:    log,
	}, nil
}

// BootSector returns the decoded boot sector of the partition.
func (fs *Fs) BootSector() BootSector {
	return fs.bs
}

// Partition returns the partition table entry the Fs was opened from.
func (fs *Fs) Partition() PartitionEntry {
	return fs.entry
}

// Warnings returns every ErrCorruptChain condition met so far.
func (fs *Fs) Warnings() []error {
	return append([]error(nil), fs.warnings...)
}

func (fs *Fs) warn(err error) {
	fs.warnings = append(fs.warnings, err)
	fs.log.Warn(err.Error())
}

// FirstDataSector is the absolute sector of cluster 2.
func (fs *Fs) FirstDataSector() uint32 {
	return fs.entry.StartLBA + uint32(fs.bs.ReservedSectorCount) + uint32(fs.bs.NumFATs)*fs.bs.FATSize32
}

// clusterToSector returns the absolute sector of a data cluster.
// The cluster must be at least 2, which walkChain guarantees.
func (fs *Fs) clusterToSector(cluster uint32) uint32 {
	return fs.FirstDataSector() + (cluster-2)*uint32(fs.bs.SectorsPerCluster)
}

// fatEntryLocation returns where the FAT entry of a cluster is stored in the first FAT.
func (fs *Fs) fatEntryLocation(cluster uint32) (sector uint32, offset uint32) {
	fatOffset := cluster * 4
	bytesPerSector := uint32(fs.bs.BytesPerSector)

	sector = fs.entry.StartLBA + uint32(fs.bs.ReservedSectorCount) + fatOffset/bytesPerSector
	offset = fatOffset % bytesPerSector
	return sector, offset
}

// readCluster reads the whole payload of one cluster.
func (fs *Fs) readCluster(cluster uint32) ([]byte, error) {
	data, err := fs.reader.read(fs.clusterToSector(cluster), 0, fs.bs.ClusterSize())
	return data, checkpoint.From(err)
}
