package fatinspect

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/aligator/fatinspect/checkpoint"
)

const (
	bootSectorSize = 90
	fat32Tag       = "FAT32"
)

// ParseBootSector decodes the BPB of a FAT32 boot sector.
// The result is rejected with ErrNotFat32 if the filesystem type does not start
// with "FAT32" or if the geometry would make cluster addressing impossible.
func ParseBootSector(data []byte) (*BootSector, error) {
	if len(data) < bootSectorSize {
		return nil, checkpoint.Reason(ErrIO, "boot sector needs %d bytes, got %d", bootSectorSize, len(data))
	}

	bs := &BootSector{}
	err := binary.Read(bytes.NewReader(data[:bootSectorSize]), binary.LittleEndian, bs)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}

	if string(bs.FileSystemType[:len(fat32Tag)]) != fat32Tag {
		return nil, checkpoint.Reason(ErrNotFat32, "filesystem type %q", string(bs.FileSystemType[:]))
	}

	// Everything below divides or multiplies by these.
	if bs.BytesPerSector == 0 || bs.SectorsPerCluster == 0 || bs.NumFATs == 0 {
		return nil, checkpoint.Reason(ErrNotFat32, "invalid geometry: %d bytes per sector, %d sectors per cluster, %d FATs",
			bs.BytesPerSector, bs.SectorsPerCluster, bs.NumFATs)
	}
	if bs.FATSize32 == 0 {
		return nil, checkpoint.Reason(ErrNotFat32, "invalid geometry: FAT size is 0")
	}
	if bs.RootCluster < 2 {
		return nil, checkpoint.Reason(ErrNotFat32, "invalid root cluster %d", bs.RootCluster)
	}

	return bs, nil
}

func decodeBootSector(reader sectorReader, entry PartitionEntry) (*BootSector, error) {
	data, err := reader.read(entry.StartLBA, 0, SectorSize)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return ParseBootSector(data)
}

// ClusterSize is the size of one cluster in bytes.
func (bs *BootSector) ClusterSize() uint32 {
	return uint32(bs.SectorsPerCluster) * uint32(bs.BytesPerSector)
}

// Label returns the volume label stored in the boot sector without padding.
func (bs *BootSector) Label() string {
	return strings.TrimRight(string(bs.VolumeLabel[:]), " \x00")
}

// FSType returns the filesystem type tag without padding.
func (bs *BootSector) FSType() string {
	return strings.TrimRight(string(bs.FileSystemType[:]), " \x00")
}

// DecodeBootSector reads and decodes the boot sector at the start of the given partition.
func DecodeBootSector(image io.ReadSeeker, entry PartitionEntry) (*BootSector, error) {
	return decodeBootSector(NewSectorReader(image, nil), entry)
}
