package fatinspect

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aligator/fatinspect/checkpoint"
)

// NumberedPartition is a partition table entry together with its 1-based
// position in the table.
type NumberedPartition struct {
	Number int
	PartitionEntry
}

// ParseMBR decodes the 512 bytes of a master boot record.
// It fails with ErrBadSignature if the record does not end with 0x55 0xAA.
func ParseMBR(data []byte) (*MasterBootRecord, error) {
	if len(data) < SectorSize {
		return nil, checkpoint.Reason(ErrIO, "master boot record needs %d bytes, got %d", SectorSize, len(data))
	}

	mbr := &MasterBootRecord{}
	err := binary.Read(bytes.NewReader(data[:SectorSize]), binary.LittleEndian, mbr)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}

	if mbr.Signature != mbrSignature {
		return nil, checkpoint.Reason(ErrBadSignature, "found 0x%04X", mbr.Signature)
	}

	return mbr, nil
}

// DecodeMBR reads and decodes the master boot record in the first sector of the image.
func DecodeMBR(image io.ReadSeeker) (*MasterBootRecord, error) {
	return decodeMBR(NewSectorReader(image, nil))
}

func decodeMBR(reader sectorReader) (*MasterBootRecord, error) {
	data, err := reader.read(0, 0, SectorSize)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return ParseMBR(data)
}

// FAT32Partitions returns the entries marked as FAT32 with LBA addressing (0x0C).
// Other entries are never valid input for the rest of the pipeline.
func (m *MasterBootRecord) FAT32Partitions() []NumberedPartition {
	var result []NumberedPartition
	for i, entry := range m.PartitionTable {
		if entry.IsFAT32LBA() {
			result = append(result, NumberedPartition{Number: i + 1, PartitionEntry: entry})
		}
	}
	return result
}

// Partition returns the entry at the given 0-based index.
func (m *MasterBootRecord) Partition(index int) (PartitionEntry, error) {
	if index < 0 || index >= partitionCount {
		return PartitionEntry{}, checkpoint.Reason(ErrInvalidPartition, "partition %d, the table has %d entries", index+1, partitionCount)
	}
	return m.PartitionTable[index], nil
}

// IsFAT32LBA reports whether the entry is a FAT32 partition with LBA addressing.
func (p PartitionEntry) IsFAT32LBA() bool {
	return p.SystemID == PartitionTypeFAT32LBA
}

// StartSectorCHS returns the sector part of the CHS start address.
func (p PartitionEntry) StartSectorCHS() uint8 {
	return p.StartSector & 0x3F
}

// EndSectorCHS returns the sector part of the CHS end address.
func (p PartitionEntry) EndSectorCHS() uint8 {
	return p.EndSector & 0x3F
}

// StartByte is the absolute byte offset of the partition.
func (p PartitionEntry) StartByte() uint64 {
	return uint64(p.StartLBA) * SectorSize
}

// SizeBytes is the size of the partition in bytes.
func (p PartitionEntry) SizeBytes() uint64 {
	return uint64(p.TotalSectors) * SectorSize
}

// EndByte is the absolute offset of the last byte of the partition.
func (p PartitionEntry) EndByte() uint64 {
	if p.TotalSectors == 0 {
		return p.StartByte()
	}
	return p.StartByte() + p.SizeBytes() - 1
}

func (p PartitionEntry) String() string {
	return fmt.Sprintf("type 0x%02x, start LBA %d, %d sectors", p.SystemID, p.StartLBA, p.TotalSectors)
}
