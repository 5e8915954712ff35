// File model contains the structs which match the on-disk structures of the
// MBR and of a FAT32 volume. They are decoded with encoding/binary in little
// endian, field by field, so their layout must not be changed.

package fatinspect

const (
	// SectorSize is the fixed addressing unit of the image.
	SectorSize = 512

	// PartitionTypeFAT32LBA is the only MBR system id accepted for inspection.
	PartitionTypeFAT32LBA = 0x0C

	partitionCount = 4
	mbrSignature   = 0xAA55
	dirEntrySize   = 32
	shortNameLen   = 8
)

// Directory entry attribute bits.
const (
	AttrReadOnly  = 0x01
	AttrHidden    = 0x02
	AttrSystem    = 0x04
	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
)

// Special values of the first name byte of a directory entry.
const (
	entryEnd     = 0x00
	entryDeleted = 0xE5
	entryKanji   = 0x05 // first character really is 0xE5
)

// PartitionEntry is one of the four 16 byte entries of the MBR partition table.
type PartitionEntry struct {
	BootIndicator byte
	StartHead     byte
	StartSector   byte // Bits 6-7 are the upper two bits of StartCylinder.
	StartCylinder byte
	SystemID      byte
	EndHead       byte
	EndSector     byte // Bits 6-7 are the upper two bits of EndCylinder.
	EndCylinder   byte
	StartLBA      uint32
	TotalSectors  uint32
}

// MasterBootRecord is the first sector of the image.
type MasterBootRecord struct {
	BootstrapCode  [446]byte
	PartitionTable [partitionCount]PartitionEntry
	Signature      uint16
}

// BootSector is the FAT32 BIOS Parameter Block at the start of a partition.
// Only the first 90 bytes of the sector are decoded.
type BootSector struct {
	JumpBoot            [3]byte
	OEMName             [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   byte
	ReservedSectorCount uint16
	NumFATs             byte
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               byte
	FATSize16           uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectors       uint32
	TotalSectors32      uint32
	FATSize32           uint32
	ExtFlags            uint16
	FSVersion           uint16
	RootCluster         uint32
	FSInfo              uint16
	BkBootSector        uint16
	Reserved            [12]byte
	DriveNumber         byte
	Reserved1           byte
	BootSignature       byte
	VolumeID            uint32
	VolumeLabel         [11]byte
	FileSystemType      [8]byte
}

// EntryHeader is a raw 32 byte short name directory record.
type EntryHeader struct {
	Name            [8]byte
	Extension       [3]byte
	Attribute       byte
	NTReserved      byte
	CreateTimeTenth byte
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	FirstClusterHI  uint16
	WriteTime       uint16
	WriteDate       uint16
	FirstClusterLO  uint16
	FileSize        uint32
}
