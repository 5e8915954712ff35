package fatinspect

import (
	"fmt"
	"time"
)

// PartitionSummary is the printable form of a FAT32 partition table entry.
type PartitionSummary struct {
	Number       int    `json:"number" yaml:"number"`
	SystemID     string `json:"systemId" yaml:"systemId"`
	StartSector  uint8  `json:"startSector" yaml:"startSector"`
	EndSector    uint8  `json:"endSector" yaml:"endSector"`
	SectorSize   int    `json:"sectorSize" yaml:"sectorSize"`
	StartLBA     uint32 `json:"startLba" yaml:"startLba"`
	StartByte    uint64 `json:"startByte" yaml:"startByte"`
	EndByte      uint64 `json:"endByte" yaml:"endByte"`
	TotalSectors uint32 `json:"totalSectors" yaml:"totalSectors"`
	SizeBytes    uint64 `json:"sizeBytes" yaml:"sizeBytes"`
}

// SummarizePartitions lists the FAT32 partitions of the master boot record.
func SummarizePartitions(mbr *MasterBootRecord) []PartitionSummary {
	result := []PartitionSummary{}
	for _, p := range mbr.FAT32Partitions() {
		result = append(result, PartitionSummary{
			Number:       p.Number,
			SystemID:     fmt.Sprintf("0x%02x", p.SystemID),
			StartSector:  p.StartSectorCHS(),
			EndSector:    p.EndSectorCHS(),
			SectorSize:   SectorSize,
			StartLBA:     p.StartLBA,
			StartByte:    p.StartByte(),
			EndByte:      p.EndByte(),
			TotalSectors: p.TotalSectors,
			SizeBytes:    p.SizeBytes(),
		})
	}
	return result
}

// BootSectorSummary is the printable form of a boot sector.
type BootSectorSummary struct {
	OEMName           string `json:"oemName" yaml:"oemName"`
	VolumeLabel       string `json:"volumeLabel" yaml:"volumeLabel"`
	VolumeID          string `json:"volumeId" yaml:"volumeId"`
	FSType            string `json:"fsType" yaml:"fsType"`
	SectorsPerCluster uint8  `json:"sectorsPerCluster" yaml:"sectorsPerCluster"`
	BytesPerSector    uint16 `json:"bytesPerSector" yaml:"bytesPerSector"`
	NumFATs           uint8  `json:"numFats" yaml:"numFats"`
	FATSize           uint32 `json:"fatSize" yaml:"fatSize"`
	ReservedSectors   uint16 `json:"reservedSectors" yaml:"reservedSectors"`
	RootCluster       uint32 `json:"rootCluster" yaml:"rootCluster"`
	ClusterSize       uint32 `json:"clusterSize" yaml:"clusterSize"`
	FirstDataSector   uint32 `json:"firstDataSector" yaml:"firstDataSector"`
}

// Summary describes the boot sector of the partition.
func (fs *Fs) Summary() BootSectorSummary {
	return BootSectorSummary{
		OEMName:           trimPadding(fs.bs.OEMName[:]),
		VolumeLabel:       fs.bs.Label(),
		VolumeID:          fmt.Sprintf("%08X", fs.bs.VolumeID),
		FSType:            fs.bs.FSType(),
		SectorsPerCluster: fs.bs.SectorsPerCluster,
		BytesPerSector:    fs.bs.BytesPerSector,
		NumFATs:           fs.bs.NumFATs,
		FATSize:           fs.bs.FATSize32,
		ReservedSectors:   fs.bs.ReservedSectorCount,
		RootCluster:       fs.bs.RootCluster,
		ClusterSize:       fs.bs.ClusterSize(),
		FirstDataSector:   fs.FirstDataSector(),
	}
}

// TreeEntry is one line of the directory tree.
type TreeEntry struct {
	Depth        int       `json:"depth" yaml:"depth"`
	Path         string    `json:"path" yaml:"path"`
	Name         string    `json:"name" yaml:"name"`
	IsDir        bool      `json:"isDir" yaml:"isDir"`
	Size         uint32    `json:"size" yaml:"size"`
	FirstCluster uint32    `json:"firstCluster" yaml:"firstCluster"`
	ModTime      time.Time `json:"modTime" yaml:"modTime"`
}

func newTreeEntry(depth int, path string, entry DirEntry) TreeEntry {
	return TreeEntry{
		Depth:        depth,
		Path:         path,
		Name:         entry.DisplayName(),
		IsDir:        entry.IsDir(),
		Size:         entry.FileSize,
		FirstCluster: entry.FirstCluster,
		ModTime:      entry.ModTime(),
	}
}

// VolumeSummary is everything printed for a single partition.
type VolumeSummary struct {
	Partition  int               `json:"partition" yaml:"partition"`
	BootSector BootSectorSummary `json:"bootSector" yaml:"bootSector"`
	Tree       []TreeEntry       `json:"tree" yaml:"tree"`
	Warnings   []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func trimPadding(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}
