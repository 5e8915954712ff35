package fatinspect

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

const hexDumpWidth = 16

// PrintPartitions prints one block per FAT32 partition.
func PrintPartitions(w io.Writer, partitions []PartitionSummary) {
	for _, p := range partitions {
		fmt.Fprintf(w, "Partition %d:\n", p.Number)
		fmt.Fprintf(w, "  System ID:    %s (FAT32 with LBA addressing)\n", p.SystemID)
		fmt.Fprintf(w, "  Start Sector: %d\n", p.StartSector)
		fmt.Fprintf(w, "  End Sector:   %d\n", p.EndSector)
		fmt.Fprintf(w, "  Sector size:  %d bytes\n", p.SectorSize)
		fmt.Fprintf(w, "  Start LBA:    %d\n", p.StartLBA)
		fmt.Fprintf(w, "  Start Byte:   %d\n", p.StartByte)
		fmt.Fprintf(w, "  End Byte:     %d\n", p.EndByte)
		fmt.Fprintf(w, "  Size:         %d sectors (%d bytes, %s)\n", p.TotalSectors, p.SizeBytes, humanize.IBytes(p.SizeBytes))
	}
}

// PrintBootSector prints the geometry of a partition.
func PrintBootSector(w io.Writer, s BootSectorSummary) {
	fmt.Fprintf(w, "Sectors per cluster: %d\n", s.SectorsPerCluster)
	fmt.Fprintf(w, "Bytes per sector: %d\n", s.BytesPerSector)
	fmt.Fprintf(w, "Number of FATs: %d\n", s.NumFATs)
	fmt.Fprintf(w, "FAT size: %d\n", s.FATSize)
	fmt.Fprintf(w, "Reserved sectors count: %d\n", s.ReservedSectors)
	fmt.Fprintf(w, "Root cluster: %d\n", s.RootCluster)
	if s.VolumeLabel != "" {
		fmt.Fprintf(w, "Volume label: %s\n", s.VolumeLabel)
	}
	fmt.Fprintf(w, "Cluster size: %s\n", humanize.IBytes(uint64(s.ClusterSize)))
}

// PrintTree prints the tree with one space of indentation per level.
func PrintTree(w io.Writer, tree []TreeEntry) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "file / directory tree:")
	for _, entry := range tree {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", entry.Depth), entry.Name)
	}
}

// PrintWarnings prints every collected warning on its own line.
func PrintWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// HexDump writes data as lines of 16 bytes: the offset, the bytes in hex and
// their printable ASCII form. Offsets count from the start of data.
func HexDump(w io.Writer, data []byte) error {
	out := bufio.NewWriter(w)

	for start := 0; start < len(data); start += hexDumpWidth {
		end := start + hexDumpWidth
		if end > len(data) {
			end = len(data)
		}
		line := data[start:end]

		fmt.Fprintf(out, "%08X: ", start)
		for _, c := range line {
			fmt.Fprintf(out, "%02X ", c)
		}
		// Keep the ASCII column aligned on a short last line.
		out.WriteString(strings.Repeat("   ", hexDumpWidth-len(line)))

		out.WriteString(" | ")
		for _, c := range line {
			if c >= 0x20 && c <= 0x7E {
				out.WriteByte(c)
			} else {
				out.WriteByte('.')
			}
		}
		out.WriteByte('\n')
	}

	return out.Flush()
}
