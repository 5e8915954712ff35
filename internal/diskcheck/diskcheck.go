// Package diskcheck compares the partition table decoded by fatinspect with
// the one go-diskfs reads from the same image.
package diskcheck

import (
	"fmt"
	"sort"

	"github.com/aligator/fatinspect"
	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/partition"
	"github.com/diskfs/go-diskfs/partition/mbr"
)

// Discrepancy is one difference between both decodes.
type Discrepancy struct {
	StartLBA uint32 `json:"startLba" yaml:"startLba"`
	Field    string `json:"field" yaml:"field"`
	Ours     string `json:"ours" yaml:"ours"`
	Theirs   string `json:"theirs" yaml:"theirs"`
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("partition at LBA %d: %s is %s, go-diskfs reads %s", d.StartLBA, d.Field, d.Ours, d.Theirs)
}

type partitionTabler interface {
	GetPartitionTable() (partition.Table, error)
	Close() error
}

// openDisk is replaced in tests.
var openDisk = func(path string) (partitionTabler, error) {
	return diskfs.Open(path)
}

// Compare reads the partition table of the image at path with go-diskfs and
// reports every used entry of table that differs in type or size or that
// go-diskfs does not know, and the other way round.
func Compare(path string, table *fatinspect.MasterBootRecord) ([]Discrepancy, error) {
	disk, err := openDisk(path)
	if err != nil {
		return nil, fmt.Errorf("open disk image: %w", err)
	}
	defer disk.Close()

	pt, err := disk.GetPartitionTable()
	if err != nil {
		return nil, fmt.Errorf("get partition table: %w", err)
	}

	t, ok := pt.(*mbr.Table)
	if !ok {
		return nil, fmt.Errorf("go-diskfs found a %T partition table, not an MBR", pt)
	}

	return compareTables(table, t), nil
}

func compareTables(ours *fatinspect.MasterBootRecord, theirs *mbr.Table) []Discrepancy {
	byStart := make(map[uint32]*mbr.Partition)
	for _, p := range theirs.Partitions {
		if p == nil || (p.Type == 0 && p.Size == 0) {
			continue
		}
		byStart[p.Start] = p
	}

	var result []Discrepancy
	for _, entry := range ours.PartitionTable {
		if entry.SystemID == 0 && entry.TotalSectors == 0 {
			continue
		}

		p, ok := byStart[entry.StartLBA]
		if !ok {
			result = append(result, Discrepancy{
				StartLBA: entry.StartLBA,
				Field:    "presence",
				Ours:     "present",
				Theirs:   "missing",
			})
			continue
		}
		delete(byStart, entry.StartLBA)

		if byte(p.Type) != entry.SystemID {
			result = append(result, Discrepancy{
				StartLBA: entry.StartLBA,
				Field:    "type",
				Ours:     fmt.Sprintf("0x%02x", entry.SystemID),
				Theirs:   fmt.Sprintf("0x%02x", byte(p.Type)),
			})
		}
		if p.Size != entry.TotalSectors {
			result = append(result, Discrepancy{
				StartLBA: entry.StartLBA,
				Field:    "size",
				Ours:     fmt.Sprintf("%d sectors", entry.TotalSectors),
				Theirs:   fmt.Sprintf("%d sectors", p.Size),
			})
		}
	}

	for start := range byStart {
		result = append(result, Discrepancy{
			StartLBA: start,
			Field:    "presence",
			Ours:     "missing",
			Theirs:   "present",
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartLBA < result[j].StartLBA
	})
	return result
}
