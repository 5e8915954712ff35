package fatinspect

import (
	"encoding/binary"

	"github.com/aligator/fatinspect/checkpoint"
)

const (
	fatEntryMask = 0x0FFFFFFF
	fatBad       = 0x0FFFFFF7
	fatEOCMin    = 0x0FFFFFF8
)

// fatEntry is the 28 bit value of one FAT32 allocation table slot.
type fatEntry uint32

// Value returns the entry without the 4 reserved upper bits.
func (e fatEntry) Value() uint32 {
	return uint32(e) & fatEntryMask
}

// IsFree returns true if the cluster is not allocated.
func (e fatEntry) IsFree() bool {
	return e.Value() == 0
}

// IsReserved returns true for the reserved value 1.
func (e fatEntry) IsReserved() bool {
	return e.Value() == 1
}

// IsBad returns true if the cluster is marked as defective.
func (e fatEntry) IsBad() bool {
	return e.Value() == fatBad
}

// IsEOF returns true if the entry marks the last cluster of a chain.
func (e fatEntry) IsEOF() bool {
	return e.Value() >= fatEOCMin
}

// IsNextCluster returns true if the entry points to a data cluster.
func (e fatEntry) IsNextCluster() bool {
	return e.Value() >= 2 && e.Value() < fatBad
}

// nextCluster reads the FAT entry of the given cluster.
func (fs *Fs) nextCluster(cluster uint32) (fatEntry, error) {
	sector, offset := fs.fatEntryLocation(cluster)
	data, err := fs.reader.read(sector, offset, 4)
	if err != nil {
		return 0, checkpoint.From(err)
	}

	return fatEntry(binary.LittleEndian.Uint32(data) & fatEntryMask), nil
}

// walkChain calls visit for every cluster of the chain starting at start.
// It stops at the end-of-chain marker, when visit returns false or when visit
// fails. Free, reserved and bad values as well as a cluster that is already
// part of the chain end the walk with an ErrCorruptChain warning.
// No FAT entry is read after the last visited cluster if visit returned false.
func (fs *Fs) walkChain(start uint32, visit func(cluster uint32) (bool, error)) error {
	current := fatEntry(start)
	if !current.IsNextCluster() {
		fs.warn(checkpoint.Reason(ErrCorruptChain, "chain starts at invalid cluster 0x%08X", start))
		return nil
	}

	seen := make(map[uint32]struct{})
	for {
		cluster := current.Value()
		if _, ok := seen[cluster]; ok {
			fs.warn(checkpoint.Reason(ErrCorruptChain, "chain starting at cluster %d loops back to cluster %d", start, cluster))
			return nil
		}
		seen[cluster] = struct{}{}

		more, err := visit(cluster)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		next, err := fs.nextCluster(cluster)
		if err != nil {
			return err
		}

		switch {
		case next.IsEOF():
			return nil
		case !next.IsNextCluster():
			fs.warn(checkpoint.Reason(ErrCorruptChain, "cluster %d of chain %d links to 0x%08X", cluster, start, next.Value()))
			return nil
		}
		current = next
	}
}

// Chain returns the cluster numbers of the chain starting at start in order.
func (fs *Fs) Chain(start uint32) ([]uint32, error) {
	var chain []uint32
	err := fs.walkChain(start, func(cluster uint32) (bool, error) {
		chain = append(chain, cluster)
		return true, nil
	})
	return chain, err
}
