package fatinspect

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"

	"github.com/aligator/fatinspect/checkpoint"
	"golang.org/x/text/encoding/charmap"
)

// DirEntry is a live, non label short name directory record.
type DirEntry struct {
	Name           [8]byte
	Extension      [3]byte
	Attribute      byte
	CreateTime     uint16
	CreateDate     uint16
	LastAccessDate uint16
	WriteTime      uint16
	WriteDate      uint16
	FirstCluster   uint32
	FileSize       uint32
}

func newDirEntry(h EntryHeader) DirEntry {
	return DirEntry{
		Name:           h.Name,
		Extension:      h.Extension,
		Attribute:      h.Attribute,
		CreateTime:     h.CreateTime,
		CreateDate:     h.CreateDate,
		LastAccessDate: h.LastAccessDate,
		WriteTime:      h.WriteTime,
		WriteDate:      h.WriteDate,
		FirstCluster:   uint32(h.FirstClusterHI)<<16 | uint32(h.FirstClusterLO),
		FileSize:       h.FileSize,
	}
}

// IsDir returns true if the directory attribute is set.
func (e DirEntry) IsDir() bool {
	return e.Attribute&AttrDirectory == AttrDirectory
}

// IsVolumeLabel returns true if the volume id attribute is set.
func (e DirEntry) IsVolumeLabel() bool {
	return e.Attribute&AttrVolumeID == AttrVolumeID
}

// IsDot returns true for the "." and ".." records of a subdirectory.
func (e DirEntry) IsDot() bool {
	name := strings.TrimRight(string(e.Name[:]), " \x00")
	return name == "." || name == ".."
}

// ShortName returns the base name as used for path matching: the 8 name
// bytes with ASCII letters lower-cased and NUL padding replaced by spaces.
// A leading 0x05 is turned back into 0xE5.
func (e DirEntry) ShortName() PathToken {
	var token PathToken
	for i, c := range e.Name {
		switch {
		case c == 0:
			token[i] = ' '
		case i == 0 && c == entryKanji:
			token[i] = entryDeleted
		default:
			token[i] = toLowerASCII(c)
		}
	}
	return token
}

// DisplayName returns the lower-cased "name.ext" form of the entry.
// Bytes above 0x7F are decoded as code page 437.
func (e DirEntry) DisplayName() string {
	token := e.ShortName()
	name := decodeCP437(bytes.TrimRight(token[:], " "))

	var ext [3]byte
	for i, c := range e.Extension {
		if c == 0 {
			c = ' '
		}
		ext[i] = toLowerASCII(c)
	}
	extension := decodeCP437(bytes.TrimRight(ext[:], " "))

	if extension == "" {
		return name
	}
	return name + "." + extension
}

// ModTime returns the last write time or time.Time{} if the date is invalid.
func (e DirEntry) ModTime() time.Time {
	return dosTimestamp(e.WriteDate, e.WriteTime)
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func decodeCP437(data []byte) string {
	var sb strings.Builder
	for _, c := range data {
		sb.WriteRune(charmap.CodePage437.DecodeByte(c))
	}
	return sb.String()
}

// parseDirEntries decodes the 32 byte records of one directory cluster.
// Deleted records and volume labels are skipped. end reports that the end
// marker was found, in which case no later record or cluster of the
// directory may be read.
func parseDirEntries(data []byte) (entries []DirEntry, end bool, err error) {
	for offset := 0; offset+dirEntrySize <= len(data); offset += dirEntrySize {
		record := data[offset : offset+dirEntrySize]

		switch record[0] {
		case entryEnd:
			return entries, true, nil
		case entryDeleted:
			continue
		}

		var header EntryHeader
		err := binary.Read(bytes.NewReader(record), binary.LittleEndian, &header)
		if err != nil {
			return nil, false, checkpoint.Wrap(err, ErrIO)
		}

		if header.Attribute&AttrVolumeID == AttrVolumeID {
			continue
		}

		entries = append(entries, newDirEntry(header))
	}

	return entries, false, nil
}

// readDir returns all entries of the directory starting at cluster, in on-disk order.
func (fs *Fs) readDir(cluster uint32) ([]DirEntry, error) {
	var result []DirEntry
	err := fs.walkChain(cluster, func(c uint32) (bool, error) {
		data, err := fs.readCluster(c)
		if err != nil {
			return false, err
		}

		entries, end, err := parseDirEntries(data)
		if err != nil {
			return false, err
		}
		result = append(result, entries...)
		return !end, nil
	})

	return result, checkpoint.From(err)
}

// ReadDir returns the entries of the directory starting at cluster.
func (fs *Fs) ReadDir(cluster uint32) ([]DirEntry, error) {
	return fs.readDir(cluster)
}
