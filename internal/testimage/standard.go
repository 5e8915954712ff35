package testimage

import (
	"bytes"
)

// Standard is the layout of the image built by NewStandard.
//
//	partition 1: FAT32 (0x0C) at LBA 8, 64 sectors, label FATTEST
//	partition 2: Linux (0x83), never read
//	partition 3: 0x0C at LBA 72 but formatted as FAT16
//
//	/docs                 dir, cluster 3
//	/docs/readme.txt      cluster 8
//	/docs/readme.md       cluster 12
//	/docs/sub             dir, cluster 9
//	/docs/sub/note.md     cluster 10
//	/hello.txt            cluster 4, with data in its slack
//	/σabc.txt             empty, first name byte stored as 0x05
//	/big.bin              clusters 5, 6, 7 (the FAT entry of 5 has its top bits set)
//
// The root directory spans clusters 2 and 11. Cluster 2 is filled up with
// deleted records, cluster 11 ends with an end marker followed by a record
// that must never be listed.
var Standard = Volume{
	StartLBA:          8,
	TotalSectors:      64,
	ReservedSectors:   4,
	NumFATs:           2,
	FATSectors:        1,
	SectorsPerCluster: 1,
	RootCluster:       2,
	Label:             "FATTEST",
	FSType:            "FAT32",
}

// FAT16 is the volume of the third partition of NewStandard.
var FAT16 = Volume{
	StartLBA:          72,
	TotalSectors:      8,
	ReservedSectors:   1,
	NumFATs:           1,
	FATSectors:        1,
	SectorsPerCluster: 1,
	RootCluster:       2,
	Label:             "OLD",
	FSType:            "FAT16",
}

// Sizes and contents of the files of NewStandard.
var (
	HelloContent    = []byte("Hello, World!")
	HelloSlack      = []byte("SLACK")
	HelloSlackAt    = 100
	ReadmeContent   = []byte("read me please\n")
	ReadmeMDContent = []byte("# md")
	NoteContent     = []byte("note!\n")
	BigSize         = 1100
)

// HelloWriteDate and HelloWriteTime encode 2020-12-26 20:30:32.
const (
	HelloWriteDate = 20890
	HelloWriteTime = 41936
)

// BigByte returns byte i of the clusters of /big.bin, slack included.
func BigByte(i int) byte {
	return byte(i % 251)
}

// StandardSectors is the size of NewStandard in sectors.
const StandardSectors = 80

// NewStandard builds the image described at Standard.
func NewStandard() *Image {
	v := Standard
	img := New(StandardSectors)
	img.SetPartition(0, 0x0C, v.StartLBA, v.TotalSectors)
	img.SetPartition(1, 0x83, 100, 20)
	img.SetPartition(2, 0x0C, FAT16.StartLBA, FAT16.TotalSectors)
	img.WriteBootSector(v)
	img.WriteBootSector(FAT16)

	img.SetFAT(v, 0, 0x0FFFFFF8)
	img.SetFAT(v, 1, EOC)

	// root directory
	img.Chain(v, 2, 11)
	root := Dir(
		Entry{Name: "FATTEST", Attr: AttrVolumeID},
		Entry{Name: "DOCS", Attr: AttrDirectory, Cluster: 3},
		Entry{Name: "HELLO   TXT", Attr: AttrArchive, Cluster: 4, Size: uint32(len(HelloContent)),
			WriteDate: HelloWriteDate, WriteTime: HelloWriteTime},
		Entry{Name: "\xE5ELETED TXT", Attr: AttrArchive, Cluster: 13, Size: 5},
		Entry{Name: "\x05ABC    TXT", Attr: AttrArchive},
	)
	for len(root) < v.ClusterSize() {
		root = append(root, Entry{Name: "\xE5ILLER"}.Bytes()...)
	}
	img.WriteCluster(v, 2, root)
	tail := Dir(Entry{Name: "BIG     BIN", Attr: AttrArchive, Cluster: 5, Size: uint32(BigSize)})
	tail = append(tail, EndMarker()...)
	tail = append(tail, Entry{Name: "GHOST   TXT", Attr: AttrArchive, Cluster: 4, Size: uint32(len(HelloContent))}.Bytes()...)
	img.WriteCluster(v, 11, tail)

	// /docs and /docs/sub
	img.Chain(v, 3)
	img.WriteCluster(v, 3, Dir(
		Entry{Name: ".", Attr: AttrDirectory, Cluster: 3},
		Entry{Name: "..", Attr: AttrDirectory, Cluster: 0},
		Entry{Name: "README  TXT", Attr: AttrArchive, Cluster: 8, Size: uint32(len(ReadmeContent))},
		Entry{Name: "README  MD", Attr: AttrArchive, Cluster: 12, Size: uint32(len(ReadmeMDContent))},
		Entry{Name: "SUB", Attr: AttrDirectory, Cluster: 9},
	))
	img.Chain(v, 9)
	img.WriteCluster(v, 9, Dir(
		Entry{Name: ".", Attr: AttrDirectory, Cluster: 9},
		Entry{Name: "..", Attr: AttrDirectory, Cluster: 3},
		Entry{Name: "NOTE    MD", Attr: AttrArchive, Cluster: 10, Size: uint32(len(NoteContent))},
	))

	// files
	img.Chain(v, 4)
	hello := make([]byte, v.ClusterSize())
	copy(hello, HelloContent)
	copy(hello[HelloSlackAt:], HelloSlack)
	img.WriteCluster(v, 4, hello)

	img.Chain(v, 5, 6, 7)
	img.SetFAT(v, 5, 0xF0000006)
	big := make([]byte, 3*v.ClusterSize())
	for i := range big {
		big[i] = BigByte(i)
	}
	img.WriteAt(v.ClusterOffset(5), big)

	img.Chain(v, 8)
	img.WriteCluster(v, 8, ReadmeContent)
	img.Chain(v, 12)
	img.WriteCluster(v, 12, ReadmeMDContent)
	img.Chain(v, 10)
	img.WriteCluster(v, 10, NoteContent)

	return img
}

// StandardReader returns NewStandard as io.ReadSeeker.
func StandardReader() *bytes.Reader {
	return bytes.NewReader(NewStandard().Bytes())
}
