// Package testimage builds small raw disk images with an MBR and FAT32
// volumes byte by byte, for tests.
package testimage

import (
	"encoding/binary"
)

const (
	SectorSize = 512

	// EOC is written as end of chain marker.
	EOC = 0x0FFFFFFF

	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
)

// Volume describes the geometry of a FAT32 volume inside of an image.
type Volume struct {
	StartLBA          uint32
	TotalSectors      uint32
	ReservedSectors   uint16
	NumFATs           uint8
	FATSectors        uint32
	SectorsPerCluster uint8
	BytesPerSector    uint16
	RootCluster       uint32
	Label             string
	FSType            string
}

// ClusterSize returns the size of one cluster in bytes.
func (v Volume) ClusterSize() int {
	return int(v.SectorsPerCluster) * SectorSize
}

// ClusterOffset returns the absolute byte offset of a data cluster.
func (v Volume) ClusterOffset(cluster uint32) int {
	firstData := v.StartLBA + uint32(v.ReservedSectors) + uint32(v.NumFATs)*v.FATSectors
	return int(firstData+(cluster-2)*uint32(v.SectorsPerCluster)) * SectorSize
}

// Image is a raw disk image under construction.
type Image struct {
	data []byte
}

// New creates a zeroed image of the given number of sectors with a valid
// MBR signature and an empty partition table.
func New(sectors int) *Image {
	img := &Image{data: make([]byte, sectors*SectorSize)}
	img.data[510] = 0x55
	img.data[511] = 0xAA
	return img
}

// Bytes returns the image content.
func (img *Image) Bytes() []byte {
	return img.data
}

// SetPartition writes the partition table entry at index (0-3).
func (img *Image) SetPartition(index int, systemID byte, startLBA, totalSectors uint32) {
	entry := img.data[446+index*16 : 446+(index+1)*16]
	entry[1] = 0x01
	// CHS sector 2 and 63 with the upper cylinder bits set
	entry[2] = 0xC0 | 0x02
	entry[4] = systemID
	entry[5] = 0xFE
	entry[6] = 0x80 | 0x3F
	entry[7] = 0xFF
	binary.LittleEndian.PutUint32(entry[8:], startLBA)
	binary.LittleEndian.PutUint32(entry[12:], totalSectors)
}

// WriteBootSector writes the BPB of the volume to its first sector.
func (img *Image) WriteBootSector(v Volume) {
	bs := img.data[int(v.StartLBA)*SectorSize : int(v.StartLBA+1)*SectorSize]

	bytesPerSector := v.BytesPerSector
	if bytesPerSector == 0 {
		bytesPerSector = SectorSize
	}

	copy(bs[0:3], []byte{0xEB, 0x58, 0x90})
	copy(bs[3:11], "MSWIN4.1")
	binary.LittleEndian.PutUint16(bs[11:], bytesPerSector)
	bs[13] = v.SectorsPerCluster
	binary.LittleEndian.PutUint16(bs[14:], v.ReservedSectors)
	bs[16] = v.NumFATs
	bs[21] = 0xF8
	binary.LittleEndian.PutUint32(bs[32:], v.TotalSectors)
	binary.LittleEndian.PutUint32(bs[36:], v.FATSectors)
	binary.LittleEndian.PutUint32(bs[44:], v.RootCluster)
	binary.LittleEndian.PutUint16(bs[48:], 1)
	binary.LittleEndian.PutUint16(bs[50:], 6)
	bs[64] = 0x80
	bs[66] = 0x29
	binary.LittleEndian.PutUint32(bs[67:], 0x1234ABCD)
	copy(bs[71:82], pad(v.Label, 11))
	copy(bs[82:90], pad(v.FSType, 8))
	bs[510] = 0x55
	bs[511] = 0xAA
}

// SetFAT writes value as FAT entry of cluster into every FAT copy.
func (img *Image) SetFAT(v Volume, cluster uint32, value uint32) {
	for i := uint32(0); i < uint32(v.NumFATs); i++ {
		fatStart := int(v.StartLBA+uint32(v.ReservedSectors)+i*v.FATSectors) * SectorSize
		binary.LittleEndian.PutUint32(img.data[fatStart+int(cluster)*4:], value)
	}
}

// Chain links the clusters in order and terminates the last one.
func (img *Image) Chain(v Volume, clusters ...uint32) {
	for i, c := range clusters {
		if i == len(clusters)-1 {
			img.SetFAT(v, c, EOC)
		} else {
			img.SetFAT(v, c, clusters[i+1])
		}
	}
}

// WriteCluster copies data to the start of a cluster.
func (img *Image) WriteCluster(v Volume, cluster uint32, data []byte) {
	if len(data) > v.ClusterSize() {
		panic("testimage: data does not fit into one cluster")
	}
	copy(img.data[v.ClusterOffset(cluster):], data)
}

// WriteAt copies data to an absolute offset, for file contents spanning clusters.
func (img *Image) WriteAt(offset int, data []byte) {
	copy(img.data[offset:], data)
}

// Entry is a short name directory record.
type Entry struct {
	// Name holds the 11 raw name bytes, e.g. "HELLO   TXT".
	Name      string
	Attr      byte
	Cluster   uint32
	Size      uint32
	WriteDate uint16
	WriteTime uint16
}

// Bytes encodes the record.
func (e Entry) Bytes() []byte {
	record := make([]byte, 32)
	copy(record[0:11], pad(e.Name, 11))
	record[11] = e.Attr
	binary.LittleEndian.PutUint16(record[20:], uint16(e.Cluster>>16))
	binary.LittleEndian.PutUint16(record[22:], e.WriteTime)
	binary.LittleEndian.PutUint16(record[24:], e.WriteDate)
	binary.LittleEndian.PutUint16(record[26:], uint16(e.Cluster))
	binary.LittleEndian.PutUint32(record[28:], e.Size)
	return record
}

// Dir concatenates directory records.
func Dir(entries ...Entry) []byte {
	var data []byte
	for _, e := range entries {
		data = append(data, e.Bytes()...)
	}
	return data
}

// EndMarker is a record starting with 0x00, which ends a directory.
func EndMarker() []byte {
	return make([]byte, 32)
}

func pad(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}
