package fatinspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aligator/fatinspect/internal/testimage"
	"github.com/google/go-cmp/cmp"
)

func TestPrintPartitions(t *testing.T) {
	img, err := OpenImage(testimage.StandardReader())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	PrintPartitions(&out, SummarizePartitions(img.MBR()))

	want := strings.Join([]string{
		"Partition 1:",
		"  System ID:    0x0c (FAT32 with LBA addressing)",
		"  Start Sector: 2",
		"  End Sector:   63",
		"  Sector size:  512 bytes",
		"  Start LBA:    8",
		"  Start Byte:   4096",
		"  End Byte:     36863",
		"  Size:         64 sectors (32768 bytes, 32 KiB)",
		"Partition 3:",
		"  System ID:    0x0c (FAT32 with LBA addressing)",
		"  Start Sector: 2",
		"  End Sector:   63",
		"  Sector size:  512 bytes",
		"  Start LBA:    72",
		"  Start Byte:   36864",
		"  End Byte:     40959",
		"  Size:         8 sectors (4096 bytes, 4.0 KiB)",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("PrintPartitions() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintBootSector(t *testing.T) {
	var out bytes.Buffer
	PrintBootSector(&out, openStandard(t).Summary())

	want := strings.Join([]string{
		"Sectors per cluster: 1",
		"Bytes per sector: 512",
		"Number of FATs: 2",
		"FAT size: 1",
		"Reserved sectors count: 4",
		"Root cluster: 2",
		"Volume label: FATTEST",
		"Cluster size: 512 B",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("PrintBootSector() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintTree(t *testing.T) {
	var out bytes.Buffer
	PrintTree(&out, []TreeEntry{
		{Depth: 0, Name: "docs"},
		{Depth: 1, Name: "readme.txt"},
		{Depth: 2, Name: "deep"},
		{Depth: 0, Name: "hello.txt"},
	})

	want := "\nfile / directory tree:\ndocs\n readme.txt\n  deep\nhello.txt\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("PrintTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintWarnings(t *testing.T) {
	var out bytes.Buffer
	PrintWarnings(&out, []string{"one", "two"})

	if diff := cmp.Diff("warning: one\nwarning: two\n", out.String()); diff != "" {
		t.Errorf("PrintWarnings() mismatch (-want +got):\n%s", diff)
	}
}

func TestHexDump(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "nothing",
			data: []byte{},
			want: "",
		},
		{
			name: "one full line",
			data: []byte("0123456789abcdef"),
			want: "00000000: 30 31 32 33 34 35 36 37 38 39 61 62 63 64 65 66  | 0123456789abcdef\n",
		},
		{
			name: "offsets continue over lines",
			data: []byte("0123456789abcdefXY"),
			want: "00000000: 30 31 32 33 34 35 36 37 38 39 61 62 63 64 65 66  | 0123456789abcdef\n" +
				"00000010: 58 59" + strings.Repeat(" ", 1+14*3) + " | XY\n",
		},
		{
			name: "unprintable bytes",
			data: []byte{0x00, 0x1F, 0x20, 0x7E, 0x7F, 0xE5},
			want: "00000000: 00 1F 20 7E 7F E5" + strings.Repeat(" ", 1+10*3) + " | .. ~..\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := HexDump(&out, tt.data); err != nil {
				t.Fatalf("HexDump() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, out.String()); diff != "" {
				t.Errorf("HexDump() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
