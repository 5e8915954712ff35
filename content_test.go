package fatinspect

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/aligator/fatinspect/internal/testimage"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

func bigContent(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = testimage.BigByte(i)
	}
	return data
}

func TestFs_ReadContent(t *testing.T) {
	helloCluster := make([]byte, SectorSize)
	copy(helloCluster, testimage.HelloContent)
	copy(helloCluster[testimage.HelloSlackAt:], testimage.HelloSlack)

	tests := []struct {
		name         string
		path         string
		includeSlack bool
		want         []byte
	}{
		{
			name:         "with slack",
			path:         "/hello",
			includeSlack: true,
			want:         helloCluster,
		},
		{
			name: "without slack",
			path: "/hello",
			want: testimage.HelloContent,
		},
		{
			name:         "three clusters with slack",
			path:         "/big",
			includeSlack: true,
			want:         bigContent(3 * SectorSize),
		},
		{
			name: "three clusters without slack",
			path: "/big",
			want: bigContent(testimage.BigSize),
		},
		{
			name:         "empty file",
			path:         "/σabc",
			includeSlack: true,
			want:         []byte{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := openStandard(t)
			matches, err := fs.Lookup(tt.path)
			if err != nil {
				t.Fatal(err)
			}

			got, err := fs.ReadContent(matches[0].Entry, tt.includeSlack)
			if err != nil {
				t.Fatalf("Fs.ReadContent() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fs.ReadContent() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFs_ReadContent_exactReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cluster := func(b byte) []byte { return bytes.Repeat([]byte{b}, SectorSize) }

	// 1100 bytes need 3 clusters: 3 data reads and 2 FAT reads, the FAT
	// entry of the last cluster is not needed.
	reader := NewMocksectorReader(ctrl)
	gomock.InOrder(
		reader.EXPECT().read(uint32(17), uint32(0), uint32(SectorSize)).Return(cluster(5), nil),
		reader.EXPECT().read(uint32(12), uint32(20), uint32(4)).Return(le32(0xF0000006), nil),
		reader.EXPECT().read(uint32(18), uint32(0), uint32(SectorSize)).Return(cluster(6), nil),
		reader.EXPECT().read(uint32(12), uint32(24), uint32(4)).Return(le32(7), nil),
		reader.EXPECT().read(uint32(19), uint32(0), uint32(SectorSize)).Return(cluster(7), nil),
	)

	got, err := newTestFs(reader).ReadContent(DirEntry{FirstCluster: 5, FileSize: 1100}, true)
	if err != nil {
		t.Fatalf("Fs.ReadContent() error = %v", err)
	}

	want := append(append(cluster(5), cluster(6)...), cluster(7)...)
	if !bytes.Equal(got, want) {
		t.Errorf("Fs.ReadContent() returned %d bytes, want %d", len(got), len(want))
	}
}

func TestFs_ReadContent_emptyFileReadsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMocksectorReader(ctrl)
	got, err := newTestFs(reader).ReadContent(DirEntry{FirstCluster: 0, FileSize: 0}, true)
	if err != nil {
		t.Fatalf("Fs.ReadContent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Fs.ReadContent() = %v, want nothing", got)
	}
}

func TestFs_ReadContent_shortChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMocksectorReader(ctrl)
	gomock.InOrder(
		reader.EXPECT().read(uint32(17), uint32(0), uint32(SectorSize)).Return(make([]byte, SectorSize), nil),
		reader.EXPECT().read(uint32(12), uint32(20), uint32(4)).Return(le32(0x0FFFFFFF), nil),
	)

	fs := newTestFs(reader)
	got, err := fs.ReadContent(DirEntry{FirstCluster: 5, FileSize: 1100}, true)
	if err != nil {
		t.Fatalf("Fs.ReadContent() error = %v", err)
	}
	if len(got) != SectorSize {
		t.Errorf("len(Fs.ReadContent()) = %v, want %v", len(got), SectorSize)
	}
	if len(fs.Warnings()) != 1 || !errors.Is(fs.Warnings()[0], ErrCorruptChain) {
		t.Errorf("Fs.Warnings() = %v, want one ErrCorruptChain", fs.Warnings())
	}
}

func TestFs_ReadContent_hugeFileSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMocksectorReader(ctrl)
	gomock.InOrder(
		reader.EXPECT().read(uint32(17), uint32(0), uint32(SectorSize)).Return(make([]byte, SectorSize), nil),
		reader.EXPECT().read(uint32(12), uint32(20), uint32(4)).Return(le32(0x0FFFFFFF), nil),
	)

	fs := newTestFs(reader)
	got, err := fs.ReadContent(DirEntry{FirstCluster: 5, FileSize: 0xFFFFFFFF}, false)
	if err != nil {
		t.Fatalf("Fs.ReadContent() error = %v", err)
	}
	if len(got) != SectorSize {
		t.Errorf("len(Fs.ReadContent()) = %v, want %v", len(got), SectorSize)
	}
	if cap(got) > 2*SectorSize {
		t.Errorf("cap(Fs.ReadContent()) = %v, want at most %v", cap(got), 2*SectorSize)
	}
	if len(fs.Warnings()) != 1 || !errors.Is(fs.Warnings()[0], ErrCorruptChain) {
		t.Errorf("Fs.Warnings() = %v, want one ErrCorruptChain", fs.Warnings())
	}
}

func TestFs_ReadContent_readError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMocksectorReader(ctrl)
	reader.EXPECT().read(uint32(17), uint32(0), uint32(SectorSize)).Return(nil, ErrIO)

	if _, err := newTestFs(reader).ReadContent(DirEntry{FirstCluster: 5, FileSize: 10}, true); !errors.Is(err, ErrIO) {
		t.Errorf("Fs.ReadContent() error = %v, want ErrIO", err)
	}
}

func TestFs_readFileAt(t *testing.T) {
	type args struct {
		offset   int64
		readSize int64
	}
	tests := []struct {
		name    string
		args    args
		want    []byte
		wantErr error
	}{
		{
			name: "start of the file",
			args: args{offset: 0, readSize: 10},
			want: bigContent(10),
		},
		{
			name: "across cluster borders",
			args: args{offset: 500, readSize: 600},
			want: bigContent(1100)[500:1100],
		},
		{
			name: "inside of the last cluster",
			args: args{offset: 1030, readSize: 20},
			want: bigContent(1050)[1030:],
		},
		{
			name:    "over the end of the file",
			args:    args{offset: 1090, readSize: 100},
			want:    bigContent(1100)[1090:],
			wantErr: io.EOF,
		},
		{
			name:    "at the end of the file",
			args:    args{offset: 1100, readSize: 1},
			wantErr: io.EOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := openStandard(t)
			got, err := fs.readFileAt(5, int64(testimage.BigSize), tt.args.offset, tt.args.readSize)
			if err != tt.wantErr {
				t.Fatalf("Fs.readFileAt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fs.readFileAt() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFs_readFileAt_skipsLeadingClusters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Only the FAT is read for clusters 5 and 6.
	reader := NewMocksectorReader(ctrl)
	gomock.InOrder(
		reader.EXPECT().read(uint32(12), uint32(20), uint32(4)).Return(le32(6), nil),
		reader.EXPECT().read(uint32(12), uint32(24), uint32(4)).Return(le32(7), nil),
		reader.EXPECT().read(uint32(19), uint32(0), uint32(SectorSize)).Return(bytes.Repeat([]byte{7}, SectorSize), nil),
	)

	got, err := newTestFs(reader).readFileAt(5, 1100, 1024, 4)
	if err != nil {
		t.Fatalf("Fs.readFileAt() error = %v", err)
	}
	if !bytes.Equal(got, []byte{7, 7, 7, 7}) {
		t.Errorf("Fs.readFileAt() = %v, want [7 7 7 7]", got)
	}
}
