package imagesource

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Format
	}{
		{"gzip", []byte{0x1F, 0x8B, 0x08, 0x00}, Gzip},
		{"zstd", []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}, Zstd},
		{"xz", []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, Xz},
		{"mbr", []byte{0xEB, 0x58, 0x90, 0x00}, Raw},
		{"too short", []byte{0x1F}, Raw},
		{"empty", nil, Raw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.header); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func compressGzip(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func compressZstd(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func compressXz(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpen(t *testing.T) {
	content := bytes.Repeat([]byte("FAT32 image content "), 200)

	tests := []struct {
		name     string
		compress func(t *testing.T, data []byte) []byte
		want     Format
	}{
		{
			name:     "raw",
			compress: func(t *testing.T, data []byte) []byte { return data },
			want:     Raw,
		},
		{name: "gzip", compress: compressGzip, want: Gzip},
		{name: "zstd", compress: compressZstd, want: Zstd},
		{name: "xz", compress: compressXz, want: Xz},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/disk.img", tt.compress(t, content), 0644))

			img, err := Open(fs, "/disk.img", nil)
			require.NoError(t, err)
			defer img.Close()

			require.Equal(t, tt.want, img.Format)

			got, err := io.ReadAll(img)
			require.NoError(t, err)
			require.Equal(t, content, got)

			// Random access must work for every format.
			_, err = img.Seek(20, io.SeekStart)
			require.NoError(t, err)
			part := make([]byte, 5)
			_, err = io.ReadFull(img, part)
			require.NoError(t, err)
			require.Equal(t, []byte("FAT32"), part)
		})
	}
}

func TestOpen_missing(t *testing.T) {
	_, err := Open(afero.NewMemMapFs(), "/nope.img", nil)
	require.Error(t, err)
}

func TestOpen_corrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/disk.img.gz", []byte{0x1F, 0x8B, 0x00, 0x01, 0x02}, 0644))

	_, err := Open(fs, "/disk.img.gz", nil)
	require.Error(t, err)
}

func TestCompress(t *testing.T) {
	content := bytes.Repeat([]byte{0x55, 0xAA, 0x00}, 1000)

	for _, format := range []Format{Raw, Gzip, Zstd, Xz} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Compress(&buf, content, format))
			require.Equal(t, format, Detect(buf.Bytes()))

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/disk.img", buf.Bytes(), 0644))
			img, err := Open(fs, "/disk.img", nil)
			require.NoError(t, err)
			defer img.Close()

			got, err := io.ReadAll(img)
			require.NoError(t, err)
			require.Equal(t, content, got)
		})
	}
}

func TestCompress_unsupported(t *testing.T) {
	require.Error(t, Compress(io.Discard, []byte{1}, Format("lz4")))
}
