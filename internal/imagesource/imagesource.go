// Package imagesource opens disk images for inspection. Compressed images are
// detected by their magic bytes and decompressed into memory, because the
// decoders need random access.
package imagesource

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
)

// Format is the container format of an image file.
type Format string

const (
	Raw  Format = "raw"
	Gzip Format = "gzip"
	Zstd Format = "zstd"
	Xz   Format = "xz"
)

var magics = []struct {
	format Format
	magic  []byte
}{
	{Gzip, []byte{0x1F, 0x8B}},
	{Zstd, []byte{0x28, 0xB5, 0x2F, 0xFD}},
	{Xz, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}},
}

// Detect returns the format the header starts with.
func Detect(header []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.format
		}
	}
	return Raw
}

// Image is an opened image file with random access to its raw content.
type Image struct {
	io.ReadSeeker
	Path   string
	Format Format
	closer io.Closer
}

// Close releases the underlying file of a raw image.
func (i *Image) Close() error {
	if i.closer == nil {
		return nil
	}
	return i.closer.Close()
}

// Open opens the image at path in fs.
func Open(fs afero.Fs, path string, log *zap.SugaredLogger) (*Image, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	header := make([]byte, 6)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewind image: %w", err)
	}

	format := Detect(header[:n])
	if format == Raw {
		return &Image{ReadSeeker: f, Path: path, Format: Raw, closer: f}, nil
	}

	defer f.Close()
	log.Infow("decompressing image into memory", "path", path, "format", format)

	data, err := decompress(f, format)
	if err != nil {
		return nil, fmt.Errorf("decompress %s image: %w", format, err)
	}

	log.Debugw("image decompressed", "bytes", len(data))
	return &Image{ReadSeeker: bytes.NewReader(data), Path: path, Format: format}, nil
}

func decompress(r io.Reader, format Format) ([]byte, error) {
	var out bytes.Buffer

	switch format {
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		if _, err := io.Copy(&out, gz); err != nil {
			return nil, err
		}
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		if _, err := io.Copy(&out, zr); err != nil {
			return nil, err
		}
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(&out, xr); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}

	return out.Bytes(), nil
}

// Compress writes data to w in the given format.
func Compress(w io.Writer, data []byte, format Format) error {
	var (
		zw  io.WriteCloser
		err error
	)

	switch format {
	case Raw:
		_, err := w.Write(data)
		return err
	case Gzip:
		zw = gzip.NewWriter(w)
	case Zstd:
		zw, err = zstd.NewWriter(w)
	case Xz:
		zw, err = xz.NewWriter(w)
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return err
	}

	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
