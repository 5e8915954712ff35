package fatinspect

import (
	"io"

	"github.com/aligator/fatinspect/checkpoint"
	"go.uber.org/zap"
)

// sectorReader provides all methods needed from the image by the decoders.
// It mainly exists to be able to mock the image in tests.
// Generated mock using mockgen:
//  mockgen -source=sector.go -destination=sector_mock.go -package fatinspect
type sectorReader interface {
	read(sector uint32, offset uint32, length uint32) ([]byte, error)
}

// SectorReader fetches byte ranges from the image, addressed by an absolute
// 512 byte sector plus a byte offset. Every read seeks first, so no read
// depends on the position left behind by the previous one. Nothing is cached.
type SectorReader struct {
	reader io.ReadSeeker
	log    *zap.SugaredLogger
}

// NewSectorReader creates a SectorReader on top of the given image.
func NewSectorReader(reader io.ReadSeeker, log *zap.SugaredLogger) *SectorReader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SectorReader{reader: reader, log: log}
}

func (s *SectorReader) read(sector uint32, offset uint32, length uint32) ([]byte, error) {
	pos := int64(sector)*SectorSize + int64(offset)
	s.log.Debugw("read", "sector", sector, "offset", offset, "length", length)

	if _, err := s.reader.Seek(pos, io.SeekStart); err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}

	buffer := make([]byte, length)
	n, err := io.ReadFull(s.reader, buffer)
	if err != nil {
		// io.EOF would pass checkpoint.Wrap untouched, so report it explicitly.
		return nil, checkpoint.Reason(ErrIO, "read %d bytes at byte %d: got %d: %v", length, pos, n, err)
	}

	return buffer, nil
}
