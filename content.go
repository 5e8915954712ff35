package fatinspect

import (
	"io"

	"github.com/aligator/fatinspect/checkpoint"
)

// ReadContent reads the clusters of a file.
//
// Exactly ceil(FileSize / cluster size) clusters are read by following the
// chain. With includeSlack the result contains these clusters completely,
// including the bytes behind the end of the file. Otherwise it is cut to
// FileSize. If the chain ends early, the clusters read so far are returned
// and an ErrCorruptChain warning is recorded.
func (fs *Fs) ReadContent(entry DirEntry, includeSlack bool) ([]byte, error) {
	clusterSize := uint64(fs.bs.ClusterSize())
	count := (uint64(entry.FileSize) + clusterSize - 1) / clusterSize
	if count == 0 {
		return []byte{}, nil
	}

	// FileSize is untrusted, so the buffer only grows with clusters actually read.
	content := make([]byte, 0, clusterSize)
	var read uint64
	err := fs.walkChain(entry.FirstCluster, func(cluster uint32) (bool, error) {
		data, err := fs.readCluster(cluster)
		if err != nil {
			return false, err
		}

		content = append(content, data...)
		read++
		return read < count, nil
	})
	if err != nil {
		return nil, checkpoint.From(err)
	}

	if read < count {
		fs.warn(checkpoint.Reason(ErrCorruptChain, "file of %d bytes needs %d clusters, the chain at cluster %d has %d",
			entry.FileSize, count, entry.FirstCluster, read))
	}

	if !includeSlack && uint64(len(content)) > uint64(entry.FileSize) {
		content = content[:entry.FileSize]
	}

	return content, nil
}

// readFileAt reads up to readSize bytes of a file starting at offset.
// Clusters before offset are skipped by following the FAT without reading
// their data. It returns io.EOF together with the data if the end of the file
// was reached before readSize bytes.
func (fs *Fs) readFileAt(firstCluster uint32, fileSize int64, offset int64, readSize int64) ([]byte, error) {
	if offset >= fileSize || readSize <= 0 {
		if readSize <= 0 && offset < fileSize {
			return []byte{}, nil
		}
		return nil, io.EOF
	}

	end := offset + readSize
	if end > fileSize {
		end = fileSize
	}

	clusterSize := int64(fs.bs.ClusterSize())
	result := make([]byte, 0, end-offset)
	var index int64
	err := fs.walkChain(firstCluster, func(cluster uint32) (bool, error) {
		clusterStart := index * clusterSize
		index++

		if clusterStart+clusterSize <= offset {
			return true, nil
		}

		data, err := fs.readCluster(cluster)
		if err != nil {
			return false, err
		}

		from := offset - clusterStart
		if from < 0 {
			from = 0
		}
		to := end - clusterStart
		if to > clusterSize {
			to = clusterSize
		}

		result = append(result, data[from:to]...)
		return clusterStart+clusterSize < end, nil
	})
	if err != nil {
		return nil, checkpoint.From(err)
	}

	if int64(len(result)) < end-offset {
		return result, checkpoint.Reason(ErrCorruptChain, "chain at cluster %d ends before byte %d", firstCluster, end)
	}

	if end < offset+readSize {
		return result, io.EOF
	}

	return result, nil
}
