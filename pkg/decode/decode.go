package decode

import (
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
)

// FastGzipThreshold is the compressed size, in bytes, above which Gzip uses
// a parallel decoder.
const FastGzipThreshold = 1000000

// Gzip returns a reader decompressing the gzip stream r, of which size is
// the compressed size, or 0 if unknown. Multiple concatenated gzip members
// are read as a single stream.
func Gzip(r io.Reader, size int64) (io.ReadCloser, error) {
	if size > FastGzipThreshold {
		rgz, err := pgzip.NewReader(r)
		if err == nil {
			return rgz, nil
		}
		// The header has been consumed, r can't be handed to another decoder.
		log.WithFields(log.Fields{"f": "decode.Gzip", "size": size}).WithError(err).Debug("fast gzip reader failed to initialize")
		return nil, fmt.Errorf("gzip: %v", err)
	}

	rgz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %v", err)
	}
	return rgz, nil
}

// Bzip2 returns a reader decompressing the bzip2 stream r.
func Bzip2(r io.Reader) io.ReadCloser {
	return io.NopCloser(bzip2.NewReader(r))
}

// Xz returns a reader decompressing the xz stream r.
func Xz(r io.Reader) (io.ReadCloser, error) {
	rxz, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz: %v", err)
	}
	return io.NopCloser(rxz), nil
}
