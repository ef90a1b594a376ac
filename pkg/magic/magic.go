package magic

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the number of bytes needed to recognize every format.
const HeaderSize = 512

const (
	gzipHeader  = "\x1f\x8b"
	bzip2Header = "BZh"
	xzHeader    = "\xfd7zXZ\x00"
	zipHeader   = "PK\x03\x04"
	zipEmpty    = "PK\x05\x06"

	tarMagicOffset = 257
	ustarMagic     = "ustar\x0000"
	gnuMagic       = "ustar  \x00"
)

// Describe returns a file(1)-like description of the data in hdr, which
// should hold the first HeaderSize bytes of a stream (or the whole stream
// if shorter).
func Describe(hdr []byte) string {
	switch {
	case len(hdr) == 0:
		return "empty"
	case bytes.HasPrefix(hdr, []byte(gzipHeader)):
		return "gzip compressed data"
	case bytes.HasPrefix(hdr, []byte(xzHeader)):
		return "XZ compressed data"
	case isBzip2(hdr):
		return fmt.Sprintf("bzip2 compressed data, block size = %c00k", hdr[3])
	case bytes.HasPrefix(hdr, []byte(zipHeader)):
		return "Zip archive data, at least v2.0 to extract"
	case bytes.HasPrefix(hdr, []byte(zipEmpty)):
		return "Zip archive data (empty)"
	}

	if len(hdr) >= tarMagicOffset+len(ustarMagic) {
		switch string(hdr[tarMagicOffset : tarMagicOffset+len(ustarMagic)]) {
		case ustarMagic:
			return "POSIX tar archive"
		case gnuMagic:
			return "POSIX tar archive (GNU)"
		}
	}

	return "data"
}

// bzip2 streams start with "BZh" followed by the block size, '1' to '9'.
func isBzip2(hdr []byte) bool {
	return len(hdr) >= 4 && bytes.HasPrefix(hdr, []byte(bzip2Header)) && hdr[3] >= '1' && hdr[3] <= '9'
}

// Read reads the header of r and returns its description.
func Read(r io.Reader) (string, error) {
	hdr := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, hdr)
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
	default:
		return "", fmt.Errorf("magic: can't read: %v", err)
	}
	return Describe(hdr[:n]), nil
}

// Sniffer describes files from their magic numbers, without relying on
// external tools.
type Sniffer struct{}

// Sniff opens the file at path and describes its content.
func (Sniffer) Sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("magic: %v", err)
	}
	defer f.Close()

	return Read(f)
}
