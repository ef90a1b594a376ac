package unarc

import (
	"fmt"
	"io"
)

// maxConsecutiveEmptyReads is the number of reads returning neither data nor
// error after which Chunked gives up.
const maxConsecutiveEmptyReads = 100

// ChunkFunc is called by Chunked with the bytes read by a single call to
// Read. chunk is only valid until ChunkFunc returns, since the underlying
// buffer is reused for the next read.
type ChunkFunc func(chunk []byte, n int) error

// Chunked reads r until EOF, filling buf and invoking fn with each non empty
// chunk (buf[:n], n). It returns the total number of bytes read.
//
// An error returned by r is returned as is and fn is not called for the
// bytes of that failed read. If fn returns an error, reading stops and
// that error is returned.
func Chunked(r io.Reader, buf []byte, fn ChunkFunc) (int64, error) {
	if len(buf) == 0 {
		return 0, io.ErrShortBuffer
	}

	var total int64
	empty := 0
	for {
		n, err := r.Read(buf)
		if err != nil && err != io.EOF {
			return total, err
		}

		if n > 0 {
			empty = 0
			total += int64(n)
			if cerr := fn(buf[:n], n); cerr != nil {
				return total, cerr
			}
		} else if err == nil {
			empty++
			if empty >= maxConsecutiveEmptyReads {
				return total, io.ErrNoProgress
			}
		}

		if err == io.EOF {
			return total, nil
		}
	}
}

// writeChunks returns a ChunkFunc writing every chunk to w. A write that
// does not consume the whole chunk is an error.
func writeChunks(w io.Writer) ChunkFunc {
	return func(chunk []byte, n int) error {
		nw, err := w.Write(chunk)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if nw != n {
			return fmt.Errorf("%w: %v", ErrWrite, io.ErrShortWrite)
		}
		return nil
	}
}

// countingWriter counts the bytes written to the wrapped writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
