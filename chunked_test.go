package unarc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestChunked(t *testing.T) {
	data := []byte(strings.Repeat("0123456789", 100))

	tests := []struct {
		name    string
		r       io.Reader
		bufsize int
		maxn    int // maximum chunk size expected
	}{
		{name: "buffer smaller than data", r: bytes.NewReader(data), bufsize: 7, maxn: 7},
		{name: "buffer bigger than data", r: bytes.NewReader(data), bufsize: 4096, maxn: len(data)},
		{name: "one byte reads", r: iotest.OneByteReader(bytes.NewReader(data)), bufsize: 64, maxn: 1},
		{name: "half reads", r: iotest.HalfReader(bytes.NewReader(data)), bufsize: 64, maxn: 32},
		{name: "data with EOF", r: iotest.DataErrReader(bytes.NewReader(data)), bufsize: 64, maxn: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got    bytes.Buffer
				ncalls int
			)
			buf := make([]byte, tt.bufsize)
			total, err := Chunked(tt.r, buf, func(chunk []byte, n int) error {
				ncalls++
				if len(chunk) != n {
					t.Fatalf("len(chunk) = %d, n = %d", len(chunk), n)
				}
				if n == 0 || n > tt.maxn {
					t.Fatalf("got chunk of %d bytes, want between 1 and %d", n, tt.maxn)
				}
				got.Write(chunk)
				return nil
			})
			if err != nil {
				t.Fatalf("Chunked() error = %v", err)
			}
			if total != int64(len(data)) {
				t.Errorf("Chunked() = %d, want %d", total, len(data))
			}
			if !bytes.Equal(got.Bytes(), data) {
				t.Errorf("chunks content mismatch")
			}
			if ncalls == 0 {
				t.Errorf("callback never called")
			}
		})
	}
}

func TestChunkedEmptySource(t *testing.T) {
	total, err := Chunked(strings.NewReader(""), make([]byte, 8), func(chunk []byte, n int) error {
		t.Fatalf("callback called with %d bytes", n)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("Chunked() = %d, want 0", total)
	}
}

func TestChunkedReadError(t *testing.T) {
	errBoom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("abcdef"), iotest.ErrReader(errBoom))

	var got []byte
	total, err := Chunked(r, make([]byte, 4), func(chunk []byte, n int) error {
		got = append(got, chunk...)
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Chunked() error = %v, want %v", err, errBoom)
	}
	if total != 6 {
		t.Errorf("Chunked() = %d, want 6", total)
	}
	if string(got) != "abcdef" {
		t.Errorf("got %q, want %q", got, "abcdef")
	}
}

func TestChunkedCallbackError(t *testing.T) {
	errStop := errors.New("stop")

	ncalls := 0
	_, err := Chunked(strings.NewReader("abcdefgh"), make([]byte, 2), func(chunk []byte, n int) error {
		ncalls++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Chunked() error = %v, want %v", err, errStop)
	}
	if ncalls != 1 {
		t.Errorf("callback called %d times, want 1", ncalls)
	}
}

type emptyReader struct{}

func (emptyReader) Read(p []byte) (int, error) { return 0, nil }

func TestChunkedNoProgress(t *testing.T) {
	_, err := Chunked(emptyReader{}, make([]byte, 8), func([]byte, int) error { return nil })
	if err != io.ErrNoProgress {
		t.Errorf("Chunked() error = %v, want %v", err, io.ErrNoProgress)
	}
}

func TestChunkedEmptyBuffer(t *testing.T) {
	_, err := Chunked(strings.NewReader("abc"), nil, func([]byte, int) error { return nil })
	if err != io.ErrShortBuffer {
		t.Errorf("Chunked() error = %v, want %v", err, io.ErrShortBuffer)
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestWriteChunksShortWrite(t *testing.T) {
	_, err := Chunked(strings.NewReader("abcdef"), make([]byte, 4), writeChunks(shortWriter{}))
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Chunked() error = %v, want %v", err, ErrWrite)
	}
}
