package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/ulikunitz/xz"
)

// Entry describes an archive entry created by the fixture builders.
type Entry struct {
	Name    string
	Body    string
	Mode    fs.FileMode // 0 leaves zip entries without unix attributes
	ModTime time.Time   // zero means time.Unix(0, 0)

	// Creator and Attrs, when Attrs is not 0, set the zip "version made by"
	// host system and the raw external attributes, overriding Mode.
	Creator uint8
	Attrs   uint32
}

// TarBytes returns a tar archive holding entries.
func TarBytes(tb testing.TB, entries ...Entry) []byte {
	tb.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     e.Name,
			Size:     int64(len(e.Body)),
			Mode:     int64(e.Mode.Perm()),
			ModTime:  entryTime(e),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			tb.Fatalf("can't write tar header for %s: %v", e.Name, err)
		}
		if _, err := io.WriteString(tw, e.Body); err != nil {
			tb.Fatalf("can't write tar entry %s: %v", e.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		tb.Fatalf("can't close tar writer: %v", err)
	}
	return buf.Bytes()
}

// ZipBytes returns a zip archive holding entries, in the given order. Names
// may be repeated.
func ZipBytes(tb testing.TB, entries ...Entry) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		fh := &zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: entryTime(e),
		}
		if e.Mode != 0 {
			fh.SetMode(e.Mode)
		}
		if e.Attrs != 0 {
			fh.CreatorVersion = uint16(e.Creator) << 8
			fh.ExternalAttrs = e.Attrs
		}
		w, err := zw.CreateHeader(fh)
		if err != nil {
			tb.Fatalf("can't create zip entry %s: %v", e.Name, err)
		}
		if _, err := io.WriteString(w, e.Body); err != nil {
			tb.Fatalf("can't write zip entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("can't close zip writer: %v", err)
	}
	return buf.Bytes()
}

// GzipBytes returns data compressed with gzip.
func GzipBytes(tb testing.TB, data []byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		tb.Fatalf("can't gzip data: %v", err)
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("can't close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// XzBytes returns data compressed with xz.
func XzBytes(tb testing.TB, data []byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		tb.Fatalf("can't create xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		tb.Fatalf("can't xz data: %v", err)
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("can't close xz writer: %v", err)
	}
	return buf.Bytes()
}

// TarEntries returns the headers and bodies of the entries of a tar archive.
func TarEntries(tb testing.TB, data []byte) ([]*tar.Header, []string) {
	tb.Helper()

	var (
		hdrs   []*tar.Header
		bodies []string
	)
	tr := tar.NewReader(bytes.NewReader(data))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tb.Fatalf("can't read tar header: %v", err)
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			tb.Fatalf("can't read tar entry %s: %v", hdr.Name, err)
		}
		hdrs = append(hdrs, hdr)
		bodies = append(bodies, string(body))
	}
	return hdrs, bodies
}

func entryTime(e Entry) time.Time {
	if e.ModTime.IsZero() {
		return time.Unix(0, 0)
	}
	return e.ModTime
}
