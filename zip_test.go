package unarc

import (
	"archive/tar"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
)

func TestUnixMode(t *testing.T) {
	unixHeader := func(mode fs.FileMode) *zip.FileHeader {
		fh := &zip.FileHeader{Name: "f"}
		fh.SetMode(mode)
		return fh
	}

	tests := []struct {
		name   string
		fh     *zip.FileHeader
		want   uint32
		wantOK bool
	}{
		{
			name:   "unix file",
			fh:     unixHeader(0640),
			want:   0o100640,
			wantOK: true,
		},
		{
			name:   "unix directory",
			fh:     unixHeader(fs.ModeDir | 0755),
			want:   0o40755,
			wantOK: true,
		},
		{
			name:   "macOS",
			fh:     &zip.FileHeader{CreatorVersion: creatorMacOSX << 8, ExternalAttrs: 0o100600 << 16},
			want:   0o100600,
			wantOK: true,
		},
		{
			name:   "dos file",
			fh:     &zip.FileHeader{CreatorVersion: creatorFAT << 8, ExternalAttrs: 0x20},
			want:   0o100664,
			wantOK: true,
		},
		{
			name:   "dos read-only file",
			fh:     &zip.FileHeader{CreatorVersion: creatorFAT << 8, ExternalAttrs: msdosReadOnly},
			want:   0o444,
			wantOK: true,
		},
		{
			name:   "dos directory",
			fh:     &zip.FileHeader{CreatorVersion: creatorFAT << 8, ExternalAttrs: msdosDir},
			want:   0o40775,
			wantOK: true,
		},
		{
			name:   "dos read-only directory",
			fh:     &zip.FileHeader{CreatorVersion: creatorFAT << 8, ExternalAttrs: msdosDir | msdosReadOnly},
			want:   0o555,
			wantOK: true,
		},
		{
			name:   "ntfs file",
			fh:     &zip.FileHeader{CreatorVersion: creatorNTFS << 8, ExternalAttrs: 0x20},
			wantOK: false,
		},
		{
			name:   "vfat directory",
			fh:     &zip.FileHeader{CreatorVersion: creatorVFAT << 8, ExternalAttrs: msdosDir},
			wantOK: false,
		},
		{
			name:   "no attributes",
			fh:     &zip.FileHeader{CreatorVersion: creatorUnix << 8},
			wantOK: false,
		},
		{
			name:   "unsupported host",
			fh:     &zip.FileHeader{CreatorVersion: 7 << 8, ExternalAttrs: 0o100644 << 16},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := UnixMode(tt.fh)
			if ok != tt.wantOK {
				t.Fatalf("UnixMode() ok = %t, want %t", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("UnixMode() = %o, want %o", got, tt.want)
			}
		})
	}
}

func TestTarHeader(t *testing.T) {
	meta := ContainerMetadata{ModTime: time.Unix(1600000000, 0), UID: 1001, GID: 1002}

	fh := &zip.FileHeader{Name: "dir/file.txt", UncompressedSize64: 42}
	fh.SetMode(0644)
	fh.Modified = time.Unix(1, 0)

	hdr, err := TarHeader(fh, meta)
	if err != nil {
		t.Fatal(err)
	}

	want := tar.Header{
		Typeflag: tar.TypeReg,
		Name:     "dir/file.txt",
		Size:     42,
		Mode:     0o100644,
		ModTime:  meta.ModTime,
		Uid:      1001,
		Gid:      1002,
		Format:   tar.FormatGNU,
	}
	if hdr.Typeflag != want.Typeflag || hdr.Name != want.Name || hdr.Size != want.Size ||
		hdr.Mode != want.Mode || !hdr.ModTime.Equal(want.ModTime) ||
		hdr.Uid != want.Uid || hdr.Gid != want.Gid || hdr.Format != want.Format {
		t.Errorf("TarHeader() = %+v, want %+v", *hdr, want)
	}

	dir := &zip.FileHeader{Name: "dir/"}
	dir.SetMode(fs.ModeDir | 0755)
	hdr, err = TarHeader(dir, meta)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Typeflag != tar.TypeDir || hdr.Size != 0 {
		t.Errorf("TarHeader() for directory = %+v", *hdr)
	}
}

func TestTarHeaderMissingMode(t *testing.T) {
	fh := &zip.FileHeader{Name: "legacy.txt"}
	_, err := TarHeader(fh, ContainerMetadata{})
	if !errors.Is(err, ErrMissingMode) {
		t.Errorf("TarHeader() error = %v, want %v", err, ErrMissingMode)
	}
}
