package unarc

import (
	"archive/tar"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	log "github.com/sirupsen/logrus"
)

// ContainerMetadata holds the attributes of an archive file used for all the
// entries it contains, since zip entries don't reliably carry them.
type ContainerMetadata struct {
	ModTime time.Time
	UID     int
	GID     int
}

// NewContainerMetadata returns the metadata of the file described by info.
// The modification time is truncated to the second.
func NewContainerMetadata(info fs.FileInfo) ContainerMetadata {
	uid, gid := fileOwner(info)
	return ContainerMetadata{
		ModTime: time.Unix(info.ModTime().Unix(), 0),
		UID:     uid,
		GID:     gid,
	}
}

// Zip "version made by" host systems, from APPNOTE.TXT.
const (
	creatorFAT    = 0
	creatorUnix   = 3
	creatorNTFS   = 11
	creatorVFAT   = 14
	creatorMacOSX = 19
)

// MS-DOS file attributes.
const (
	msdosReadOnly = 0x01
	msdosDir      = 0x10
)

// Unix file type bits.
const (
	sIFDIR = 0o40000
	sIFREG = 0o100000
)

// UnixMode returns the unix mode (permission and file type bits) of a zip
// entry. Entries created on MS-DOS get a mode derived from their attributes,
// with only permission bits left for read-only ones. It returns false if the
// entry doesn't carry any usable attribute, which is the case for every
// other host system, NTFS and VFAT included.
func UnixMode(fh *zip.FileHeader) (uint32, bool) {
	if fh.ExternalAttrs == 0 {
		return 0, false
	}

	switch fh.CreatorVersion >> 8 {
	case creatorUnix, creatorMacOSX:
		return fh.ExternalAttrs >> 16, true
	case creatorFAT:
		var mode uint32 = sIFREG | 0o664
		if fh.ExternalAttrs&msdosDir != 0 {
			mode = sIFDIR | 0o775
		}
		if fh.ExternalAttrs&msdosReadOnly != 0 {
			mode &= 0o555
		}
		return mode, true
	}
	return 0, false
}

// TarHeader returns the tar header of a zip entry. Path, size and mode come
// from the entry, modification time and ownership from meta.
func TarHeader(fh *zip.FileHeader, meta ContainerMetadata) (*tar.Header, error) {
	mode, ok := UnixMode(fh)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingMode, fh.Name)
	}

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     fh.Name,
		Size:     int64(fh.UncompressedSize64),
		Mode:     int64(mode),
		ModTime:  meta.ModTime,
		Uid:      meta.UID,
		Gid:      meta.GID,
		Format:   tar.FormatGNU,
	}
	if strings.HasSuffix(fh.Name, "/") {
		hdr.Typeflag = tar.TypeDir
		hdr.Size = 0
	}
	return hdr, nil
}

// zipToTar writes a tar archive holding the entries of the source zip, in
// the order of its central directory. Entries with duplicate names are all
// kept.
func (c *conversion) zipToTar() error {
	meta := NewContainerMetadata(c.info)

	zr, err := zip.NewReader(c.src, c.info.Size())
	if err != nil {
		return fmt.Errorf("%w zip archive: %v", ErrDecode, err)
	}

	tw := tar.NewWriter(c.dst)
	for _, f := range zr.File {
		hdr, err := TarHeader(&f.FileHeader, meta)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{"name": hdr.Name, "size": hdr.Size, "mode": fmt.Sprintf("%o", hdr.Mode)}).Debug("zip entry")

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, hdr.Name, err)
		}
		if hdr.Typeflag == tar.TypeDir {
			continue
		}
		if err := c.appendEntry(tw, f); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// appendEntry writes the decompressed content of f to tw.
func (c *conversion) appendEntry(tw *tar.Writer, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w zip entry %s: %v", ErrDecode, f.Name, err)
	}
	defer rc.Close()

	n, err := Chunked(rc, c.buf, writeChunks(tw))
	c.read += n
	if err != nil {
		if errors.Is(err, ErrWrite) {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		return fmt.Errorf("%w zip entry %s: %v", ErrDecode, f.Name, err)
	}
	return nil
}
