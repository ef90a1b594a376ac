package unarc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/AdRoll/unarc/pkg/decode"
)

// DefaultBlockSize is the default size of the buffer used to move data from
// the source to the destination.
const DefaultBlockSize = 1 << 24

// Options configures a conversion.
type Options struct {
	// Type is the archive type of the source. If Invalid, the type is
	// detected with Classifier.
	Type ArchiveType

	// BlockSize is the size in bytes of the buffer used to read the source.
	// DefaultBlockSize is used if BlockSize is not positive.
	BlockSize int

	// Verbose logs the resolved format before processing begins.
	Verbose bool

	Classifier Classifier
}

// Result holds information about a completed conversion.
type Result struct {
	Type    ArchiveType // type resolved for the source, possibly with multiple bits set
	Path    ArchiveType // single type whose decode path has been used
	Read    int64       // bytes read from the decoded source stream
	Written int64       // bytes written to the destination
}

// A decodePath converts a source of a given type into the destination.
type decodePath struct {
	typ  ArchiveType
	desc string
	run  func(c *conversion) error
}

// decodePaths lists the decode paths by priority. A source matching several
// types is handled by the first matching path.
var decodePaths = []decodePath{
	{typ: Gzip, desc: "GZip file", run: (*conversion).gunzip},
	{typ: Bzip2, desc: "BZip2 file", run: (*conversion).bunzip2},
	{typ: Xz, desc: "XZ file", run: (*conversion).unxz},
	{typ: Zip, desc: "Zip file", run: (*conversion).zipToTar},
	{typ: Tar, desc: "Tar file", run: (*conversion).copyTar},
}

func lookupPath(typ ArchiveType) (decodePath, bool) {
	for _, p := range decodePaths {
		if typ.Has(p.typ) {
			return p, true
		}
	}
	return decodePath{}, false
}

// Resolve returns the type whose decode path handles a source of type typ,
// following the priority order Gzip, Bzip2, Xz, Zip, Tar. It returns false
// if typ matches none of them.
func Resolve(typ ArchiveType) (ArchiveType, bool) {
	p, ok := lookupPath(typ)
	return p.typ, ok
}

// Convert streams the content of the src file into dst, decompressing gzip,
// bzip2 and xz streams, converting zip archives into tar archives and
// copying tar archives as is.
//
// dst is created, or truncated if it exists. On failure dst may be left
// with partial content.
func Convert(src, dst string, opts Options) (Result, error) {
	ctx := log.WithFields(log.Fields{"f": "unarc.Convert", "src": src, "dst": dst})

	typ := opts.Type
	if typ == Invalid {
		var err error
		typ, err = opts.Classifier.Detect(src)
		if err != nil {
			ctx.WithError(err).Warn("content sniffing failed, using filename heuristics only")
		}
	}

	res := Result{Type: typ}
	path, ok := lookupPath(typ)
	if !ok {
		return res, fmt.Errorf("%w '%s' for '%s'", ErrUnknownType, typ, src)
	}
	res.Path = path.typ

	bs := opts.BlockSize
	if bs <= 0 {
		bs = DefaultBlockSize
	}

	in, err := os.Open(src)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrRead, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if opts.Verbose {
		ctx.WithField("type", typ).Info(path.desc)
	}

	c := &conversion{
		src:  in,
		info: info,
		dst:  &countingWriter{w: out},
		buf:  make([]byte, bs),
	}

	err = path.run(c)
	res.Read, res.Written = c.read, c.dst.n
	if err != nil {
		out.Close()
		return res, err
	}
	if err := out.Close(); err != nil {
		return res, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	ctx.WithFields(log.Fields{
		"read":    humanize.IBytes(uint64(res.Read)),
		"written": humanize.IBytes(uint64(res.Written)),
	}).Debug("conversion done")

	return res, nil
}

// conversion holds the state of a single Convert call. buf is reused for
// every read.
type conversion struct {
	src  *os.File
	info fs.FileInfo
	dst  *countingWriter
	buf  []byte

	read int64
}

func (c *conversion) gunzip() error {
	r, err := decode.Gzip(c.src, c.info.Size())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer r.Close()

	return c.decode(r, "gzip")
}

func (c *conversion) bunzip2() error {
	r := decode.Bzip2(c.src)
	defer r.Close()

	return c.decode(r, "bzip2")
}

func (c *conversion) unxz() error {
	r, err := decode.Xz(c.src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer r.Close()

	return c.decode(r, "xz")
}

// decode writes the decompressed stream r to the destination.
func (c *conversion) decode(r io.Reader, format string) error {
	n, err := Chunked(r, c.buf, writeChunks(c.dst))
	c.read += n
	if err != nil {
		if errors.Is(err, ErrWrite) {
			return err
		}
		return fmt.Errorf("%w %s data: %v", ErrDecode, format, err)
	}
	return nil
}

// copyTar copies the source as is, since it's already a tar archive.
func (c *conversion) copyTar() error {
	n, err := Chunked(c.src, c.buf, writeChunks(c.dst))
	c.read += n
	if err != nil {
		if errors.Is(err, ErrWrite) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	return nil
}
