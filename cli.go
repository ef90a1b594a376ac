package unarc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/AdRoll/unarc/pkg/magic"
)

// Use `-ldflags="-X 'github.com/AdRoll/unarc.BuildVersion=someversion'"` when building unarc to set this value
var BuildVersion = "0.1.0"

// Names accepted by --sniffer.
const (
	SnifferFile  = "file"
	SnifferMagic = "magic"
)

// MainCLI runs the unarc command line interface with args, the command line
// arguments without the program name.
//
// The following options are supported:
//
//	-h, --help: print usage
//	-v, --verbose: verbose logging (repeat for debug logging)
//	-f, --force: overwrite the destination if it exists
//	-t, --type: comma-separated list of source archive types
//	-b, --block-size: size of the processing block
//	--sniffer: content sniffer used for type detection, file or magic
//	--log-json: logs in JSON format instead of text
//	--version: print build version
//
// Usage errors are reported with the usage text and an error wrapping
// ErrUsage is returned. Help and version requests return nil.
func MainCLI(args []string) error {
	return runCLI(args, os.Stdout)
}

type cliFlags struct {
	help      bool
	verbose   int
	force     bool
	types     string
	blockSize SizeBytes
	sniffer   string
	logJSON   bool
	version   bool
}

func newFlagSet(name string, f *cliFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	f.blockSize = DefaultBlockSize
	fs.BoolVarP(&f.help, "help", "h", false, "prints this menu")
	fs.CountVarP(&f.verbose, "verbose", "v", "verbose mode (repeat for debug logging)")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite existing files")
	fs.StringVarP(&f.types, "type", "t", "", "input archive type(s) ["+strings.Join(TypeNames(), ", ")+"]")
	fs.VarP(&f.blockSize, "block-size", "b", "size of processing block in bytes (e.g. 16777216 or 16MiB)")
	fs.StringVar(&f.sniffer, "sniffer", SnifferFile, "content sniffer used to detect the archive type ("+SnifferFile+" or "+SnifferMagic+")")
	fs.BoolVar(&f.logJSON, "log-json", false, "log in JSON format")
	fs.BoolVar(&f.version, "version", false, "display version information")
	return fs
}

func runCLI(args []string, stdout io.Writer) error {
	program := filepath.Base(os.Args[0])

	var f cliFlags
	fs := newFlagSet(program, &f)
	usage := func() { displayProgramUsage(stdout, program, fs) }

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stdout, err)
		usage()
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if f.help {
		usage()
		return nil
	}

	if f.version {
		fmt.Fprintf(stdout, "%s version: %s\n", program, BuildVersion)
		return nil
	}

	setupLogging(stdout, f.verbose, f.logJSON)

	if fs.NArg() != 2 {
		usage()
		return fmt.Errorf("%w: expected SRC and DST, got %d argument(s)", ErrUsage, fs.NArg())
	}
	src, dst := fs.Arg(0), fs.Arg(1)

	if f.blockSize == 0 {
		usage()
		return fmt.Errorf("%w: block size must be positive", ErrUsage)
	}

	var sniffer Sniffer
	switch f.sniffer {
	case SnifferFile:
		sniffer = FileCommand{}
	case SnifferMagic:
		sniffer = magic.Sniffer{}
	default:
		usage()
		return fmt.Errorf("%w: unknown sniffer %q", ErrUsage, f.sniffer)
	}

	if err := checkPaths(src, dst, f.force); err != nil {
		return err
	}

	verbose := f.verbose > 0
	opts := Options{
		BlockSize:  int(f.blockSize),
		Verbose:    verbose,
		Classifier: Classifier{Sniffer: sniffer},
	}
	if fs.Changed("type") {
		opts.Type = ParseTypes(f.types, verbose)
	}

	res, err := Convert(src, dst, opts)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"type":    res.Path,
		"read":    humanize.IBytes(uint64(res.Read)),
		"written": humanize.IBytes(uint64(res.Written)),
	}).Infof("wrote %s", dst)
	return nil
}

// checkPaths verifies that src is a regular file and that dst can be
// written.
func checkPaths(src, dst string, force bool) error {
	sinfo, err := os.Stat(src)
	if err != nil || !sinfo.Mode().IsRegular() {
		return fmt.Errorf("%w: File %s not found", ErrSourceNotFound, src)
	}

	dinfo, err := os.Stat(dst)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %v", ErrWrite, err)
	case !force:
		return fmt.Errorf("%w: File %s already exists", ErrDestinationExists, dst)
	case os.SameFile(sinfo, dinfo):
		return fmt.Errorf("%w: File %s is the source file", ErrDestinationExists, dst)
	}
	return nil
}

func setupLogging(w io.Writer, verbosity int, json bool) {
	log.SetOutput(w)
	if json {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}

	switch {
	case verbosity >= 2:
		log.SetLevel(log.DebugLevel)
	case verbosity == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
}

const (
	maxTermWidth     = 140 // don't go over 140 chars anyway
	defaultTermWidth = 110 // in case we can't get the terminal width
)

var programUsageTemplate = template.Must(template.New("Program usage").Parse(`{{ .ExecName }} - {{ .Build }}
Usage: {{ .ExecName }} [options] SRC DST

Options:
{{ .Defaults }}
Multiple parameters for the -t / --type argument can be specified
by separating elements with commas:

    {{ .ExecName }} --type=gzip,tar some.tar.gz other.tar
`))

func displayProgramUsage(w io.Writer, program string, fs *pflag.FlagSet) {
	// Structure program usage sections
	type programUsage struct {
		Build    string
		ExecName string
		Defaults string
	}

	if err := programUsageTemplate.Execute(w, &programUsage{
		Build:    BuildVersion,
		ExecName: program,
		Defaults: fs.FlagUsagesWrapped(terminalWidth()),
	}); err != nil {
		panic(err)
	}
}
