package testutil

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

// WriteFile is a test helper that writes data into the file named name,
// inside dir, and returns the full path of that file. Parent directories are
// created as needed.
//
//	func TestFoo(t *testing.T) {
//	    src := testutil.WriteFile(t, t.TempDir(), "foo.tar.gz", data)
//
//	    // do something with src
//	    ...
//	}
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tb.Fatalf("can't create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		tb.Fatalf("can't write file %s: %v", path, err)
	}
	return path
}

// ReadFile is a test helper that returns the content of the file at path.
func ReadFile(tb testing.TB, path string) []byte {
	tb.Helper()

	buf, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("can't read file %s: %v", path, err)
	}
	return buf
}

// DisableLogging is a test helper that disable logging (in fact it sets its
// level to panic). It returns a function which when called, resets it to its
// previous level. Its useful to be called as follows in test/benchmarks:
//
//	func TestFoo(t *testing.T) {
//	    defer DisableLogging()()
//
//	    // logging is disabled for the whole test
//	}
func DisableLogging() (reset func()) {
	lvl := log.GetLevel()
	log.SetLevel(log.PanicLevel)
	return func() { log.SetLevel(lvl) }
}

// SetLogLevel sets the global log level for the execution of the current tb.
// Though setting the log level is safe for use from concurrent goroutines, it's
// not advised to use SetLogLevel in parallel tests/benchmark, i.e. using
// t.Parallel().
func SetLogLevel(tb testing.TB, level log.Level) {
	cur := log.GetLevel()
	log.SetLevel(level)
	tb.Cleanup(func() { log.SetLevel(cur) })
}

// RestoreLogger saves the global logger output, formatter and level, and
// restores them when tb completes. Use it in tests that reconfigure logging,
// such as the ones running the command line interface.
func RestoreLogger(tb testing.TB) {
	std := log.StandardLogger()
	out, fmtr, lvl := std.Out, std.Formatter, std.GetLevel()
	tb.Cleanup(func() {
		log.SetOutput(out)
		log.SetFormatter(fmtr)
		log.SetLevel(lvl)
	})
}
