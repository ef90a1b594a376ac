package unarc

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultFileCommand is the content sniffing tool used by FileCommand when
// no path is given.
const DefaultFileCommand = "file"

// A Sniffer inspects the content of a file and returns a free-form
// description of it. Descriptions are matched against the fingerprints of
// the Archives registry, so they are expected to look like file(1) output.
type Sniffer interface {
	Sniff(path string) (string, error)
}

// SnifferFunc is an adapter to allow the use of ordinary functions as
// Sniffer.
type SnifferFunc func(path string) (string, error)

// Sniff calls f(path).
func (f SnifferFunc) Sniff(path string) (string, error) {
	return f(path)
}

// FileCommand is a Sniffer running file(1), or a compatible tool, as an
// external process and returning what it prints on standard output.
type FileCommand struct {
	Path string // command to run (DefaultFileCommand if empty)
}

// Sniff runs the command on path. The command failing to start or exiting
// with a non-zero status is an error.
func (fc FileCommand) Sniff(path string) (string, error) {
	name := fc.Path
	if name == "" {
		name = DefaultFileCommand
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("%s: %s", name, msg)
			}
		}
		return "", fmt.Errorf("%s: %v", name, err)
	}

	return stdout.String(), nil
}
