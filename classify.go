package unarc

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Classifier determines the archive type of a file from its content and its
// name.
type Classifier struct {
	Sniffer Sniffer // defaults to FileCommand{}
}

// Detect returns the set of archive types path may belong to.
//
// Every registry entry whose fingerprint appears in the sniffed description
// is set. Independently of the content, Tar is set when path contains
// ".tar" or ".tgz", since compressed tarballs produce a tar once decoded.
//
// If the content can't be sniffed, Detect returns an error wrapping
// ErrDetection together with the types guessed from the filename alone.
func (c Classifier) Detect(path string) (ArchiveType, error) {
	sniffer := c.Sniffer
	if sniffer == nil {
		sniffer = FileCommand{}
	}

	typ := filenameType(path)

	desc, err := sniffer.Sniff(path)
	if err != nil {
		return typ, fmt.Errorf("%w: %s: %v", ErrDetection, path, err)
	}

	return typ | fingerprintType(desc), nil
}

// fingerprintType returns the types whose fingerprint is found in desc.
func fingerprintType(desc string) ArchiveType {
	typ := Invalid
	for _, c := range Archives {
		if strings.Contains(desc, c.Fingerprint) {
			typ |= c.Type
		}
	}
	return typ
}

// filenameType applies the filename heuristics.
func filenameType(path string) ArchiveType {
	if strings.Contains(path, ".tar") || strings.Contains(path, ".tgz") {
		return Tar
	}
	return Invalid
}

// ParseTypes parses a comma-separated list of archive type names, as given
// to the --type flag, and returns the union of the named types.
//
// Names are case-insensitive. Unknown names are ignored (and logged if
// verbose is set) so that a single bad name doesn't abort the whole run.
// An empty list returns Invalid.
func ParseTypes(list string, verbose bool) ArchiveType {
	typ := Invalid
	if list == "" {
		return typ
	}

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		c, ok := LookupClass(name)
		if !ok {
			if verbose {
				log.WithField("type", name).Warnf("Invalid --type flag: %s", name)
			}
			continue
		}
		typ |= c.Type
	}
	return typ
}
