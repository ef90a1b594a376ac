package unarc

import (
	"strings"
)

// ArchiveType is a set of archive kinds. More than one bit may be set at a
// time, for example a .tar.gz file whose content is sniffed as gzip also
// matches the tar filename heuristic.
type ArchiveType uint32

// List of archive kinds supported by unarc.
const (
	Invalid ArchiveType = 0
	Tar     ArchiveType = 1 << (iota - 1)
	Gzip
	Zip
	Xz
	Bzip2

	allTypes = Tar | Gzip | Zip | Xz | Bzip2
)

// Has reports whether all bits of o are set in t.
func (t ArchiveType) Has(o ArchiveType) bool {
	return o != Invalid && t&o == o
}

// IsValid reports whether t has at least one known kind set.
func (t ArchiveType) IsValid() bool {
	return t&allTypes != 0
}

// String returns the names of the kinds set in t, in registry order and
// separated by '|'.
func (t ArchiveType) String() string {
	if !t.IsValid() {
		return "invalid"
	}

	var names []string
	for _, c := range Archives {
		if t.Has(c.Type) {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, "|")
}

// ArchiveClass describes a supported archive kind.
type ArchiveClass struct {
	Type        ArchiveType
	Name        string // name accepted by --type
	Fingerprint string // substring identifying the kind in file(1) output
}

// Archives is the registry of supported archive kinds. It must not be
// modified.
var Archives = [...]ArchiveClass{
	{Type: Tar, Name: "tar", Fingerprint: "tar archive"},
	{Type: Gzip, Name: "gzip", Fingerprint: "gzip compressed data"},
	{Type: Zip, Name: "zip", Fingerprint: "Zip archive data"},
	{Type: Xz, Name: "xz", Fingerprint: "XZ compressed data"},
	{Type: Bzip2, Name: "bzip2", Fingerprint: "bzip2 compressed data"},
}

// LookupClass returns the archive class with the given name. The lookup is
// case-insensitive.
func LookupClass(name string) (ArchiveClass, bool) {
	name = strings.ToLower(name)
	for _, c := range Archives {
		if c.Name == name {
			return c, true
		}
	}
	return ArchiveClass{}, false
}

// TypeNames returns the names of all supported archive kinds.
func TypeNames() []string {
	names := make([]string, 0, len(Archives))
	for _, c := range Archives {
		names = append(names, c.Name)
	}
	return names
}
