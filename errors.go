package unarc

import "errors"

// Errors returned by unarc. They are wrapped with context, use errors.Is to
// check for them.
var (
	// ErrUsage is returned for malformed or incomplete command lines.
	ErrUsage = errors.New("invalid usage")

	// ErrSourceNotFound is returned when the source is missing or is not a
	// regular file.
	ErrSourceNotFound = errors.New("source not found")

	// ErrDestinationExists is returned when the destination exists and
	// overwriting it has not been allowed.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDetection is returned when content sniffing could not be performed.
	// It is not fatal, filename heuristics still apply.
	ErrDetection = errors.New("archive type detection failed")

	// ErrUnknownType is returned when no decode path matches the archive type.
	ErrUnknownType = errors.New("unknown archive type")

	// ErrDecode is returned for corrupt or truncated input.
	ErrDecode = errors.New("can't decode")

	// ErrRead is returned when reading the source fails.
	ErrRead = errors.New("read error")

	// ErrWrite is returned when writing the destination fails.
	ErrWrite = errors.New("write error")

	// ErrMissingMode is returned for zip entries without unix permissions.
	ErrMissingMode = errors.New("zip entry has no unix mode")
)
