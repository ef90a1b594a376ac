// Package magic identifies archive and compression formats from the first
// bytes of a stream.
//
// The descriptions it returns mimic the ones printed by file(1), for
// example "gzip compressed data" or "POSIX tar archive", so that they can be
// used wherever file(1) output is expected. Only the formats handled by
// unarc are recognized, anything else is described as "data".
//
// Like any magic number based detection it can be fooled: a stream starting
// with the right bytes is reported as such, regardless of what follows.
package magic
