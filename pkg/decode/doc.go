// Package decode provides the decompressing readers used by unarc.
//
// Each constructor wraps a compressed byte stream and returns an
// io.ReadCloser reading the decompressed bytes. Closing the returned reader
// releases the decoder resources, it never closes the wrapped reader.
package decode
