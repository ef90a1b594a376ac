package unarc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// SizeBytes is a size in bytes. It implements pflag.Value and accepts
// either a plain number of bytes or a human-readable size, such as "16MiB"
// or "4kB".
type SizeBytes uint64

// Set parses s into b.
func (b *SizeBytes) Set(s string) error {
	if s == "" {
		return fmt.Errorf("invalid size in bytes (%q): empty value", s)
	}

	actual, err := humanize.ParseBytes(s)
	if err != nil {
		return fmt.Errorf("invalid size in bytes (%v): %v", s, err)
	}
	if actual > math.MaxInt32 {
		return fmt.Errorf("invalid size in bytes (%v): value must be smaller than %v", s, math.MaxInt32)
	}

	*b = SizeBytes(actual)
	return nil
}

func (b SizeBytes) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

// Type returns the value type name shown in the flags usage.
func (b SizeBytes) Type() string {
	return "bytes"
}
