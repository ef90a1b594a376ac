// Command unarc identifies the archive format of a file and streams its
// content into a normalized output file: gzip, bzip2 and xz files are
// decompressed, zip archives are converted to tar and tar archives are
// copied as is.
//
// Run with -h to see the available options.
package main

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/AdRoll/unarc"
)

func main() {
	if err := unarc.MainCLI(os.Args[1:]); err != nil {
		if errors.Is(err, unarc.ErrUsage) {
			// Usage has already been printed.
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
