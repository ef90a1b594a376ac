//go:build unix

package unarc

import (
	"os"

	"golang.org/x/sys/unix"
)

func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultTermWidth
	}
	if ws.Col > maxTermWidth {
		return maxTermWidth
	}
	return int(ws.Col)
}
