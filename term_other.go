//go:build !unix

package unarc

func terminalWidth() int { return defaultTermWidth }
