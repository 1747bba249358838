package cliutil

import "github.com/mattn/go-isatty"

// IsTty reports whether fd is a terminal, including cygwin/msys
// pseudo terminals.
func IsTty(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
