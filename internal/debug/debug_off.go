//go:build !debug

package debug

const Enabled = false

// Printf is no op unless you compile with the `debug` tag
func Printf(f string, args ...any) {}

// Dump dumps the objects using go-spew
func Dump(v ...any) {}

// Chunk hex dumps raw chunk bytes
func Chunk(off int, b []byte) {}
