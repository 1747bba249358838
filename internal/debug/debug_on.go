//go:build debug

package debug

import (
	"encoding/hex"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
)

const Enabled = true

var logger = log.New(os.Stdout, "|DEBUG| ", 0)

// Printf prints debug messages. Only available if compiled with "debug" tag
func Printf(f string, args ...any) {
	logger.Printf(f, args...)
}

func Dump(v ...any) {
	spew.Dump(v...)
}

// Chunk prints the raw bytes of a chunk found at offset off.
func Chunk(off int, b []byte) {
	logger.Printf("chunk at 0x%08x (%d bytes)\n%s", off, len(b), hex.Dump(b))
}
