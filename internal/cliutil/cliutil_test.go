package cliutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTty(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "cliutil")
	require.NoError(t, err)
	defer f.Close()

	require.False(t, IsTty(f.Fd()), "regular files are not terminals")
}
