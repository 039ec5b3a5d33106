package posixflash_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embeddedfat/fat16core/posixflash"
)

func TestCreateThenReopenPreservesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.img")

	dev, err := posixflash.Create(path, 16)
	require.NoError(t, err)

	page := make([]byte, 512)
	for i := range page {
		page[i] = byte(i % 256)
	}
	require.NoError(t, dev.PageWrite(3, page))
	require.NoError(t, dev.Close())

	reopened, err := posixflash.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	out := make([]byte, 512)
	require.NoError(t, reopened.PageRead(3, out))
	require.Equal(t, page, out)
}

func TestPartialReadRejectsOutOfBoundsRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.img")
	dev, err := posixflash.Create(path, 2)
	require.NoError(t, err)
	defer dev.Close()

	dst := make([]byte, 10)
	require.Error(t, dev.PartialRead(0, 510, dst))
}
