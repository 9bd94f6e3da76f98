package nvram

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRegion(t *testing.T) {
	dir, err := ioutil.TempDir("", "nvram")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	region := &File{Path: filepath.Join(dir, "score.rec")}

	// never written reads empty
	b, err := region.Load()
	require.NoError(t, err)
	require.Empty(t, b)

	require.NoError(t, region.Store([]byte("3,5,2,1\n")))
	b, err = region.Load()
	require.NoError(t, err)
	require.Equal(t, []byte("3,5,2,1\n"), b)

	// overwrite replaces prior contents
	require.NoError(t, region.Store([]byte("4,5,2,1\n")))
	b, err = region.Load()
	require.NoError(t, err)
	require.Equal(t, []byte("4,5,2,1\n"), b)
}

func TestMemRegion(t *testing.T) {
	var region Mem
	b, err := region.Load()
	require.NoError(t, err)
	require.Empty(t, b)

	require.NoError(t, region.Store([]byte{1, 2, 3}))
	b, err = region.Load()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
}
