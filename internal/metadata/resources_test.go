package metadata

import (
	"testing"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestRenameResourceDirs_PreservesNestedContent(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/assets/mymod/lang/en_us.json", []byte(`{"key": "value"}`))
	fs.AddFile("/res/assets/mymod/textures/block/stone.png", []byte{0x89, 0x50, 0x4e, 0x47})
	fs.AddFile("/res/data/mymod/recipes/thing.json", []byte(`{}`))

	renamed, err := RenameResourceDirs(fs, "/res", "mymod", "mymod2")
	require.NoError(t, err)
	require.Equal(t, []string{"/res/assets/mymod", "/res/data/mymod"}, renamed)

	require.False(t, fs.Exists("/res/assets/mymod"))
	data, err := fs.ReadFile("/res/assets/mymod2/lang/en_us.json")
	require.NoError(t, err)
	require.Equal(t, `{"key": "value"}`, string(data))

	binary, err := fs.ReadFile("/res/assets/mymod2/textures/block/stone.png")
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, binary)

	require.True(t, fs.Exists("/res/data/mymod2/recipes/thing.json"))
}

func TestRenameResourceDirs_SameIDNoop(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/assets/mymod/lang/en_us.json", []byte("{}"))

	renamed, err := RenameResourceDirs(fs, "/res", "mymod", "mymod")
	require.NoError(t, err)
	require.Empty(t, renamed)
	require.True(t, fs.Exists("/res/assets/mymod/lang/en_us.json"))
}

func TestRenameResourceDirs_MissingDirsSkipped(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/assets/othermod/lang/en_us.json", []byte("{}"))

	renamed, err := RenameResourceDirs(fs, "/res", "mymod", "mymod2")
	require.NoError(t, err)
	require.Empty(t, renamed)
}
