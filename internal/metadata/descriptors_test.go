package metadata

import (
	"testing"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/stretchr/testify/require"
)

func TestIsDescriptor(t *testing.T) {
	require.True(t, IsDescriptor("fabric.mod.json"))
	require.True(t, IsDescriptor("mods.toml"))
	require.True(t, IsDescriptor("neoforge.mods.toml"))
	require.True(t, IsDescriptor("mymod.mixins.json"))
	require.False(t, IsDescriptor("pack.mcmeta"))
	require.False(t, IsDescriptor("mixins.json"))
	require.False(t, IsDescriptor("sounds.json"))
}

func TestUpdateDescriptors_RewritesPackagePath(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/mymod.mixins.json", []byte(
		`{"package": "old.grp.mod.mixin", "mixins": ["TitleScreenMixin"]}`))

	changed, err := UpdateDescriptors(fs, "/res",
		models.NewIdentity("old.grp", "mod"), models.NewIdentity("new.grp", "mod2"))
	require.NoError(t, err)
	require.Equal(t, []string{"/res/mymod.mixins.json"}, changed)

	data, _ := fs.ReadFile("/res/mymod.mixins.json")
	require.Equal(t, `{"package": "new.grp.mod2.mixin", "mixins": ["TitleScreenMixin"]}`, string(data))
}

func TestUpdateDescriptors_RewritesIDKeyOnly(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/fabric.mod.json", []byte(
		`{"id": "mymod", "name": "mymod display", "description": "mymod does things"}`))
	fs.AddFile("/res/META-INF/mods.toml", []byte(
		"[[mods]]\nmodId=\"mymod\"\ndisplayName=\"mymod\"\n"))

	changed, err := UpdateDescriptors(fs, "/res",
		models.NewIdentity("com.example", "mymod"), models.NewIdentity("com.example", "mymod2"))
	require.NoError(t, err)
	require.Len(t, changed, 2)

	// only the value behind the recognized key changes
	data, _ := fs.ReadFile("/res/fabric.mod.json")
	require.Equal(t, `{"id": "mymod2", "name": "mymod display", "description": "mymod does things"}`, string(data))

	toml, _ := fs.ReadFile("/res/META-INF/mods.toml")
	require.Equal(t, "[[mods]]\nmodId=\"mymod2\"\ndisplayName=\"mymod\"\n", string(toml))
}

func TestUpdateDescriptors_UnrecognizedFilesUntouched(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/other.json", []byte(`{"package": "old.grp.mod"}`))

	changed, err := UpdateDescriptors(fs, "/res",
		models.NewIdentity("old.grp", "mod"), models.NewIdentity("new.grp", "mod"))
	require.NoError(t, err)
	require.Empty(t, changed)

	data, _ := fs.ReadFile("/res/other.json")
	require.Equal(t, `{"package": "old.grp.mod"}`, string(data))
}

func TestUpdateDescriptors_IdenticalIdentityNoop(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/fabric.mod.json", []byte(`{"id": "mymod"}`))

	changed, err := UpdateDescriptors(fs, "/res",
		models.NewIdentity("com.example", "mymod"), models.NewIdentity("com.example", "mymod"))
	require.NoError(t, err)
	require.Empty(t, changed)
}

func TestUpdateDescriptors_PrefixBoundary(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/mymod.mixins.json", []byte(`{"package": "old.grp.modular.mixin"}`))

	changed, err := UpdateDescriptors(fs, "/res",
		models.NewIdentity("old.grp", "mod"), models.NewIdentity("new.grp", "mod"))
	require.NoError(t, err)
	require.Empty(t, changed)
}
