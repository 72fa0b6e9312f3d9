package metadata

import (
	"testing"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/stretchr/testify/require"
)

func TestUpdateConstants_RewritesRecognizedKeysOnly(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/new/grp/mod2/Constants.java", []byte(
		"package new.grp.mod2;\n\npublic class Constants {\n"+
			"    public static final String MOD_ID = \"mymod\";\n"+
			"    public static final String MOD_NAME = \"mymod\";\n"+
			"    public static final String GREETING = \"hello mymod\";\n"+
			"}\n"))

	changed, err := UpdateConstants(fs, "/src", models.NewIdentity("new.grp", "mod2"), "mymod")
	require.NoError(t, err)
	require.Equal(t, []string{"/src/new/grp/mod2/Constants.java"}, changed)

	data, _ := fs.ReadFile("/src/new/grp/mod2/Constants.java")
	content := string(data)
	require.Contains(t, content, `String MOD_ID = "mod2";`)
	// unrelated literals equal to the old id stay put
	require.Contains(t, content, `String MOD_NAME = "mymod";`)
	require.Contains(t, content, `String GREETING = "hello mymod";`)
}

func TestUpdateConstants_KotlinVariant(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/new/grp/mod2/Constants.kt", []byte(
		"package new.grp.mod2\n\nobject Constants {\n    const val MODID = \"mymod\"\n}\n"))

	changed, err := UpdateConstants(fs, "/src", models.NewIdentity("new.grp", "mod2"), "mymod")
	require.NoError(t, err)
	require.Len(t, changed, 1)

	data, _ := fs.ReadFile("/src/new/grp/mod2/Constants.kt")
	require.Contains(t, string(data), `const val MODID = "mod2"`)
}

func TestUpdateConstants_SameIDNoop(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/a/b/Constants.java", []byte(`String MOD_ID = "mymod";`))

	changed, err := UpdateConstants(fs, "/src", models.NewIdentity("a", "b"), "b")
	require.NoError(t, err)
	require.Empty(t, changed)
}

func TestUpdateConstants_MissingFileNoop(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/src")

	changed, err := UpdateConstants(fs, "/src", models.NewIdentity("new.grp", "mod2"), "mymod")
	require.NoError(t, err)
	require.Empty(t, changed)
}
