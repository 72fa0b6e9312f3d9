package rewrite

import (
	"testing"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/scan"
	"github.com/stretchr/testify/require"
)

func TestReplaceOccurrences(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"exact token", "com.foo.mod", "com.bar.mod2", true},
		{"subpackage", "com.foo.mod.client.Renderer", "com.bar.mod2.client.Renderer", true},
		{"prefix of longer package", "com.foo.modular", "com.foo.modular", false},
		{"similar but unrelated", "com.foobar.mod", "com.foobar.mod", false},
		{"embedded in wider path", "net.lib.com.foo.mod", "net.lib.com.foo.mod", false},
		{"inside json value", `"entry": "com.foo.mod.Main"`, `"entry": "com.bar.mod2.Main"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ReplaceOccurrences(tt.in, "com.foo.mod", "com.bar.mod2")
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.changed, changed)
		})
	}
}

func TestSources_RewritesPackageAndImports(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/com/foo/mod/Main.java", []byte(
		"package com.foo.mod;\n\nimport com.foo.mod.util.Helper;\nimport static com.foo.mod.Constants.MOD_ID;\n\npublic class Main {}\n"))

	result, err := Sources(fs, "/src", "com.foo.mod", "com.bar.mod2", scan.Ignore{})
	require.NoError(t, err)
	require.Equal(t, []string{"/src/com/foo/mod/Main.java"}, result.ChangedFiles)

	data, err := fs.ReadFile("/src/com/foo/mod/Main.java")
	require.NoError(t, err)
	require.Equal(t,
		"package com.bar.mod2;\n\nimport com.bar.mod2.util.Helper;\nimport static com.bar.mod2.Constants.MOD_ID;\n\npublic class Main {}\n",
		string(data))
}

func TestSources_PrefixBoundary(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/a/Other.java", []byte("package com.foobar.mod;\n"))

	result, err := Sources(fs, "/src", "com.foo.mod", "com.bar.mod", scan.Ignore{})
	require.NoError(t, err)
	require.Empty(t, result.ChangedFiles)

	data, _ := fs.ReadFile("/src/a/Other.java")
	require.Equal(t, "package com.foobar.mod;\n", string(data))
}

func TestSources_KotlinNoSemicolon(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/Main.kt", []byte("package com.foo.mod\n\nimport com.foo.mod.api.Hook\n"))

	result, err := Sources(fs, "/src", "com.foo.mod", "com.bar.mod2", scan.Ignore{})
	require.NoError(t, err)
	require.Len(t, result.ChangedFiles, 1)

	data, _ := fs.ReadFile("/src/Main.kt")
	require.Equal(t, "package com.bar.mod2\n\nimport com.bar.mod2.api.Hook\n", string(data))
}

func TestSources_BodyReferencesUntouched(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	content := "package com.foo.mod;\n\npublic class A { String s = \"com.foo.mod\"; }\n"
	fs.AddFile("/src/A.java", []byte(content))

	_, err := Sources(fs, "/src", "com.foo.mod", "com.bar.mod2", scan.Ignore{})
	require.NoError(t, err)

	data, _ := fs.ReadFile("/src/A.java")
	require.Equal(t, "package com.bar.mod2;\n\npublic class A { String s = \"com.foo.mod\"; }\n", string(data))
}

func TestSources_NoMatchNoWrite(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/B.java", []byte("package org.unrelated;\n"))
	fs.AddFile("/src/notes.txt", []byte("com.foo.mod\n"))

	result, err := Sources(fs, "/src", "com.foo.mod", "com.bar.mod2", scan.Ignore{})
	require.NoError(t, err)
	require.Empty(t, result.ChangedFiles)

	data, _ := fs.ReadFile("/src/notes.txt")
	require.Equal(t, "com.foo.mod\n", string(data))
}

func TestSources_IdenticalPathsNoop(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/A.java", []byte("package com.foo.mod;\n"))

	result, err := Sources(fs, "/src", "com.foo.mod", "com.foo.mod", scan.Ignore{})
	require.NoError(t, err)
	require.Empty(t, result.ChangedFiles)
}

func TestSources_IgnoredTreeUntouched(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/.gitignore", []byte("build/\n"))
	fs.AddFile("/project/src/Main.java", []byte("package com.foo.mod;\n"))
	fs.AddFile("/project/src/build/Gen.java", []byte("package com.foo.mod;\n"))

	ignore := scan.ProjectIgnore(fs, "/project")
	result, err := Sources(fs, "/project/src", "com.foo.mod", "com.bar.mod2", ignore)
	require.NoError(t, err)
	require.Equal(t, []string{"/project/src/Main.java"}, result.ChangedFiles)

	data, _ := fs.ReadFile("/project/src/build/Gen.java")
	require.Equal(t, "package com.foo.mod;\n", string(data))
}
