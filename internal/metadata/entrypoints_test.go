package metadata

import (
	"testing"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/project"
	"github.com/fernvale/modremap/internal/scan"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func fabricModule(fs *filesystem.MockFileSystem) project.Module {
	fs.AddDir("/p/fabric/src/main/java")
	return project.Module{Name: "fabric", RootPath: "/p/fabric"}
}

func TestScanEntrypoints_AllRoles(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	module := fabricModule(fs)

	fs.AddFile("/p/fabric/src/main/java/new/grp/mod2/ModMain.java", []byte(
		"package new.grp.mod2;\n\nimport net.fabricmc.api.ModInitializer;\n\npublic class ModMain implements ModInitializer {\n}\n"))
	fs.AddFile("/p/fabric/src/main/java/new/grp/mod2/client/ClientMain.java", []byte(
		"package new.grp.mod2.client;\n\npublic class ClientMain implements ClientModInitializer {\n}\n"))
	fs.AddFile("/p/fabric/src/main/java/new/grp/mod2/server/ServerMain.java", []byte(
		"package new.grp.mod2.server;\n\npublic class ServerMain implements DedicatedServerModInitializer {\n}\n"))

	eps, err := ScanEntrypoints(fs, module, scan.Ignore{})
	require.NoError(t, err)
	require.Equal(t, []string{"new.grp.mod2.ModMain"}, eps.Roles["main"])
	require.Equal(t, []string{"new.grp.mod2.client.ClientMain"}, eps.Roles["client"])
	require.Equal(t, []string{"new.grp.mod2.server.ServerMain"}, eps.Roles["server"])
}

func TestScanEntrypoints_MainDoesNotMatchClientMarker(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	module := fabricModule(fs)

	fs.AddFile("/p/fabric/src/main/java/a/b/OnlyClient.java", []byte(
		"package a.b;\n\npublic class OnlyClient implements ClientModInitializer {\n}\n"))

	eps, err := ScanEntrypoints(fs, module, scan.Ignore{})
	require.NoError(t, err)
	require.Empty(t, eps.Roles["main"])
	require.Equal(t, []string{"a.b.OnlyClient"}, eps.Roles["client"])
}

func TestScanEntrypoints_KotlinSupertypeClause(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	module := fabricModule(fs)

	fs.AddFile("/p/fabric/src/main/kotlin/a/b/Main.kt", []byte(
		"package a.b\n\nobject Main : ModInitializer {\n}\n"))

	eps, err := ScanEntrypoints(fs, module, scan.Ignore{})
	require.NoError(t, err)
	require.Equal(t, []string{"a.b.Main"}, eps.Roles["main"])
}

func TestScanEntrypoints_FileScanOrder(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	module := fabricModule(fs)

	fs.AddFile("/p/fabric/src/main/java/a/b/Beta.java", []byte(
		"package a.b;\npublic class Beta implements ModInitializer {}\n"))
	fs.AddFile("/p/fabric/src/main/java/a/b/Alpha.java", []byte(
		"package a.b;\npublic class Alpha implements ModInitializer {}\n"))

	eps, err := ScanEntrypoints(fs, module, scan.Ignore{})
	require.NoError(t, err)
	require.Equal(t, []string{"a.b.Alpha", "a.b.Beta"}, eps.Roles["main"])
}

func TestUpdateEntrypointDescriptor_OverwritesExistingArray(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/fabric.mod.json", []byte(`{
  "id": "mymod2",
  "entrypoints": {
    "main": ["old.grp.mod.ModMain"],
    "client": ["old.grp.mod.client.ClientMain"]
  }
}`))

	eps := &Entrypoints{Roles: map[string][]string{
		"main": {"new.grp.mod2.ModMain", "new.grp.mod2.SecondMain"},
	}}

	changed, err := UpdateEntrypointDescriptor(fs, "/res/fabric.mod.json", eps)
	require.NoError(t, err)
	require.True(t, changed)

	data, _ := fs.ReadFile("/res/fabric.mod.json")
	content := string(data)
	require.Contains(t, content, `"main": ["new.grp.mod2.ModMain", "new.grp.mod2.SecondMain"]`)
	// zero-match role left as-is
	require.Contains(t, content, `"client": ["old.grp.mod.client.ClientMain"]`)
	snaps.MatchSnapshot(t, content)
}

func TestUpdateEntrypointDescriptor_InsertsMissingRole(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/fabric.mod.json", []byte(`{
  "id": "mymod2",
  "entrypoints": {
    "main": ["a.b.Main"]
  }
}`))

	eps := &Entrypoints{Roles: map[string][]string{
		"client": {"a.b.client.ClientMain"},
	}}

	changed, err := UpdateEntrypointDescriptor(fs, "/res/fabric.mod.json", eps)
	require.NoError(t, err)
	require.True(t, changed)

	data, _ := fs.ReadFile("/res/fabric.mod.json")
	content := string(data)
	require.Contains(t, content, `"client": ["a.b.client.ClientMain"],`)
	require.Contains(t, content, `"main": ["a.b.Main"]`)
	snaps.MatchSnapshot(t, content)
}

func TestUpdateEntrypointDescriptor_EmptyAnchorObject(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/res/fabric.mod.json", []byte(`{"id": "mymod2", "entrypoints": {}}`))

	eps := &Entrypoints{Roles: map[string][]string{
		"main": {"a.b.Main"},
	}}

	changed, err := UpdateEntrypointDescriptor(fs, "/res/fabric.mod.json", eps)
	require.NoError(t, err)
	require.True(t, changed)

	data, _ := fs.ReadFile("/res/fabric.mod.json")
	require.Equal(t, `{"id": "mymod2", "entrypoints": { "main": ["a.b.Main"] }}`, string(data))
}

func TestUpdateEntrypointDescriptor_NoEntriesNoWrite(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	original := `{"id": "mymod2", "entrypoints": {"main": ["a.b.Main"]}}`
	fs.AddFile("/res/fabric.mod.json", []byte(original))

	changed, err := UpdateEntrypointDescriptor(fs, "/res/fabric.mod.json",
		&Entrypoints{Roles: map[string][]string{}})
	require.NoError(t, err)
	require.False(t, changed)

	data, _ := fs.ReadFile("/res/fabric.mod.json")
	require.Equal(t, original, string(data))
}

func TestUpdateEntrypointDescriptor_MissingDescriptor(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	changed, err := UpdateEntrypointDescriptor(fs, "/res/fabric.mod.json",
		&Entrypoints{Roles: map[string][]string{"main": {"a.b.Main"}}})
	require.NoError(t, err)
	require.False(t, changed)
}
