package prjfiles

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write_file(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
}

func test_options(dir string) Options {
	return Options{
		DepsMarker: "githubdeps",
		GatherDir:  filepath.Join(dir, "objects", "gathereddeps"),
		LogPath:    filepath.Join(dir, "duplicate_files.log"),
	}
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	write_file(t, filepath.Join(dir, "src", "top.vhd"), "--")
	write_file(t, filepath.Join(dir, "src", "core.v"), "//")
	write_file(t, filepath.Join(dir, "src", "notes.txt"), "ignored by the dir walk")
	write_file(t, filepath.Join(dir, "pins.xdc"), "#")

	list := filepath.Join(dir, "design.txt")
	write_file(t, list, "# design files\n\n"+
		filepath.Join(dir, "src")+"\n"+
		filepath.Join(dir, "pins.xdc")+"\n")

	files, err := Assemble([]string{list}, test_options(dir))
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, sort.StringsAreSorted(files))

	bases := make([]string, len(files))
	for k, f := range files {
		bases[k] = filepath.Base(f)
	}
	assert.ElementsMatch(t, []string{"top.vhd", "core.v", "pins.xdc"}, bases)
}

func TestAssembleVerbatimLineKeepsAnyExtension(t *testing.T) {
	dir := t.TempDir()
	// the extension filter only applies to walked directories
	write_file(t, filepath.Join(dir, "readme.txt"), "x")
	list := filepath.Join(dir, "design.txt")
	write_file(t, list, filepath.Join(dir, "readme.txt")+"\n")

	files, err := Assemble([]string{list}, test_options(dir))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "readme.txt", filepath.Base(files[0]))
}

func TestAssembleMissingList(t *testing.T) {
	dir := t.TempDir()
	_, err := Assemble([]string{filepath.Join(dir, "nope.txt")}, test_options(dir))
	assert.ErrorIs(t, err, ErrListFileNotFound)
}

func TestAssembleDuplicates(t *testing.T) {
	dir := t.TempDir()
	write_file(t, filepath.Join(dir, "a", "x.vhd"), "--")
	write_file(t, filepath.Join(dir, "b", "x.vhd"), "--")
	write_file(t, filepath.Join(dir, "b", "y.vhd"), "--")
	list := filepath.Join(dir, "design.txt")
	write_file(t, list,
		filepath.Join(dir, "a", "x.vhd")+"\n"+
			filepath.Join(dir, "b", "x.vhd")+"\n"+
			filepath.Join(dir, "b", "y.vhd")+"\n")

	opt := test_options(dir)
	_, err := Assemble([]string{list}, opt)
	require.ErrorIs(t, err, ErrDuplicateFiles)

	buf, read_err := os.ReadFile(opt.LogPath)
	require.NoError(t, read_err)
	text := string(buf)
	assert.Contains(t, text, "Duplicate file: x.vhd")
	assert.Contains(t, text, filepath.ToSlash(filepath.Join(dir, "a", "x.vhd")))
	assert.Contains(t, text, filepath.ToSlash(filepath.Join(dir, "b", "x.vhd")))
	assert.NotContains(t, text, "y.vhd")
}

func TestStaleDuplicateLogRemoved(t *testing.T) {
	dir := t.TempDir()
	opt := test_options(dir)
	write_file(t, opt.LogPath, "from a previous run")
	write_file(t, filepath.Join(dir, "ok.vhd"), "--")
	list := filepath.Join(dir, "design.txt")
	write_file(t, list, filepath.Join(dir, "ok.vhd")+"\n")

	_, err := Assemble([]string{list}, opt)
	require.NoError(t, err)
	_, stat_err := os.Stat(opt.LogPath)
	assert.True(t, os.IsNotExist(stat_err))
}

func TestDependencyRelocation(t *testing.T) {
	dir := t.TempDir()
	dep := filepath.Join(dir, "githubdeps", "somecore", "fifo.vhd")
	write_file(t, dep, "-- dependency")
	write_file(t, filepath.Join(dir, "top.vhd"), "--")
	list := filepath.Join(dir, "design.txt")
	write_file(t, list, dep+"\n"+filepath.Join(dir, "top.vhd")+"\n")

	opt := test_options(dir)
	files, err := Assemble([]string{list}, opt)
	require.NoError(t, err)
	require.Len(t, files, 2)

	relocated := filepath.Join(opt.GatherDir, "fifo.vhd")
	assert.Contains(t, files, filepath.ToSlash(relocated))
	buf, err := os.ReadFile(relocated)
	require.NoError(t, err)
	assert.Equal(t, "-- dependency", string(buf))
}

func TestDuplicateDetectedBeforeRelocation(t *testing.T) {
	dir := t.TempDir()
	// the dependency shadows a project file of the same name; the check runs
	// on the original paths so both locations show up in the log
	dep := filepath.Join(dir, "githubdeps", "core", "fifo.vhd")
	write_file(t, dep, "--")
	local := filepath.Join(dir, "src", "fifo.vhd")
	write_file(t, local, "--")
	list := filepath.Join(dir, "design.txt")
	write_file(t, list, dep+"\n"+local+"\n")

	opt := test_options(dir)
	_, err := Assemble([]string{list}, opt)
	require.ErrorIs(t, err, ErrDuplicateFiles)
	buf, read_err := os.ReadFile(opt.LogPath)
	require.NoError(t, read_err)
	assert.Contains(t, string(buf), "githubdeps")
}
