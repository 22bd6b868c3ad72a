package vivado

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test. The settings file
// resolves relative paths against the working directory, like the tools do.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestRunScriptOnly(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll("src", 0755))
	require.NoError(t, os.WriteFile("src/top.vhd", []byte("--"), 0644))
	require.NoError(t, os.WriteFile("design.txt", []byte("src\n"), 0644))

	require.NoError(t, os.MkdirAll("TCL", 0755))
	require.NoError(t, os.WriteFile("TCL/CreateNewProjectTemplate.tcl", []byte(
		"create_project PROJ_NAME . -force\nADD_FILES\nset_property top TOP_ENTITY [current_fileset]\n"), 0644))

	require.NoError(t, os.WriteFile("projectsettings.yaml", []byte(`
vivadoproject:
  name: MyDevice
  top_entity: TheWindow
  files_lists:
    - design.txt
`), 0644))

	args := Args{Settings: "projectsettings.yaml", SkipLaunch: true}
	require.NoError(t, Run(args))

	buf, err := os.ReadFile(filepath.Join("MyDevice", "CreateNewProject.tcl"))
	require.NoError(t, err)
	text := string(buf)
	assert.Contains(t, text, "create_project MyDevice . -force")
	assert.Contains(t, text, "add_files {../src/top.vhd}")
	assert.Contains(t, text, "set_property top TheWindow")
}

func TestRunGeneratesTargetSupport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll("objects", 0755))
	require.NoError(t, os.WriteFile("objects/signals.csv", []byte(
		"LVName,HDLName,Direction,SignalType,DataType,UseInLabVIEWSingleCycleTimedLoop,RequiredClockDomain\n"+
			`IO Socket\Ch0,ch0_sig,input,Data,U16,,ClkA`+"\n"), 0644))

	require.NoError(t, os.MkdirAll("templates", 0755))
	require.NoError(t, os.WriteFile("templates/window.vhd.tpl", []byte(
		"entity TheWindow is\nport (\n"+
			"{{- range .CustomSignals}}\n    {{.Name}} : {{.Direction}} {{.Type}};\n{{- end}}\n"+
			"    reset : in std_logic\n);\nend TheWindow;\n"), 0644))
	require.NoError(t, os.WriteFile("templates/target.xml.tpl",
		[]byte("<target><boardio>{{.CustomBoardIO}}</boardio></target>\n"), 0644))

	require.NoError(t, os.WriteFile("design.txt", []byte("objects\n"), 0644))
	require.NoError(t, os.MkdirAll("TCL", 0755))
	require.NoError(t, os.WriteFile("TCL/CreateNewProjectTemplate.tcl",
		[]byte("create_project PROJ_NAME . -force\nADD_FILES\n"), 0644))

	require.NoError(t, os.WriteFile("projectsettings.yaml", []byte(`
vivadoproject:
  name: MyDevice
  top_entity: TheWindow
  files_lists:
    - design.txt
target:
  signals_csv: objects/signals.csv
  boardio_xml: objects/boardio.xml
  clock_xml: objects/clock.xml
  window_template: templates/window.vhd.tpl
  window_output: objects/TheWindow.vhd
  window_instantiation: objects/TheWindowExample.vhd
  target_template: templates/target.xml.tpl
  target_output: objects/target.xml
`), 0644))

	require.NoError(t, Run(Args{Settings: "projectsettings.yaml", SkipLaunch: true}))

	// project creation regenerates the support set before assembling files
	buf, err := os.ReadFile(filepath.Join("objects", "TheWindow.vhd"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "ch0_sig : in std_logic_vector(15 downto 0);")
	assert.FileExists(t, filepath.Join("objects", "boardio.xml"))
	assert.FileExists(t, filepath.Join("objects", "target.xml"))

	// and the freshly generated window ends up in the project script
	script, err := os.ReadFile(filepath.Join("MyDevice", "CreateNewProject.tcl"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "add_files {../objects/TheWindow.vhd}")
}

func TestRunRejectsFlagCombination(t *testing.T) {
	err := Run(Args{Settings: "irrelevant.yaml", Overwrite: true, UpdateFiles: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRunRefusesExistingProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("design.txt", []byte(""), 0644))
	require.NoError(t, os.MkdirAll("MyDevice", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("MyDevice", "MyDevice.xpr"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile("projectsettings.yaml", []byte(`
vivadoproject:
  name: MyDevice
  top_entity: TheWindow
  files_lists:
    - design.txt
`), 0644))

	err := Run(Args{Settings: "projectsettings.yaml", SkipLaunch: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunUpdateNeedsProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile("design.txt", []byte(""), 0644))
	require.NoError(t, os.WriteFile("projectsettings.yaml", []byte(`
vivadoproject:
  name: MyDevice
  top_entity: TheWindow
  files_lists:
    - design.txt
`), 0644))

	err := Run(Args{Settings: "projectsettings.yaml", UpdateFiles: true, SkipLaunch: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRunMissingSettings(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("projectsettings.yaml", []byte("vivadoproject:\n  name: OnlyName\n"), 0644))
	err := Run(Args{Settings: "projectsettings.yaml", SkipLaunch: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_entity")
}
