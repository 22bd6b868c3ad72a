/*  This file is part of lvfpga-hdltools.
    lvfpga-hdltools is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    lvfpga-hdltools is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with lvfpga-hdltools.  If not, see <http://www.gnu.org/licenses/>. */

package vivado

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/lvfpga/hdltools/cfg"
	"github.com/lvfpga/hdltools/prjfiles"
	"github.com/lvfpga/hdltools/target"
)

type Args struct {
	Settings    string
	Overwrite   bool
	UpdateFiles bool
	Verbose     bool
	// SkipLaunch writes the TCL script without invoking the vendor tool.
	SkipLaunch bool
}

// Run assembles the project file list and either creates a fresh Vivado
// project or updates the file set of an existing one.
func Run(args Args) error {
	if args.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if args.Overwrite && args.UpdateFiles {
		return fmt.Errorf("--overwrite and --updatefiles are mutually exclusive")
	}
	config, err := cfg.Load(args.Settings)
	if err != nil {
		return err
	}
	prj := config.VivadoProject
	if err := cfg.Require("vivadoproject", map[string]string{
		"name":       prj.Name,
		"top_entity": prj.TopEntity,
	}); err != nil {
		return err
	}
	if len(prj.FilesLists) == 0 {
		return fmt.Errorf("vivadoproject: no files lists configured")
	}

	// The window VHDL and the other support files must exist before the
	// file lists are expanded, or the assembled set is missing them.
	if config.Target.SignalsCSV != "" {
		if err := target.Generate(config); err != nil {
			return err
		}
	} else {
		log.Debug("target section not configured, skipping support file generation")
	}

	opt := prjfiles.DefaultOptions()
	opt.DepsMarker = prj.DepsMarker
	opt.GatherDir = cfg.Resolve(prj.GatheredDeps)
	files, err := prjfiles.Assemble(resolve_all(prj.FilesLists), opt)
	if err != nil {
		return err
	}
	log.Infof("project %s: %d files", prj.Name, len(files))

	prj_dir := cfg.Resolve(prj.Name)
	xpr := filepath.Join(prj_dir, prj.Name+".xpr")
	updating := args.UpdateFiles
	if exists(xpr) {
		if !updating && !args.Overwrite {
			return fmt.Errorf("project %s already exists, pass --overwrite or --updatefiles", xpr)
		}
	} else if updating {
		return fmt.Errorf("cannot update %s, project does not exist", xpr)
	}

	template := cfg.Resolve(prj.NewTemplate)
	script := filepath.Join(prj_dir, "CreateNewProject.tcl")
	if updating {
		template = cfg.Resolve(prj.UpdateTemplate)
		script = filepath.Join(prj_dir, "UpdateProjectFiles.tcl")
	}
	add_files := AddFilesText(files, prj_dir)
	if err := WriteScript(template, script, add_files, prj.Name, prj.TopEntity); err != nil {
		return err
	}
	log.Infof("wrote %s", script)
	if args.SkipLaunch {
		return nil
	}

	vivado, err := Executable()
	if err != nil {
		return err
	}
	code, out, err := RunCommand(prj_dir, vivado, "-mode", "batch", "-source", script)
	if err != nil {
		return fmt.Errorf("cannot launch vivado: %w", err)
	}
	if code != 0 {
		log.Error(out)
		return fmt.Errorf("vivado exited with code %d", code)
	}
	log.Debug(out)
	return nil
}

func resolve_all(rels []string) []string {
	abs := make([]string, len(rels))
	for k, rel := range rels {
		abs[k] = cfg.Resolve(rel)
	}
	return abs
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
