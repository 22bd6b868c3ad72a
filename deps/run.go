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

package deps

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/lvfpga/hdltools/cfg"
)

type ExtractArgs struct {
	Settings string
	// Dir holds the downloaded archives. Defaults to the folder the
	// dependency marker names.
	Dir     string
	Verbose bool
}

// RunExtract unpacks dependency archives next to where the project file
// lists expect them.
func RunExtract(args ExtractArgs) error {
	if args.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	config, err := cfg.Load(args.Settings)
	if err != nil {
		return err
	}
	dir := args.Dir
	if dir == "" {
		dir = "downloads"
	}
	deps_folder := cfg.Resolve(config.VivadoProject.DepsMarker)
	return ExtractZips(cfg.Resolve(dir), deps_folder)
}

type InstallArgs struct {
	Settings string
	Verbose  bool
}

// RunInstall copies the generated target support folder into the LabVIEW
// FPGA plugin tree configured in the install section.
func RunInstall(args InstallArgs) error {
	if args.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	config, err := cfg.Load(args.Settings)
	if err != nil {
		return err
	}
	ins := config.Install
	if err := cfg.Require("install", map[string]string{
		"plugin_folder":  ins.PluginFolder,
		"install_folder": ins.InstallFolder,
		"target_name":    ins.TargetName,
	}); err != nil {
		return err
	}
	src := cfg.Resolve(ins.InstallFolder)
	dst := filepath.Join(cfg.Resolve(ins.PluginFolder), ins.TargetName)
	log.Infof("installing %s -> %s", src, dst)
	return InstallTree(src, dst)
}
