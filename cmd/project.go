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

package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvfpga/hdltools/cfg"
	"github.com/lvfpga/hdltools/vivado"
)

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Creates or updates the Vivado project",
	Long: `Assembles the project file set from the configured files lists,
checks it for duplicate file names, relocates downloaded dependencies
and writes the TCL script that Vivado runs in batch mode.

Without flags a new project is created; it is an error if the project
already exists. Pass --overwrite to recreate it or --updatefiles to
refresh the file set of an existing project.`,
	Run:  run_project,
	Args: cobra.NoArgs,
}

var project_args vivado.Args

func init() {
	rootCmd.AddCommand(projectCmd)
	flag := projectCmd.Flags()

	flag.StringVar(&project_args.Settings, "settings", cfg.DefaultFile, "Path to the project settings file")
	flag.BoolVarP(&project_args.Overwrite, "overwrite", "o", false, "Recreate the project even if it exists")
	flag.BoolVarP(&project_args.UpdateFiles, "updatefiles", "u", false, "Update the file set of an existing project")
	flag.BoolVar(&project_args.SkipLaunch, "script-only", false, "Write the TCL script without launching Vivado")
	flag.BoolVarP(&project_args.Verbose, "verbose", "v", false, "verbose")
}

func run_project(cmd *cobra.Command, args []string) {
	if err := vivado.Run(project_args); err != nil {
		log.Fatal(err)
	}
}
