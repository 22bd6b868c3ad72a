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
	"github.com/lvfpga/hdltools/deps"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Installs the target support files into the LabVIEW plugin folder",
	Long: `Copies the generated target support folder into the LabVIEW FPGA
plugin tree under the configured target name. Files already present
are overwritten, clearing the read-only attribute LabVIEW sets on
installed support files.`,
	Run:  run_install,
	Args: cobra.NoArgs,
}

var install_args deps.InstallArgs

func init() {
	rootCmd.AddCommand(installCmd)
	flag := installCmd.Flags()

	flag.StringVar(&install_args.Settings, "settings", cfg.DefaultFile, "Path to the project settings file")
	flag.BoolVarP(&install_args.Verbose, "verbose", "v", false, "verbose")
}

func run_install(cmd *cobra.Command, args []string) {
	if err := deps.RunInstall(install_args); err != nil {
		log.Fatal(err)
	}
}
