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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hdltools",
	Short: "Build tools for LabVIEW FPGA custom device targets",
	Long: `hdltools automates the HDL side of a LabVIEW FPGA custom device:
it creates and updates the Vivado project, migrates CLIP definitions to
board IO, generates the target support files and installs them into the
LabVIEW plugin folder.

All tools read their settings from projectsettings.yaml in the current
folder unless --settings points elsewhere.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
