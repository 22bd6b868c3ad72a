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
	"github.com/lvfpga/hdltools/target"
)

// gentargetCmd represents the gentarget command
var gentargetCmd = &cobra.Command{
	Use:   "gentarget",
	Short: "Generates the LabVIEW FPGA target support files",
	Long: `Reads the signal table CSV and produces the board IO and clock XML
resource lists, the window VHDL entity rendered from its template, an
instantiation example for the window and the target definition XML.

The signal table is usually produced by migrateclip, but it can be
edited by hand before running this tool.`,
	Run:  run_gentarget,
	Args: cobra.NoArgs,
}

var gentarget_args target.Args

func init() {
	rootCmd.AddCommand(gentargetCmd)
	flag := gentargetCmd.Flags()

	flag.StringVar(&gentarget_args.Settings, "settings", cfg.DefaultFile, "Path to the project settings file")
	flag.BoolVarP(&gentarget_args.Verbose, "verbose", "v", false, "verbose")
}

func run_gentarget(cmd *cobra.Command, args []string) {
	if err := target.Run(gentarget_args); err != nil {
		log.Fatal(err)
	}
}
