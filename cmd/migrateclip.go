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
	"github.com/lvfpga/hdltools/clip"
)

// migrateclipCmd represents the migrateclip command
var migrateclipCmd = &cobra.Command{
	Use:   "migrateclip",
	Short: "Converts a CLIP definition into board IO source material",
	Long: `Reads the CLIP XML descriptor and writes the signal table CSV that
the target generator consumes. Also emits a VHDL signal definition
block, an instantiation example for the CLIP top entity and patched
copies of the XDC constraint files with the CLIP instance path filled
in. Each artifact is produced independently, so one failure does not
stop the others.`,
	Run:  run_migrateclip,
	Args: cobra.NoArgs,
}

var migrateclip_args clip.Args

func init() {
	rootCmd.AddCommand(migrateclipCmd)
	flag := migrateclipCmd.Flags()

	flag.StringVar(&migrateclip_args.Settings, "settings", cfg.DefaultFile, "Path to the project settings file")
	flag.BoolVarP(&migrateclip_args.Verbose, "verbose", "v", false, "verbose")
}

func run_migrateclip(cmd *cobra.Command, args []string) {
	if err := clip.Run(migrateclip_args); err != nil {
		log.Fatal(err)
	}
}
