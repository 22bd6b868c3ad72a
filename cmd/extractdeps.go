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

// extractdepsCmd represents the extractdeps command
var extractdepsCmd = &cobra.Command{
	Use:   "extractdeps",
	Short: "Unpacks downloaded dependency archives",
	Long: `Removes the previous dependency folder and extracts every .zip
archive from the download folder into it, one subfolder per archive.
The extracted tree is what the project file lists reference through
the dependency marker.`,
	Run:  run_extractdeps,
	Args: cobra.NoArgs,
}

var extractdeps_args deps.ExtractArgs

func init() {
	rootCmd.AddCommand(extractdepsCmd)
	flag := extractdepsCmd.Flags()

	flag.StringVar(&extractdeps_args.Settings, "settings", cfg.DefaultFile, "Path to the project settings file")
	flag.StringVar(&extractdeps_args.Dir, "dir", "downloads", "Folder holding the downloaded archives")
	flag.BoolVarP(&extractdeps_args.Verbose, "verbose", "v", false, "verbose")
}

func run_extractdeps(cmd *cobra.Command, args []string) {
	if err := deps.RunExtract(extractdeps_args); err != nil {
		log.Fatal(err)
	}
}
