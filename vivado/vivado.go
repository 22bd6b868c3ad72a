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

// Package vivado writes the TCL scripts that create or update a Vivado
// project and drives the vendor tool in batch mode.
package vivado

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

// AddFilesText renders one add_files command per project file. Paths are
// made relative to the script folder and quoted when they contain spaces,
// since the scripts are sourced from inside the project tree.
func AddFilesText(files []string, base_dir string) string {
	lines := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(base_dir, file)
		if err != nil {
			rel = file
		}
		rel = strings.ReplaceAll(rel, "\\", "/")
		if strings.Contains(rel, " ") {
			rel = "\"" + rel + "\""
		}
		lines = append(lines, fmt.Sprintf("add_files {%s}", rel))
	}
	return strings.Join(lines, "\n")
}

// WriteScript fills the placeholders of a TCL template and writes the
// resulting script. The template contract is plain text substitution of
// ADD_FILES, PROJ_NAME and TOP_ENTITY.
func WriteScript(template_path, output_path, add_files, project, top_entity string) error {
	buf, err := os.ReadFile(template_path)
	if err != nil {
		return fmt.Errorf("cannot read TCL template %s: %w", template_path, err)
	}
	replacer := strings.NewReplacer(
		"ADD_FILES", add_files,
		"PROJ_NAME", project,
		"TOP_ENTITY", top_entity,
	)
	if err := os.MkdirAll(filepath.Dir(output_path), 0755); err != nil {
		return fmt.Errorf("cannot create output folder for %s: %w", output_path, err)
	}
	if err := os.WriteFile(output_path, []byte(replacer.Replace(string(buf))), 0644); err != nil {
		return fmt.Errorf("cannot write TCL script %s: %w", output_path, err)
	}
	return nil
}

// RunCommand executes one external command synchronously and returns its
// exit code together with the combined output. The command line is echoed
// first so build logs show what ran.
func RunCommand(dir, name string, args ...string) (int, string, error) {
	log.Infof("running: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			return exit.ExitCode(), string(out), nil
		}
		return -1, string(out), err
	}
	return 0, string(out), nil
}

// Executable locates the vivado launcher from the XILINX environment
// variable, pointing at the vendor installation root.
func Executable() (string, error) {
	root := os.Getenv("XILINX")
	if root == "" {
		return "", fmt.Errorf("environment variable XILINX is not set")
	}
	name := "vivado"
	if runtime.GOOS == "windows" {
		name = "vivado.bat"
	}
	return filepath.Join(root, "bin", name), nil
}
