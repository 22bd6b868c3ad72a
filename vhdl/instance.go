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

package vhdl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultArchitecture is used when the configuration does not name one.
const DefaultArchitecture = "rtl"

// Instantiation emits a black-box instantiation of the entity using the
// entity-architecture syntax, wiring every port to a signal of the same name.
// Signal declarations are not included; they must be declared separately.
func Instantiation(name string, ports []string, architecture string) string {
	if architecture == "" {
		architecture = DefaultArchitecture
	}
	var b strings.Builder
	fmt.Fprintf(&b, "-- Entity instantiation for %s\n\n", name)
	fmt.Fprintf(&b, "%s: entity work.%s (%s)\n", name, name, architecture)
	b.WriteString("port map (\n")
	for k, port := range ports {
		fmt.Fprintf(&b, "    %s => %s", port, port)
		if k < len(ports)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")
	return b.String()
}

// WriteInstantiation parses the entity in vhdl_path and writes its
// instantiation stub to output_path, creating directories as needed.
func WriteInstantiation(vhdl_path, output_path, architecture string) error {
	name, ports, err := ParseEntityFile(vhdl_path)
	if err != nil {
		return err
	}
	text := Instantiation(name, ports, architecture)
	// Name the source file so the stub can be traced back to it
	header := fmt.Sprintf("-- Generated from %s\n", filepath.Base(vhdl_path))
	text = strings.Replace(text, "\n\n", "\n"+header+"\n", 1)
	if err := os.MkdirAll(filepath.Dir(output_path), 0755); err != nil {
		return fmt.Errorf("cannot create output folder for %s: %w", output_path, err)
	}
	if err := os.WriteFile(output_path, []byte(text), 0644); err != nil {
		return fmt.Errorf("cannot write instantiation %s: %w", output_path, err)
	}
	return nil
}
