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

// Package clip migrates Component-Level IP descriptors: it converts the
// descriptor XML into the tabular signal format, patches constraint files
// with the CLIP instance path and generates the VHDL glue to wire the CLIP
// to the window component.
package clip

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/lvfpga/hdltools/vhdl"
	"github.com/lvfpga/hdltools/xnode"
)

// Signal is one row of the tabular signal exchange format. Fields keep the
// CSV string forms; the data type is parsed on demand through
// vhdl.ParseDataType so every consumer shares one grammar.
type Signal struct {
	LVName      string
	HDLName     string
	Direction   string // input | output
	SignalType  string // Data | Clock
	DataType    string
	UseInSCTL   string
	ClockDomain string
}

// LVPrefix is prepended to descriptor signal names to place them under the
// board I/O socket.
const LVPrefix = "IO Socket\\"

var csv_header = []string{
	"LVName", "HDLName", "Direction", "SignalType",
	"DataType", "UseInLabVIEWSingleCycleTimedLoop", "RequiredClockDomain",
}

// IsClock reports whether a signal describes a clock fed from the CLIP.
func (s Signal) IsClock() bool {
	return strings.EqualFold(s.SignalType, "clock") && s.Direction == "input"
}

// LogicalName strips the socket prefix and returns the dotted hierarchy name.
func (s Signal) LogicalName() string {
	name := strings.TrimPrefix(s.LVName, LVPrefix)
	return strings.ReplaceAll(name, "\\", ".")
}

// simple_types are the tag names a descriptor uses for scalar data types.
var simple_types = []string{"Boolean", "U8", "U16", "U32", "U64", "I8", "I16", "I32", "I64"}

// data_type_text reads the DataType child of a signal node back into the
// string grammar. Missing or unrecognized content degrades to "Unknown",
// which the type mapper later turns into the default vector.
func data_type_text(signal *xnode.Node) string {
	elem := signal.Child("DataType")
	if elem == nil {
		return "Unknown"
	}
	for _, name := range simple_types {
		if elem.Child(name) != nil {
			return name
		}
	}
	if fxp := elem.Child("FXP"); fxp != nil {
		word := fxp.ChildText("WordLength", "?")
		integer := fxp.ChildText("IntegerWordLength", "?")
		sign := "Signed"
		if fxp.Child("Unsigned") != nil {
			sign = "Unsigned"
		}
		return fmt.Sprintf("FXP(%s,%s,%s)", word, integer, sign)
	}
	if array := elem.Child("Array"); array != nil {
		size := array.ChildText("Size", "?")
		subtype := "Unknown"
		for _, name := range append(simple_types, "FXP") {
			if array.Child(name) != nil {
				subtype = name
				break
			}
		}
		return fmt.Sprintf("Array<%s>[%s]", subtype, size)
	}
	return "Unknown"
}

// FromDescriptor extracts the signal table from a CLIP descriptor tree. The
// descriptor must carry an Interface named LabVIEW; inside it, every
// SignalList/Signal node becomes one record. Signals without a name are
// skipped with a warning.
func FromDescriptor(root *xnode.Node) ([]Signal, error) {
	lv := root.FindAttr("Interface", "Name", "LabVIEW")
	if lv == nil {
		return nil, fmt.Errorf("no LabVIEW interface found in descriptor")
	}
	nodes := lv.FindPath("SignalList", "Signal")
	if len(nodes) == 0 {
		log.Warn("no signals found in the LabVIEW interface")
	}
	var signals []Signal
	for _, node := range nodes {
		name := node.Attr("Name")
		if name == "" {
			log.Warn("signal without a name found, skipping")
			continue
		}
		raw_dir := node.ChildText("Direction", "N/A")
		direction := raw_dir
		switch raw_dir {
		case "ToCLIP":
			direction = "output"
		case "FromCLIP":
			direction = "input"
		}
		signals = append(signals, Signal{
			LVName:      LVPrefix + strings.ReplaceAll(name, ".", "\\"),
			HDLName:     node.ChildText("HDLName", "N/A"),
			Direction:   direction,
			SignalType:  node.ChildText("SignalType", "N/A"),
			DataType:    data_type_text(node),
			UseInSCTL:   node.ChildText("UseInLabVIEWSingleCycleTimedLoop", ""),
			ClockDomain: node.ChildText("RequiredClockDomain", ""),
		})
	}
	return signals, nil
}

// WriteCSV writes the signal table with the exchange-format header.
func WriteCSV(signals []Signal, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create output folder for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write signal CSV %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(csv_header); err != nil {
		return err
	}
	for _, s := range signals {
		row := []string{s.LVName, s.HDLName, s.Direction, s.SignalType,
			s.DataType, s.UseInSCTL, s.ClockDomain}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a signal table previously written by WriteCSV or edited by
// hand. Columns are located by header name so reordered files still load.
func ReadCSV(path string) ([]Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open signal CSV %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse signal CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("signal CSV %s is empty", path)
	}
	col := make(map[string]int)
	for k, name := range records[0] {
		col[name] = k
	}
	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	var signals []Signal
	for _, row := range records[1:] {
		signals = append(signals, Signal{
			LVName:      field(row, "LVName"),
			HDLName:     field(row, "HDLName"),
			Direction:   field(row, "Direction"),
			SignalType:  field(row, "SignalType"),
			DataType:    field(row, "DataType"),
			UseInSCTL:   field(row, "UseInLabVIEWSingleCycleTimedLoop"),
			ClockDomain: field(row, "RequiredClockDomain"),
		})
	}
	return signals, nil
}

// SignalDeclarations renders VHDL signal declarations for wiring the CLIP
// ports to the window component. source names the descriptor the
// declarations came from.
func SignalDeclarations(signals []Signal, source string) string {
	var b strings.Builder
	b.WriteString("-- VHDL Signal declarations for CLIP to Window connections\n")
	fmt.Fprintf(&b, "-- Generated from %s\n\n", filepath.Base(source))
	for _, s := range signals {
		vhdl_type := vhdl.ParseDataType(s.DataType).VHDLType()
		fmt.Fprintf(&b, "signal %s : %s; -- %s (%s)\n",
			s.HDLName, vhdl_type, s.LogicalName(), s.Direction)
	}
	return b.String()
}

// PatchConstraints rewrites one XDC file, replacing every
// %ClipInstancePath% placeholder with the instance path, and writes the
// result under out_folder keeping the original file name.
func PatchConstraints(xdc_path, out_folder, instance_path string) error {
	buf, err := os.ReadFile(xdc_path)
	if err != nil {
		return fmt.Errorf("cannot read XDC file %s: %w", xdc_path, err)
	}
	if err := os.MkdirAll(out_folder, 0755); err != nil {
		return fmt.Errorf("cannot create folder %s: %w", out_folder, err)
	}
	patched := strings.ReplaceAll(string(buf), "%ClipInstancePath%", instance_path)
	out_path := filepath.Join(out_folder, filepath.Base(xdc_path))
	if err := os.WriteFile(out_path, []byte(patched), 0644); err != nil {
		return fmt.Errorf("cannot write XDC file %s: %w", out_path, err)
	}
	return nil
}
