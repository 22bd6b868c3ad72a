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
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Kind tags the closed set of LabVIEW data types a signal can carry.
type Kind int

const (
	Bool Kind = iota
	UInt
	Int
	Fixed
	Array
	Unknown
)

// DefaultWidth is the vector width applied to any data type outside the
// closed grammar. Every generator shares this value so the artifacts produced
// in one run cannot disagree about a degraded signal.
const DefaultWidth = 32

// DataType is the parsed form of a signal data-type string such as "U16",
// "FXP(8,4,Signed)" or "Array<U8>[4]". There is exactly one parser and one
// formatter for the grammar so the two cannot drift apart.
type DataType struct {
	Kind    Kind
	Bits    int       // integer width, or FXP word length
	IntBits int       // FXP integer word length, metadata only
	Signed  bool      // FXP only
	Elem    *DataType // Array element type
	Size    int       // Array element count
	raw     string    // original text for unknown types
}

var (
	int_type_re = regexp.MustCompile(`^([UI])(8|16|32|64)$`)
	fxp_re      = regexp.MustCompile(`^FXP\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(Signed|Unsigned)\s*\)$`)
	array_re    = regexp.MustCompile(`^Array<(.+)>\[(\d+)\]$`)
)

// ParseDataType parses a data-type string. Anything outside the closed
// grammar degrades to a default 32-bit vector with a warning; the run is
// never failed over a malformed type because descriptors are hand authored.
func ParseDataType(s string) DataType {
	t := strings.TrimSpace(s)
	if t == "Boolean" {
		return DataType{Kind: Bool}
	}
	if m := int_type_re.FindStringSubmatch(t); m != nil {
		w, _ := strconv.Atoi(m[2])
		kind := UInt
		if m[1] == "I" {
			kind = Int
		}
		return DataType{Kind: kind, Bits: w}
	}
	if m := fxp_re.FindStringSubmatch(t); m != nil {
		w, _ := strconv.Atoi(m[1])
		iw, _ := strconv.Atoi(m[2])
		return DataType{Kind: Fixed, Bits: w, IntBits: iw, Signed: m[3] == "Signed"}
	}
	if m := array_re.FindStringSubmatch(t); m != nil {
		elem := ParseDataType(m[1])
		size, _ := strconv.Atoi(m[2])
		return DataType{Kind: Array, Elem: &elem, Size: size}
	}
	log.Warnf("unrecognized data type %q, using a %d-bit vector", s, DefaultWidth)
	return DataType{Kind: Unknown, raw: s}
}

// Width returns the hardware vector width in bits.
func (d DataType) Width() int {
	switch d.Kind {
	case Bool:
		return 1
	case UInt, Int, Fixed:
		return d.Bits
	case Array:
		return d.Size * d.elemWidth()
	default:
		return DefaultWidth
	}
}

// elemWidth follows the array rules: booleans are one bit, integers keep
// their width, everything else counts as 32 bits. Array element typing is
// advisory metadata, so unknown elements warn instead of failing.
func (d DataType) elemWidth() int {
	if d.Elem == nil {
		log.Warnf("array type without element type, using %d-bit elements", DefaultWidth)
		return DefaultWidth
	}
	switch d.Elem.Kind {
	case Bool:
		return 1
	case UInt, Int:
		return d.Elem.Bits
	default:
		log.Warnf("array element type %q has no defined width, using %d bits",
			d.Elem.String(), DefaultWidth)
		return DefaultWidth
	}
}

// VHDLType formats the matching VHDL declaration type: std_logic for a
// single bit, std_logic_vector otherwise.
func (d DataType) VHDLType() string {
	if d.Kind == Bool {
		return "std_logic"
	}
	return fmt.Sprintf("std_logic_vector(%d downto 0)", d.Width()-1)
}

// String renders the type back into the descriptor grammar. Conversion to a
// vector width and back is lossy for FXP metadata; String keeps it intact on
// the parsed value.
func (d DataType) String() string {
	switch d.Kind {
	case Bool:
		return "Boolean"
	case UInt:
		return fmt.Sprintf("U%d", d.Bits)
	case Int:
		return fmt.Sprintf("I%d", d.Bits)
	case Fixed:
		sign := "Unsigned"
		if d.Signed {
			sign = "Signed"
		}
		return fmt.Sprintf("FXP(%d,%d,%s)", d.Bits, d.IntBits, sign)
	case Array:
		return fmt.Sprintf("Array<%s>[%d]", d.Elem.String(), d.Size)
	default:
		return d.raw
	}
}
