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

// Package vhdl extracts entity interfaces from VHDL source text and emits
// instantiation stubs and type declarations. Only the entity/port header is
// understood; there is no support for the rest of the language.
package vhdl

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	ErrNoEntityFound      = errors.New("no entity declaration found")
	ErrNoPortSectionFound = errors.New("no port section found")
	ErrUnbalancedParens   = errors.New("unbalanced parentheses in port section")
)

var (
	entity_re  = regexp.MustCompile(`(?i)\bentity\s+(\w+)\s+is\b`)
	port_re    = regexp.MustCompile(`(?i)\bport\s*\(`)
	comment_re = regexp.MustCompile(`(?m)--.*$`)
)

// ExtractEntity scans raw VHDL text for the first entity declaration and
// returns its name and port names in declaration order. Duplicated port names
// are kept as written. A missing port section returns the entity name, no
// ports and ErrNoPortSectionFound so the caller can decide whether that is
// acceptable for the artifact being produced.
func ExtractEntity(text string) (string, []string, error) {
	// Comments go first: a parenthesis inside a comment must not count
	// towards the nesting depth below.
	text = comment_re.ReplaceAllString(text, "")
	em := entity_re.FindStringSubmatchIndex(text)
	if em == nil {
		return "", nil, ErrNoEntityFound
	}
	name := text[em[2]:em[3]]

	pm := port_re.FindStringIndex(text[em[1]:])
	if pm == nil {
		return name, nil, ErrNoPortSectionFound
	}
	start := em[1] + pm[1]

	// The port list may contain nested parentheses in vector ranges, so the
	// closing parenthesis is found by depth counting rather than by regex.
	level := 1
	end := -1
scan:
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '(':
			level++
		case ')':
			level--
			if level == 0 {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return name, nil, ErrUnbalancedParens
	}

	section := text[start:end]

	var ports []string
	for _, decl := range strings.Split(section, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		colon := strings.Index(decl, ":")
		if colon < 0 {
			// continuation noise, not a port declaration
			continue
		}
		for _, each := range strings.Split(decl[:colon], ",") {
			each = strings.TrimSpace(each)
			if each != "" {
				ports = append(ports, each)
			}
		}
	}
	return name, ports, nil
}

// ParseEntityFile reads a VHDL file and extracts its entity interface.
func ParseEntityFile(path string) (string, []string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read VHDL file %s: %w", path, err)
	}
	name, ports, err := ExtractEntity(string(buf))
	if err != nil {
		return name, ports, fmt.Errorf("%s: %w", path, err)
	}
	return name, ports, nil
}
