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

package clip

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/lvfpga/hdltools/cfg"
	"github.com/lvfpga/hdltools/vhdl"
	"github.com/lvfpga/hdltools/xnode"
)

type Args struct {
	Settings string
	Verbose  bool
}

// Run performs the CLIP migration: descriptor to CSV, instantiation example,
// constraint patching and signal declarations. A parse failure in one
// artifact does not stop the remaining ones; Run reports how many failed.
func Run(args Args) error {
	config, err := cfg.Load(args.Settings)
	if err != nil {
		return err
	}
	m := config.Migration
	if err := cfg.Require("migration", map[string]string{
		"clip_xml":           m.ClipXML,
		"signals_csv":        m.SignalsCSV,
		"clip_hdl_top":       m.ClipHDLTop,
		"clip_instantiation": m.ClipExample,
		"instance_path":      m.InstancePath,
		"signal_definitions": m.SignalDefs,
		"xdc_out_folder":     m.XDCOutFolder,
	}); err != nil {
		return err
	}
	if args.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	failures := 0

	signals, err := migrate_descriptor(m)
	if err != nil {
		log.Errorf("descriptor migration failed: %v", err)
		failures++
	}

	if err := write_instantiation(m, config.Architecture); err != nil {
		log.Errorf("CLIP instantiation example failed: %v", err)
		failures++
	}

	for _, xdc := range m.XDCIn {
		if err := PatchConstraints(cfg.Resolve(xdc), cfg.Resolve(m.XDCOutFolder), m.InstancePath); err != nil {
			log.Errorf("constraint processing failed: %v", err)
			failures++
			continue
		}
		log.Infof("processed XDC file: %s", filepath.Base(xdc))
	}

	if signals != nil {
		if err := write_signal_defs(m, signals); err != nil {
			log.Errorf("signal definitions failed: %v", err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("CLIP migration finished with %d error(s)", failures)
	}
	log.Info("CLIP migration completed successfully")
	return nil
}

func migrate_descriptor(m cfg.Migration) ([]Signal, error) {
	xml_path := cfg.Resolve(m.ClipXML)
	root, err := xnode.ParseFile(xml_path)
	if err != nil {
		return nil, err
	}
	signals, err := FromDescriptor(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", xml_path, err)
	}
	csv_path := cfg.Resolve(m.SignalsCSV)
	if err := WriteCSV(signals, csv_path); err != nil {
		return nil, err
	}
	log.Infof("processed descriptor: %s", xml_path)
	return signals, nil
}

func write_instantiation(m cfg.Migration, architecture string) error {
	return vhdl.WriteInstantiation(cfg.Resolve(m.ClipHDLTop), cfg.Resolve(m.ClipExample), architecture)
}

func write_signal_defs(m cfg.Migration, signals []Signal) error {
	out := cfg.Resolve(m.SignalDefs)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("cannot create output folder for %s: %w", out, err)
	}
	text := SignalDeclarations(signals, m.ClipXML)
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		return fmt.Errorf("cannot write signal declarations %s: %w", out, err)
	}
	log.Infof("generated VHDL signal declarations: %s", out)
	return nil
}
